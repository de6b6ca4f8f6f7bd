package commands

import (
	"crypto/rsa"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"sealchat/internal/domain"
)

func groupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "group",
		Short: "Create groups, move their records and code group messages",
	}
	cmd.AddCommand(
		groupCreateCmd(), groupExportCmd(), groupImportCmd(),
		groupEncryptCmd(), groupDecryptCmd(),
	)
	return cmd
}

func groupCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create <name> [member-id...]",
		Short: "Create a group and wrap its key for every member",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := requireIdentity()
			if err != nil {
				return err
			}

			// The creator is always a member; the rest come from the keyring.
			members := map[string]*rsa.PublicKey{id.UserID.Hex(): id.Public}
			for _, arg := range args[1:] {
				mid, err := domain.ParseUserID(arg)
				if err != nil {
					return err
				}
				c, err := appCtx.Contacts.Get(mid)
				if err != nil {
					return err
				}
				pub, err := appCtx.Identity.ImportPublic(c.PublicKey)
				if err != nil {
					return err
				}
				members[c.UserID] = pub
			}

			g, err := appCtx.Groups.CreateGroup(args[0], members)
			if err != nil {
				return err
			}
			fmt.Printf("Group created.\nGroup ID: %s\nMembers: %d\n", g.ID, len(g.Keys))
			return nil
		},
	}
}

func groupExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <group-id> <member-id>",
		Short: "Print the record one member needs to join",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := appCtx.Groups.Get(args[0])
			if err != nil {
				return err
			}
			mid, err := domain.ParseUserID(args[1])
			if err != nil {
				return err
			}
			entry, ok := g.Keys.For(mid)
			if !ok {
				return fmt.Errorf("group %s has no entry for %s", g.ID, mid)
			}

			// Only the member's own wrapped copy travels; the rest of the
			// fan-out is none of their business.
			out, err := json.Marshal(domain.Group{
				ID:   g.ID,
				Name: g.Name,
				Keys: domain.GroupKeyMap{mid.Hex(): entry},
			})
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	}
}

func groupImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import [json]",
		Short: "Record a group received from its creator",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readArgOrStdin(args, 0)
			if err != nil {
				return err
			}
			var g domain.Group
			if err := json.Unmarshal(raw, &g); err != nil {
				return fmt.Errorf("decode group record: %v", err)
			}
			if err := appCtx.Groups.Import(&g); err != nil {
				return err
			}
			fmt.Printf("Group %q imported.\nGroup ID: %s\n", g.Name, g.ID)
			return nil
		},
	}
}

func groupEncryptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "encrypt <group-id> [message]",
		Short: "Seal a message under the group key",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := groupKey(args[0])
			if err != nil {
				return err
			}
			msg, err := readArgOrStdin(args, 1)
			if err != nil {
				return err
			}
			payload, err := appCtx.GroupMsgs.Encrypt(msg, key)
			if err != nil {
				return err
			}
			fmt.Println(payload)
			return nil
		},
	}
}

func groupDecryptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decrypt <group-id> [payload]",
		Short: "Open a group message",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := groupKey(args[0])
			if err != nil {
				return err
			}
			raw, err := readArgOrStdin(args, 1)
			if err != nil {
				return err
			}
			pt, err := appCtx.GroupMsgs.Decrypt(strings.TrimSpace(string(raw)), key)
			if err != nil {
				return err
			}
			fmt.Printf("%s\n", pt)
			return nil
		},
	}
}

// groupKey recovers the caller's key for one group, going through the
// session cache so repeated calls in one run unwrap only once.
func groupKey(groupID string) (domain.GroupKey, error) {
	id, err := requireIdentity()
	if err != nil {
		return domain.GroupKey{}, err
	}
	g, err := appCtx.Groups.Get(groupID)
	if err != nil {
		return domain.GroupKey{}, err
	}
	return appCtx.Groups.MemberKey(appCtx.Session, g, id.UserID, id.Private)
}
