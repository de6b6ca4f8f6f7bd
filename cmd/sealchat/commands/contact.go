package commands

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"sealchat/internal/crypto"
	"sealchat/internal/domain"
)

var (
	contactKeyB64  string
	contactKeyFile string
)

func contactCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Manage the local keyring of peers",
	}
	cmd.AddCommand(contactAddCmd(), contactListCmd(), contactRemoveCmd())
	return cmd
}

func contactAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <user-id> <name>",
		Short: "Record a peer's public key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := domain.ParseUserID(args[0])
			if err != nil {
				return err
			}
			der, err := contactKeyBytes()
			if err != nil {
				return err
			}
			c, err := appCtx.Contacts.Add(id, args[1], der)
			if err != nil {
				return err
			}
			fmt.Printf("Contact %q added.\nKey ID: %s\n", c.Name, crypto.KeyID(c.PublicKey))
			return nil
		},
	}
	cmd.Flags().StringVar(&contactKeyB64, "key", "", "peer public key, base64")
	cmd.Flags().StringVar(&contactKeyFile, "key-file", "", "file holding the base64 public key")
	return cmd
}

// contactKeyBytes resolves the peer key from whichever flag was given.
func contactKeyBytes() ([]byte, error) {
	switch {
	case contactKeyB64 != "" && contactKeyFile != "":
		return nil, errors.New("pass --key or --key-file, not both")
	case contactKeyB64 != "":
		return crypto.FromB64(strings.TrimSpace(contactKeyB64))
	case contactKeyFile != "":
		b, err := os.ReadFile(contactKeyFile)
		if err != nil {
			return nil, err
		}
		return crypto.FromB64(strings.TrimSpace(string(b)))
	default:
		return nil, errors.New("pass --key or --key-file")
	}
}

func contactListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List known contacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			all, err := appCtx.Contacts.List()
			if err != nil {
				return err
			}
			if len(all) == 0 {
				fmt.Println("No contacts.")
				return nil
			}
			for _, c := range all {
				fmt.Printf("%s\t%s\t%s\n", c.Name, c.UserID, crypto.KeyID(c.PublicKey))
			}
			return nil
		},
	}
}

func contactRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <user-id>",
		Short: "Forget a peer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := domain.ParseUserID(args[0])
			if err != nil {
				return err
			}
			if err := appCtx.Contacts.Remove(id); err != nil {
				return err
			}
			fmt.Println("Contact removed.")
			return nil
		},
	}
}
