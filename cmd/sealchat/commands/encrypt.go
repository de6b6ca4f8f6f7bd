package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"sealchat/internal/domain"
)

var encryptDual bool

func encryptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encrypt <contact-id> [message]",
		Short: "Seal a direct message for one contact",
		Long: "Seal a direct message for one contact. The message comes from the " +
			"argument or stdin; the envelope goes to stdout for any transport to " +
			"carry. With --dual a second envelope is sealed under your own key so " +
			"the message stays readable in your history.",
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cid, err := domain.ParseUserID(args[0])
			if err != nil {
				return err
			}
			c, err := appCtx.Contacts.Get(cid)
			if err != nil {
				return err
			}
			pub, err := appCtx.Identity.ImportPublic(c.PublicKey)
			if err != nil {
				return err
			}
			msg, err := readArgOrStdin(args, 1)
			if err != nil {
				return err
			}

			if encryptDual {
				id, err := requireIdentity()
				if err != nil {
					return err
				}
				dm, err := appCtx.Envelopes.EncryptDual(msg, pub, id.Public)
				if err != nil {
					return err
				}
				out, err := json.Marshal(dm)
				if err != nil {
					return err
				}
				fmt.Println(string(out))
				return nil
			}

			env, err := appCtx.Envelopes.Encrypt(msg, pub)
			if err != nil {
				return err
			}
			fmt.Println(env)
			return nil
		},
	}
	cmd.Flags().BoolVar(&encryptDual, "dual", false, "also seal a copy under your own key")
	return cmd
}
