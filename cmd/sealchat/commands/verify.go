package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"sealchat/internal/domain"
)

func verifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <contact-id>",
		Short: "Print the safety number shared with one contact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := requireIdentity()
			if err != nil {
				return err
			}
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

			sn, err := appCtx.Verify.SafetyNumber(id.Public, pub)
			if err != nil {
				return err
			}
			fmt.Printf("Safety number with %s:\n\n%s\n\n", c.Name, sn)
			fmt.Println("Compare it over a channel you trust; both sides must see the same digits.")
			return nil
		},
	}
}
