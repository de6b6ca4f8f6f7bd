package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"sealchat/internal/crypto"
)

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Print the active identity and shareable public key",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := requireIdentity()
			if err != nil {
				return err
			}
			pubDER, err := appCtx.Identity.ExportPublic(id.Public)
			if err != nil {
				return err
			}

			fmt.Printf("User ID: %s\nKey ID:  %s\n", id.UserID, crypto.KeyID(pubDER))
			if name := appCtx.Profile.DisplayName; name != "" {
				fmt.Printf("Name:    %s\n", name)
			}
			fmt.Printf("\nPublic key (hand this to contacts):\n%s\n", crypto.B64(pubDER))
			return nil
		},
	}
}
