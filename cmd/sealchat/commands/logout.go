package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var logoutPurge bool

func logoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Erase the local identity",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := appCtx.Logout(logoutPurge); err != nil {
				return err
			}
			if logoutPurge {
				fmt.Println("Identity, contacts and groups erased. The escrow blob remains.")
			} else {
				fmt.Println("Identity erased. Contacts, groups and the escrow blob remain.")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&logoutPurge, "purge", false, "also erase contacts and groups")
	return cmd
}
