package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func decryptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decrypt [envelope]",
		Short: "Open a direct message with your private key",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := requireIdentity()
			if err != nil {
				return err
			}
			raw, err := readArgOrStdin(args, 0)
			if err != nil {
				return err
			}
			pt, err := appCtx.Envelopes.Decrypt(strings.TrimSpace(string(raw)), id.Private)
			if err != nil {
				return err
			}
			fmt.Printf("%s\n", pt)
			return nil
		},
	}
}
