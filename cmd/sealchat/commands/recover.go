package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"sealchat/internal/domain"
	identitysvc "sealchat/internal/services/identity"
)

var (
	recoverSecretHex string
	recoverMnemonic  string
	recoverEscrow    string
)

func recoverCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recover",
		Short: "Restore an identity from its recovery secret and escrow blob",
		RunE: func(cmd *cobra.Command, args []string) error {
			var secret domain.RecoverySecret
			var err error
			switch {
			case recoverSecretHex != "" && recoverMnemonic != "":
				return errors.New("pass --secret or --mnemonic, not both")
			case recoverSecretHex != "":
				secret, err = domain.ParseRecoverySecret(recoverSecretHex)
			case recoverMnemonic != "":
				secret, err = identitysvc.SecretFromMnemonic(recoverMnemonic)
			default:
				return errors.New("pass --secret or --mnemonic")
			}
			if err != nil {
				return err
			}

			path := recoverEscrow
			if path == "" {
				path = filepath.Join(home, escrowFile)
			}
			blob, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read escrow blob: %w", err)
			}

			id, err := appCtx.Identity.Recover(secret, blob)
			if err != nil {
				return err
			}
			fmt.Printf("Identity recovered.\nUser ID: %s\n", id.UserID)
			return nil
		},
	}
	cmd.Flags().StringVar(&recoverSecretHex, "secret", "", "64-char hex recovery secret")
	cmd.Flags().StringVar(&recoverMnemonic, "mnemonic", "", "24-word recovery phrase")
	cmd.Flags().StringVar(&recoverEscrow, "escrow", "", "escrow blob path (default <home>/"+escrowFile+")")
	return cmd
}
