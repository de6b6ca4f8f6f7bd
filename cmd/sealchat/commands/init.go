package commands

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"sealchat/internal/crypto"
	identitysvc "sealchat/internal/services/identity"
)

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create an identity and print the one-time recovery secret",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := appCtx.Identity.Load(); err == nil {
				return errors.New("an identity already exists here; logout first or pass --home")
			}

			id, secret, escrow, err := appCtx.Identity.Enroll()
			if err != nil {
				return err
			}
			if err := appCtx.Store.Set(escrowFile, escrow); err != nil {
				return fmt.Errorf("write escrow blob: %w", err)
			}
			words, err := identitysvc.Mnemonic(secret)
			if err != nil {
				return err
			}
			pubDER, err := appCtx.Identity.ExportPublic(id.Public)
			if err != nil {
				return err
			}

			fmt.Printf("Identity created.\nUser ID: %s\nKey ID:  %s\n", id.UserID, crypto.KeyID(pubDER))
			fmt.Printf("\nRecovery secret (shown once, write it down):\n%s\n", secret.Hex())
			fmt.Printf("\nRecovery phrase:\n%s\n", words)
			fmt.Printf("\nEscrow blob written to %s; recovery needs it plus the secret.\n",
				filepath.Join(home, escrowFile))
			return nil
		},
	}
}
