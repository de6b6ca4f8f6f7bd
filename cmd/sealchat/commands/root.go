package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"sealchat/internal/app"
	"sealchat/internal/domain"
)

// escrowFile is where init writes the sealed private key backup under the
// home directory, and where recover looks by default.
const escrowFile = "escrow.json"

var (
	home        string
	verbose     bool
	displayName string
	appCtx      *app.App
)

func Execute() error {
	root := &cobra.Command{
		Use:   "sealchat",
		Short: "End-to-end encrypted messaging protocol CLI",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if home == "" {
				dir, err := app.DefaultHome()
				if err != nil {
					return err
				}
				home = dir
			}
			if err := os.MkdirAll(home, 0o700); err != nil {
				return err
			}

			var err error
			appCtx, err = app.New(app.Config{Home: home, Verbose: verbose, DisplayName: displayName})
			return err
		},
	}

	root.PersistentFlags().StringVar(&home, "home", "", "state dir (default ~/.sealchat)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging to stderr")
	root.PersistentFlags().StringVar(&displayName, "name", "", "display name (overrides the profile)")

	root.AddCommand(
		initCmd(), recoverCmd(), whoamiCmd(),
		contactCmd(), encryptCmd(), decryptCmd(),
		groupCmd(), verifyCmd(), logoutCmd(),
	)
	return root.Execute()
}

// requireIdentity loads the active identity into the session, or explains
// that there is none.
func requireIdentity() (*domain.Identity, error) {
	id, err := appCtx.LoadIdentity()
	if err != nil {
		return nil, fmt.Errorf("no usable identity, run init or recover: %w", err)
	}
	return id, nil
}

// readArgOrStdin returns args[i] when present, otherwise all of stdin. Blobs
// too large for a shell argument arrive through a pipe.
func readArgOrStdin(args []string, i int) ([]byte, error) {
	if len(args) > i {
		return []byte(args[i]), nil
	}
	b, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return b, nil
}
