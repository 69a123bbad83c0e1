package cli

import (
	"fmt"

	"trpg_json/internal/auth"

	"github.com/spf13/cobra"
)

func newAuthCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage Google Sheets credentials",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "login",
			Short: "Authorize access to Google Sheets in the browser",
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := opts.load()
				if err != nil {
					return err
				}

				manager := auth.NewManager(cfg.ConfigDir)
				if _, err := manager.Authenticate(cmd.Context()); err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "Credentials saved to %s\n", manager.CredentialsPath())
				return nil
			},
		},
		&cobra.Command{
			Use:   "logout",
			Short: "Remove stored credentials",
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := opts.load()
				if err != nil {
					return err
				}

				manager := auth.NewManager(cfg.ConfigDir)
				if err := manager.ClearCredentials(); err != nil {
					return err
				}

				fmt.Fprintln(cmd.OutOrStdout(), "Credentials removed")
				return nil
			},
		},
	)

	return cmd
}
