package cli

import (
	"context"
	"os"
	"os/signal"

	"trpg_json/internal/app"

	"github.com/spf13/cobra"
)

var Version = "dev"

// options are shared by every subcommand.
type options struct {
	configPath string
}

func (o *options) load() (*app.Config, error) {
	return app.LoadConfig(o.configPath)
}

func NewRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "gm",
		Short:         "TRPG monster and spell data tool",
		Long:          "gm searches and edits monster data, exports monsters to JSON, Google Sheets or Udonarium, and prints spell chat palettes.",
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default is ~/.config/trpg-json/default.toml)")

	root.AddCommand(
		newFindCmd(opts),
		newListCmd(opts),
		newSelectCmd(opts),
		newAddCmd(opts),
		newDeleteCmd(opts),
		newExportCmd(opts),
		newPaletteCmd(opts),
		newAuthCmd(opts),
	)

	root.Version = Version

	return root
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
