package cli

import (
	"errors"
	"fmt"

	"trpg_json/internal/palette"
	"trpg_json/internal/query"
	"trpg_json/internal/store"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newPaletteCmd(opts *options) *cobra.Command {
	var filter query.SpellFilter

	cmd := &cobra.Command{
		Use:     "palette",
		Short:   "Print chat palette lines for matching spells",
		Example: "  gm palette -s 真語 -n ボルト",
		RunE: func(cmd *cobra.Command, args []string) error {
			if filter.Empty() {
				return errors.New("at least one filter (-n, -s) is required")
			}

			cfg, err := opts.load()
			if err != nil {
				return err
			}

			spells, err := store.LoadSpells(cfg.SpellFiles)
			if err != nil {
				if errors.Is(err, store.ErrNoDataFiles) {
					return fmt.Errorf("%w: set data.spells in the config file", err)
				}
				return err
			}

			matched := query.Spells(spells, filter)
			if len(matched) == 0 {
				return fmt.Errorf("no spells match name=%q school=%q", filter.Name, filter.School)
			}

			out := cmd.OutOrStdout()
			for _, spell := range matched {
				line, err := palette.Render(spell)
				if err != nil {
					log.Warn().Err(err).Str("spell", spell.Name).Msg("Skipping spell")
					continue
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&filter.Name, "name", "n", "", "Name substring")
	cmd.Flags().StringVarP(&filter.School, "school", "s", "", "Exact school")

	return cmd
}
