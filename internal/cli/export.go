package cli

import (
	"fmt"

	"trpg_json/internal/export"
	"trpg_json/internal/query"

	"github.com/spf13/cobra"
)

// newExportDeps builds the sheets collaborators; tests replace it.
var newExportDeps = export.DefaultDependencies

func newExportCmd(opts *options) *cobra.Command {
	var (
		filter query.CreatureFilter
		level  int
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export matching monsters",
		Long: `Load monsters, filter them and export the result.

Formats:
  json       write a JSON array to --output
  sheets     append to the Google Sheets spreadsheet whose id is --output
  udonarium  write a zip of Udonarium character sheets to --output`,
		Example: `  gm export -c 蛮族 -f json -o goblins.json
  gm export -n ヒュドラ -f udonarium -o hydra.zip
  gm export -l 6 -f sheets -o 1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("level") {
				filter.Level = &level
			}

			creatures, cfg, err := loadCreatures(opts)
			if err != nil {
				return err
			}

			matched := query.Creatures(creatures, filter)
			if len(matched) == 0 && !filter.Empty() {
				return fmt.Errorf("no monsters match %s", describeCreatureFilter(filter))
			}

			coordinator := export.NewCoordinator(newExportDeps(cfg.ConfigDir))
			err = coordinator.Export(cmd.Context(), matched, export.Config{
				Destination: output,
				Format:      format,
				SheetName:   cfg.SheetName,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d monsters to %s\n", len(matched), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&filter.Name, "name", "n", "", "Name substring")
	cmd.Flags().IntVarP(&level, "level", "l", 0, "Exact level")
	cmd.Flags().StringVarP(&filter.Category, "category", "c", "", "Exact category")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Export format: json, sheets, udonarium")
	cmd.Flags().StringVarP(&output, "output", "o", "", "File path or spreadsheet id")
	_ = cmd.MarkFlagRequired("format")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func describeCreatureFilter(f query.CreatureFilter) string {
	desc := ""
	if f.Name != "" {
		desc += fmt.Sprintf(" name=%q", f.Name)
	}
	if f.Level != nil {
		desc += fmt.Sprintf(" level=%d", *f.Level)
	}
	if f.Category != "" {
		desc += fmt.Sprintf(" category=%q", f.Category)
	}
	if desc == "" {
		return "[]"
	}
	return "[" + desc[1:] + "]"
}
