package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"trpg_json/internal/app"
	"trpg_json/internal/query"
	"trpg_json/internal/store"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

func loadCreatures(opts *options) ([]app.Creature, *app.Config, error) {
	cfg, err := opts.load()
	if err != nil {
		return nil, nil, err
	}

	creatures, err := store.LoadCreatures(cfg.MonsterFiles)
	if err != nil {
		if errors.Is(err, store.ErrNoDataFiles) {
			return nil, nil, fmt.Errorf("%w: set data.monsters in the config file", err)
		}
		return nil, nil, err
	}
	return creatures, cfg, nil
}

func writeJSON(out io.Writer, creatures []app.Creature) error {
	data, err := json.MarshalIndent(creatures, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode monsters: %w", err)
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}

// writeExactMatch prints the record named name, if any, as a one-element array.
func writeExactMatch(out io.Writer, matched []app.Creature, name string) error {
	if i, ok := query.ExactName(matched, name); ok {
		return writeJSON(out, matched[i:i+1])
	}
	return nil
}

func addCreatureFilterFlags(cmd *cobra.Command, filter *query.CreatureFilter, level *int) {
	cmd.Flags().IntVarP(level, "level", "l", 0, "Exact level")
	cmd.Flags().StringVarP(&filter.Category, "category", "c", "", "Exact category")
}

func newFindCmd(opts *options) *cobra.Command {
	var (
		filter query.CreatureFilter
		level  int
	)

	cmd := &cobra.Command{
		Use:   "find NAME",
		Short: "Search monsters by name",
		Long: `Search monsters whose name contains NAME.

A single match is printed as JSON. Several matches print the count, followed
by the monster whose name equals NAME exactly, if there is one.`,
		Example: "  gm find ゴブリン -l 1 -c 蛮族",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter.Name = args[0]
			if cmd.Flags().Changed("level") {
				filter.Level = &level
			}

			creatures, _, err := loadCreatures(opts)
			if err != nil {
				return err
			}

			matched := query.Creatures(creatures, filter)
			out := cmd.OutOrStdout()
			switch len(matched) {
			case 0:
				return fmt.Errorf("no monsters match %s", describeCreatureFilter(filter))
			case 1:
				return writeJSON(out, matched)
			}

			fmt.Fprintf(out, "%d monsters found\n", len(matched))
			return writeExactMatch(out, matched, filter.Name)
		},
	}

	addCreatureFilterFlags(cmd, &filter, &level)
	return cmd
}

func newListCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "list PATTERN",
		Short:   "List monster names containing PATTERN",
		Example: "  gm list ゴブリン",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := query.CreatureFilter{Name: args[0]}

			creatures, _, err := loadCreatures(opts)
			if err != nil {
				return err
			}

			matched := query.Creatures(creatures, filter)
			out := cmd.OutOrStdout()
			switch len(matched) {
			case 0:
				return fmt.Errorf("no monsters match %s", describeCreatureFilter(filter))
			case 1:
				return writeJSON(out, matched)
			}

			for i, c := range matched {
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintf(out, "Lv.%2d %s [%s]\n", c.Level, c.Name, c.Category)
			}
			fmt.Fprintf(out, "\n%d monsters found\n", len(matched))
			return writeExactMatch(out, matched, filter.Name)
		},
	}
}

func newSelectCmd(opts *options) *cobra.Command {
	var (
		filter query.CreatureFilter
		level  int
	)

	cmd := &cobra.Command{
		Use:     "select",
		Short:   "Print matching monsters as a JSON array",
		Example: "  gm select -l 6 -c 蛮族",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("level") {
				filter.Level = &level
			}

			creatures, _, err := loadCreatures(opts)
			if err != nil {
				return err
			}

			matched := query.Creatures(creatures, filter)
			if len(matched) == 0 {
				if filter.Empty() {
					return errors.New("no monsters loaded")
				}
				return fmt.Errorf("no monsters match %s", describeCreatureFilter(filter))
			}
			return writeJSON(cmd.OutOrStdout(), matched)
		},
	}

	cmd.Flags().StringVarP(&filter.Name, "name", "n", "", "Name substring")
	addCreatureFilterFlags(cmd, &filter, &level)
	return cmd
}

// confirm asks question on out and reads a y/yes answer from in.
func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", question)
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}

// editTarget is the data file add and delete rewrite: the first configured
// monster file. Records from other files are left untouched.
func editTarget(opts *options) (string, []app.Creature, error) {
	cfg, err := opts.load()
	if err != nil {
		return "", nil, err
	}
	if len(cfg.MonsterFiles) == 0 {
		return "", nil, fmt.Errorf("%w: set data.monsters in the config file", store.ErrNoDataFiles)
	}

	path := cfg.MonsterFiles[0]
	creatures, err := store.LoadCreatures([]string{path})
	if err != nil {
		return "", nil, err
	}
	return path, creatures, nil
}

func newAddCmd(opts *options) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "add FILE",
		Short:   "Add the monster in FILE to the first data file",
		Long:    "Add a single-monster JSON object to the first configured monster file. A monster with the same name is replaced after confirmation.",
		Example: "  gm add monster.json",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			creature, err := store.LoadCreature(args[0])
			if err != nil {
				return err
			}

			path, creatures, err := editTarget(opts)
			if err != nil {
				return err
			}

			if _, exists := query.ExactName(creatures, creature.Name); exists {
				question := fmt.Sprintf("A monster named %q already exists. Overwrite it?", creature.Name)
				if !yes && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), question) {
					return errors.New("cancelled")
				}
				creatures = query.WithoutName(creatures, creature.Name)
			}

			creatures = append(creatures, *creature)
			if err := store.SaveCreatures(path, creatures); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added %q to %s\n", creature.Name, path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Overwrite without asking")
	return cmd
}

func newDeleteCmd(opts *options) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete NAME",
		Short:   "Delete the monster named exactly NAME from the first data file",
		Example: `  gm delete "ゴブリン"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			path, creatures, err := editTarget(opts)
			if err != nil {
				return err
			}

			if _, ok := query.ExactName(creatures, name); !ok {
				return fmt.Errorf("no monster named %q in %s", name, path)
			}
			if !yes && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), fmt.Sprintf("Delete %q?", name)) {
				return errors.New("cancelled")
			}

			if err := store.SaveCreatures(path, query.WithoutName(creatures, name)); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %q from %s\n", name, path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Delete without asking")
	return cmd
}
