package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/toil/internal/core/domain"
)

func (c *CLI) newPresetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "presets [configure|build|test]",
		Short:     "List the selectable presets of a kind",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"configure", "build", "test"},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := domain.PresetConfigure
			if len(args) == 1 {
				kind = domain.PresetKind(args[0])
			}
			presets, err := c.app.Presets(startDir(cmd), kind)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if presets == nil {
				_, _ = fmt.Fprintln(out, "no presets file")
				return nil
			}
			for _, p := range presets {
				_, _ = fmt.Fprintln(out, p.Name)
			}
			return nil
		},
	}
	return cmd
}

func (c *CLI) newTargetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "targets",
		Short: "List the project's targets from the last configure",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			targets, err := c.app.Targets(startDir(cmd))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if targets == nil {
				_, _ = fmt.Fprintln(out, "not configured")
				return nil
			}
			for _, t := range targets {
				_, _ = fmt.Fprintf(out, "%s\t%s\n", t.Name, t.Type)
			}
			return nil
		},
	}
}

func (c *CLI) newSelectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "select <key> <value>",
		Short: "Store a session selection (preset, build_preset, test_preset, build_target, target)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Select(startDir(cmd), args[0], args[1])
		},
	}
}
