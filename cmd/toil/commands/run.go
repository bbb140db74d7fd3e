package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/toil/internal/app"
	"go.trai.ch/toil/internal/core/domain"
)

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <task> [-- extra args...]",
		Short: "Run a project task (configure, build, run, debug, test, clean, package)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			preset, _ := cmd.Flags().GetString("preset")
			buildPreset, _ := cmd.Flags().GetString("build-preset")
			testPreset, _ := cmd.Flags().GetString("test-preset")
			target, _ := cmd.Flags().GetString("target")
			prompt, _ := cmd.Flags().GetBool("prompt")
			outputMode, _ := cmd.Flags().GetString("output-mode")

			opts := app.RunOptions{
				Preset:      preset,
				BuildPreset: buildPreset,
				TestPreset:  testPreset,
				Target:      target,
				Prompt:      prompt,
				OutputMode:  outputMode,
				ExtraArgs:   args[1:],
			}

			// --build-target "" is a real selection meaning "build all
			// targets", so only a flag the user actually set is forwarded.
			if cmd.Flags().Changed("build-target") {
				buildTarget, _ := cmd.Flags().GetString("build-target")
				opts.BuildTarget = &buildTarget
			}

			return c.app.RunTask(cmd.Context(), startDir(cmd), domain.TaskName(args[0]), opts)
		},
	}
	cmd.Flags().StringP("preset", "p", "", "Configure preset to select before running")
	cmd.Flags().String("build-preset", "", "Build preset to select before running")
	cmd.Flags().String("test-preset", "", "Test preset to select before running")
	cmd.Flags().String("build-target", "", "Build target to select; empty builds all targets")
	cmd.Flags().StringP("target", "t", "", "Run/debug target to select before running")
	cmd.Flags().Bool("prompt", false, "Force re-selection of presets and targets")
	cmd.Flags().StringP("output-mode", "o", "auto", "Output mode: auto, stream, or problems")
	return cmd
}
