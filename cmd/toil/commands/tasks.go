package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newTasksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tasks",
		Short: "List the tasks the detected backend supports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tasks, err := c.app.AvailableTasks(startDir(cmd))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, task := range tasks {
				_, _ = fmt.Fprintln(out, task)
			}
			return nil
		},
	}
}

func (c *CLI) newBackendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backend",
		Short: "Show the detected project root and backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			root, backend, err := c.app.DetectedBackend(startDir(cmd))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", backend, root)
			return nil
		},
	}
}
