package cmd

import (
	"github.com/spf13/cobra"
)

func newTaskCmd(e *env) *cobra.Command {
	c := &cobra.Command{
		Use:   "task",
		Short: "Inspect asynchronous jobs started by generate and extract",
	}

	c.AddCommand(&cobra.Command{
		Use:   "get <task-id>",
		Short: "Show the current state of a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := e.app.Tasks.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), t)
		},
	})

	c.AddCommand(&cobra.Command{
		Use:   "wait <task-id>",
		Short: "Poll a task until it completes or fails",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := e.waitTask(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), t)
		},
	})
	return c
}
