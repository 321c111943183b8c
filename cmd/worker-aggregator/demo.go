package main

import (
	"github.com/spf13/cobra"

	"github.com/fairyhunter13/worker-aggregator/internal/demo"
)

func newDemoCmd() *cobra.Command {
	var tasks int
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run a worker through a few tasks and print the collected states",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("tasks") {
				cfg.DemoTasks = tasks
			}
			out := cmd.OutOrStdout()
			return demo.Render(out, demo.Run(cfg, out))
		},
	}
	cmd.Flags().IntVar(&tasks, "tasks", 3, "number of tasks to perform (overrides DEMO_TASKS)")
	return cmd
}
