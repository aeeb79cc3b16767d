// Copyright (c) 2025 The fuseki-manager Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"fuseki-manager/pkg/fuseki"
)

func newTasksCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Inspect server tasks",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List running and recently finished tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			admin, err := a.admin()
			if err != nil {
				return err
			}
			tasks, err := admin.ListTasks(cmd.Context())
			if err != nil {
				return a.fail(err, "listing tasks")
			}
			return a.printTasks(tasks)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "get ID",
		Short: "Describe one task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			admin, err := a.admin()
			if err != nil {
				return err
			}
			task, err := admin.GetTask(cmd.Context(), args[0])
			if err != nil {
				return a.fail(err, "reading task "+args[0])
			}
			return a.printDocument(task)
		},
	})

	var interval time.Duration
	waitCmd := &cobra.Command{
		Use:   "wait ID",
		Short: "Wait for a task to finish",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			admin, err := a.admin()
			if err != nil {
				return err
			}
			task, err := a.waitTask(cmd, admin, args[0], interval, "Waiting for task "+args[0])
			if err != nil {
				return err
			}
			return a.printDocument(task)
		},
	}
	waitCmd.Flags().DurationVar(&interval, "interval", fuseki.DefaultPollInterval, "Task polling interval")
	cmd.AddCommand(waitCmd)
	return cmd
}
