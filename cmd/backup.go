// Copyright (c) 2025 The fuseki-manager Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	clierrors "fuseki-manager/internal/errors"
	"fuseki-manager/pkg/fuseki"
)

func newBackupCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "List and create dataset backups",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the files in the server's backup area",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			admin, err := a.admin()
			if err != nil {
				return err
			}
			doc, err := admin.ListBackups(cmd.Context())
			if err != nil {
				return a.fail(err, "listing backups")
			}
			if a.jsonOutput() {
				return printJSON(a.out, doc)
			}
			rows := [][]string{}
			for _, f := range doc.Strings("backups") {
				rows = append(rows, []string{f})
			}
			return printTable(a.out, []string{"FILE"}, rows)
		},
	})
	cmd.AddCommand(newBackupCreateCmd(a))
	return cmd
}

func newBackupCreateCmd(a *app) *cobra.Command {
	var (
		wait     bool
		interval time.Duration
	)
	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Start a backup of a dataset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			admin, err := a.admin()
			if err != nil {
				return err
			}
			started, err := admin.CreateBackup(cmd.Context(), args[0])
			if err != nil {
				return a.fail(err, "starting backup of "+args[0])
			}
			if !wait {
				return a.printDocument(started)
			}
			task, err := a.waitTask(cmd, admin, started.TaskID(), interval, "Backing up "+args[0])
			if err != nil {
				return err
			}
			return a.printDocument(task)
		},
	}
	cmd.Flags().BoolVarP(&wait, "wait", "w", false, "Wait for the backup task to finish")
	cmd.Flags().DurationVar(&interval, "interval", fuseki.DefaultPollInterval, "Task polling interval")
	return cmd
}

// waitTask polls a server task behind a spinner until it finishes.
func (a *app) waitTask(cmd *cobra.Command, admin *fuseki.AdminClient, id string, interval time.Duration, label string) (fuseki.Document, error) {
	if id == "" {
		return nil, clierrors.New(clierrors.BadInput, "server did not return a task id")
	}
	start := time.Now()
	spinner := startStatusSpinner(label)
	task, err := admin.WaitTask(cmd.Context(), id, interval, func(d fuseki.Document) {
		elapsed := time.Since(start).Round(time.Second)
		spinner.Update(fmt.Sprintf("%s (task %s, %s)", label, id, elapsed))
		a.logger.Debug("task poll", "task", id, "finished", d.Finished())
	})
	spinner.Stop()
	if err != nil {
		return nil, a.fail(err, "waiting for task "+id)
	}
	if !task.Succeeded() {
		return task, clierrors.New(clierrors.TaskFailed, fmt.Sprintf("task %s finished without success", id))
	}
	return task, nil
}
