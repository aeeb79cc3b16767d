// Copyright (c) 2025 The fuseki-manager Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"fuseki-manager/pkg/fuseki"
)

func newDatasetsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "datasets",
		Aliases: []string{"ds"},
		Short:   "Create, inspect and remove datasets",
	}
	cmd.AddCommand(newDatasetsListCmd(a))
	cmd.AddCommand(newDatasetsGetCmd(a))
	cmd.AddCommand(newDatasetsCreateCmd(a))
	cmd.AddCommand(newDatasetsCreateFromConfigCmd(a))
	cmd.AddCommand(newDatasetsDeleteCmd(a))
	cmd.AddCommand(newDatasetsStateCmd(a))
	return cmd
}

func newDatasetsListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the datasets of the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			admin, err := a.admin()
			if err != nil {
				return err
			}
			doc, err := admin.ListDatasets(cmd.Context())
			if err != nil {
				return a.fail(err, "listing datasets")
			}
			return a.printDatasets(doc)
		},
	}
}

func newDatasetsGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get NAME",
		Short: "Describe one dataset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			admin, err := a.admin()
			if err != nil {
				return err
			}
			doc, err := admin.GetDataset(cmd.Context(), args[0])
			if err != nil {
				return a.fail(err, "reading dataset "+args[0])
			}
			return a.printDocument(doc)
		},
	}
}

func newDatasetsCreateCmd(a *app) *cobra.Command {
	var dbType string
	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create an in-memory or TDB dataset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			admin, err := a.admin()
			if err != nil {
				return err
			}
			doc, err := admin.CreateDataset(cmd.Context(), args[0], fuseki.DatasetType(dbType))
			if err != nil {
				return a.fail(err, "creating dataset "+args[0])
			}
			a.logger.Info("dataset created", "name", args[0], "type", dbType)
			return a.printDocument(doc)
		},
	}
	cmd.Flags().StringVarP(&dbType, "type", "t", string(fuseki.DatasetTDB), "Dataset type (mem, tdb)")
	return cmd
}

func newDatasetsCreateFromConfigCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "create-from-config FILE",
		Short: "Create a dataset from a Turtle assembler file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			admin, err := a.admin()
			if err != nil {
				return err
			}
			if err := admin.CreateDatasetFromConfig(cmd.Context(), args[0]); err != nil {
				return a.fail(err, "creating dataset from "+args[0])
			}
			fmt.Fprintf(a.out, "✅ Dataset created from %s\n", args[0])
			return nil
		},
	}
}

func newDatasetsDeleteCmd(a *app) *cobra.Command {
	var forceDrop bool
	cmd := &cobra.Command{
		Use:   "delete NAME",
		Short: "Remove a dataset",
		Long: `Remove a dataset and its configuration. The server keeps the files of a TDB
dataset; --force-drop empties it with DROP ALL first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			admin, err := a.admin()
			if err != nil {
				return err
			}
			if err := admin.DeleteDataset(cmd.Context(), args[0], forceDrop); err != nil {
				return a.fail(err, "deleting dataset "+args[0])
			}
			fmt.Fprintf(a.out, "✅ Dataset %s deleted\n", args[0])
			return nil
		},
	}
	cmd.Flags().BoolVar(&forceDrop, "force-drop", false, "Drop all graphs before deleting")
	return cmd
}

func newDatasetsStateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "state NAME active|offline",
		Short:     "Switch a dataset on or off line",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{string(fuseki.StateActive), string(fuseki.StateOffline)},
		RunE: func(cmd *cobra.Command, args []string) error {
			admin, err := a.admin()
			if err != nil {
				return err
			}
			active, err := admin.SetDatasetState(cmd.Context(), args[0], fuseki.DatasetState(args[1]))
			if err != nil {
				return a.fail(err, "changing state of "+args[0])
			}
			return a.printValue("active", active)
		},
	}
}
