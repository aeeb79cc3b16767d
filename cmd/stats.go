// Copyright (c) 2025 The fuseki-manager Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"fuseki-manager/pkg/fuseki"
)

// statsConcurrency bounds parallel per-dataset stats requests.
const statsConcurrency = 4

func newStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats [NAME...]",
		Short: "Show request statistics of all or some datasets",
		RunE: func(cmd *cobra.Command, args []string) error {
			admin, err := a.admin()
			if err != nil {
				return err
			}
			if len(args) == 0 {
				doc, err := admin.AllStats(cmd.Context())
				if err != nil {
					return a.fail(err, "reading statistics")
				}
				return a.printDocument(doc)
			}

			results := make([]fuseki.Document, len(args))
			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(statsConcurrency)
			for i, name := range args {
				g.Go(func() error {
					doc, err := admin.Stats(ctx, name)
					if err != nil {
						return err
					}
					results[i] = doc
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return a.fail(err, "reading statistics")
			}

			merged := fuseki.Document{}
			for i, name := range args {
				merged[name] = map[string]any(results[i])
			}
			return a.printDocument(merged)
		},
	}
}
