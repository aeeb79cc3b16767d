// Copyright (c) 2025 The fuseki-manager Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newPingCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the server is running",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			admin, err := a.admin()
			if err != nil {
				return err
			}
			ts, err := admin.Ping(cmd.Context())
			if err != nil {
				return a.fail(err, "pinging the server")
			}
			if a.jsonOutput() {
				return printJSON(a.out, map[string]string{"server": a.clientConfig().BaseURI(), "time": ts.Format(time.RFC3339Nano)})
			}
			fmt.Fprintf(a.out, "✅ %s is up (server time %s)\n", a.clientConfig().BaseURI(), ts.Format(time.RFC3339))
			return nil
		},
	}
}

func newServerCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "server",
		Short: "Show server version, uptime and datasets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			admin, err := a.admin()
			if err != nil {
				return err
			}
			doc, err := admin.ServerInfo(cmd.Context())
			if err != nil {
				return a.fail(err, "reading server information")
			}
			if a.jsonOutput() {
				return printJSON(a.out, doc)
			}
			fmt.Fprintf(a.out, "Version: %s\nStarted: %s\nUptime:  %vs\n\n",
				doc.String("version"), doc.String("startDateTime"), doc["uptime"])
			return a.printDatasets(doc)
		},
	}
}
