// Copyright (c) 2025 The fuseki-manager Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version holds the CLI version information.
	// This value is typically set at build time using -ldflags.
	Version = "0.0.0-dev"
)

func newVersionCmd(a *app) *cobra.Command {
	var withServer bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the CLI version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := map[string]string{"fusekictl": Version}
			if withServer {
				admin, err := a.admin()
				if err != nil {
					return err
				}
				doc, err := admin.ServerInfo(cmd.Context())
				if err != nil {
					return a.fail(err, "reading server version")
				}
				info["server"] = doc.String("version")
			}
			if a.jsonOutput() {
				return printJSON(a.out, info)
			}
			fmt.Fprintf(a.out, "fusekictl %s\n", Version)
			if withServer {
				fmt.Fprintf(a.out, "fuseki %s\n", info["server"])
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&withServer, "server", false, "Also print the server version")
	return cmd
}
