// Copyright (c) 2025 The fuseki-manager Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package cmd provides the fusekictl command-line interface. It implements
// subcommands for Fuseki administration, data upload and SPARQL queries using
// the Cobra CLI framework, with pterm rendering for terminal output.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"fuseki-manager/internal/config"
	clierrors "fuseki-manager/internal/errors"
	"fuseki-manager/internal/keychain"
	"fuseki-manager/internal/logging"
	"fuseki-manager/pkg/fuseki"
)

// secretStore keeps profile passwords. *keychain.Manager implements it.
type secretStore interface {
	SavePassword(profile, password string) error
	LoadPassword(profile string) (string, error)
	DeletePassword(profile string) error
}

// deps are the side-effecting collaborators of the command tree.
type deps struct {
	loadConfig func() (config.Config, error)
	saveConfig func(config.Config) error
	secrets    func() (secretStore, error)
	stdin      io.Reader
}

func defaultDeps() deps {
	return deps{
		loadConfig: config.Load,
		saveConfig: config.Save,
		secrets: func() (secretStore, error) {
			return keychain.GetManager()
		},
		stdin: os.Stdin,
	}
}

// Execute runs the CLI application and returns the process exit code.
func Execute() int {
	rootCmd := newRootCmd(defaultDeps())
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		output, _ := rootCmd.PersistentFlags().GetString("output")
		if output == "json" {
			_ = printJSON(os.Stdout, errorObject(err))
			return 1
		}
		var reported *reportedError
		if !errors.As(err, &reported) {
			fmt.Fprintln(os.Stderr, "Error:", logging.Mask(err.Error()))
		}
		return 1
	}
	return 0
}

// errorObject describes err for JSON output.
func errorObject(err error) map[string]any {
	obj := map[string]any{"error": logging.Mask(err.Error())}
	var fe *fuseki.Error
	if errors.As(err, &fe) {
		obj["kind"] = string(fe.Kind)
		if fe.StatusCode != 0 {
			obj["http_status"] = fe.StatusCode
		}
	}
	var ce *clierrors.E
	if errors.As(err, &ce) {
		obj["kind"] = string(ce.Kind)
	}
	return obj
}

func newRootCmd(d deps) *cobra.Command {
	a := &app{deps: d}

	rootCmd := &cobra.Command{
		Use:           "fusekictl",
		Short:         "Manage Apache Jena Fuseki servers",
		Long:          `fusekictl administers Fuseki datasets, uploads RDF data and runs SPARQL queries and updates.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.resolve(cmd)
		},
	}

	f := rootCmd.PersistentFlags()
	f.StringVarP(&a.flags.profile, "profile", "p", "", "Config profile to use")
	f.StringVar(&a.flags.host, "host", fuseki.DefaultHost, "Fuseki host name")
	f.IntVar(&a.flags.port, "port", fuseki.DefaultPort, "Fuseki port (0 omits it from the URL)")
	f.BoolVar(&a.flags.secure, "secure", false, "Use HTTPS")
	f.StringVarP(&a.flags.user, "user", "u", "", "User for HTTP basic authentication")
	f.StringVarP(&a.flags.dataset, "dataset", "d", "", "Dataset for data and SPARQL commands")
	f.BoolVarP(&a.flags.verbose, "verbose", "v", false, "Log every HTTP request")
	f.StringVarP(&a.flags.output, "output", "o", "table", "Output format (table, json)")

	rootCmd.AddCommand(newVersionCmd(a))
	rootCmd.AddCommand(newLoginCmd(a))
	rootCmd.AddCommand(newLogoutCmd(a))
	rootCmd.AddCommand(newPingCmd(a))
	rootCmd.AddCommand(newServerCmd(a))
	rootCmd.AddCommand(newDatasetsCmd(a))
	rootCmd.AddCommand(newStatsCmd(a))
	rootCmd.AddCommand(newBackupCmd(a))
	rootCmd.AddCommand(newTasksCmd(a))
	rootCmd.AddCommand(newUploadCmd(a))
	rootCmd.AddCommand(newQueryCmd(a))
	rootCmd.AddCommand(newUpdateCmd(a))
	rootCmd.AddCommand(newAskCmd(a))
	rootCmd.AddCommand(newTriplesCmd(a))
	rootCmd.AddCommand(newValueCmd(a))

	return rootCmd
}
