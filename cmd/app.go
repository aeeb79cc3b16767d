// Copyright (c) 2025 The fuseki-manager Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"fuseki-manager/internal/config"
	clierrors "fuseki-manager/internal/errors"
	"fuseki-manager/internal/httperrors"
	"fuseki-manager/internal/keychain"
	"fuseki-manager/internal/logging"
	"fuseki-manager/pkg/fuseki"
)

// passwordEnv overrides the keychain password of the selected profile.
const passwordEnv = "FUSEKI_PASSWORD"

type rootFlags struct {
	profile string
	host    string
	port    int
	secure  bool
	user    string
	dataset string
	verbose bool
	output  string
}

// app is the state shared by every command of one invocation.
type app struct {
	deps  deps
	flags rootFlags

	cfg         config.Config
	profileName string
	profile     config.Profile
	password    string
	logger      *slog.Logger
	out         io.Writer
	errOut      io.Writer
}

// resolve loads the config and applies flag overrides: flag > profile > default.
func (a *app) resolve(cmd *cobra.Command) error {
	a.out = cmd.OutOrStdout()
	a.errOut = cmd.ErrOrStderr()

	if err := validateOutputFormat(a.flags.output); err != nil {
		return err
	}

	cfg, err := a.deps.loadConfig()
	if err != nil {
		return clierrors.Wrap(clierrors.ConfigInvalid, "load config", err)
	}
	a.cfg = cfg

	level := cfg.LogLevel
	if a.flags.verbose {
		level = "debug"
	}
	a.logger = logging.NewLogger(a.errOut, level)

	a.profileName, a.profile = cfg.Profile(a.flags.profile)
	flags := cmd.Flags()
	if flags.Changed("host") {
		a.profile.Host = a.flags.host
	}
	if flags.Changed("port") {
		a.profile.Port = a.flags.port
	}
	if flags.Changed("secure") {
		a.profile.Secured = a.flags.secure
	}
	if flags.Changed("user") {
		a.profile.User = a.flags.user
	}
	if flags.Changed("dataset") {
		a.profile.Dataset = a.flags.dataset
	}

	a.password = a.lookupPassword()
	return nil
}

// lookupPassword reads the password from the environment or the keychain.
// Missing credentials are not an error: the server may not require them.
func (a *app) lookupPassword() string {
	if pw := os.Getenv(passwordEnv); pw != "" {
		return pw
	}
	if a.profile.User == "" {
		return ""
	}
	store, err := a.deps.secrets()
	if err != nil {
		a.logger.Debug("keychain unavailable", "error", logging.Mask(err.Error()))
		return ""
	}
	pw, err := store.LoadPassword(a.profileName)
	if err != nil && !errors.Is(err, keychain.ErrNoPassword) {
		a.logger.Debug("keychain lookup failed", "profile", a.profileName, "error", err)
	}
	return pw
}

func (a *app) clientConfig() fuseki.Config {
	return a.profile.ClientConfig(a.password)
}

func (a *app) transport() *fuseki.Transport {
	opts := append([]fuseki.Option{fuseki.WithLogger(a.logger)}, a.profile.TransportOptions()...)
	return fuseki.NewTransport(a.clientConfig(), opts...)
}

func (a *app) dataClient(t *fuseki.Transport) (*fuseki.DataClient, error) {
	opts, err := a.profile.DataOptions()
	if err != nil {
		return nil, clierrors.Wrap(clierrors.ConfigInvalid, "profile "+a.profileName, err)
	}
	return fuseki.NewDataClient(t, opts...), nil
}

func (a *app) admin() (*fuseki.AdminClient, error) {
	t := a.transport()
	data, err := a.dataClient(t)
	if err != nil {
		return nil, err
	}
	return fuseki.NewAdminClient(t, data), nil
}

func (a *app) data() (*fuseki.DataClient, error) {
	return a.dataClient(a.transport())
}

// dataset returns the selected dataset or fails when none is configured.
func (a *app) dataset() (string, error) {
	if a.profile.Dataset == "" {
		return "", clierrors.New(clierrors.MissingDataset, "no dataset selected; pass --dataset or set it in the profile")
	}
	return a.profile.Dataset, nil
}

func (a *app) sparql() (*fuseki.SPARQLClient, error) {
	ds, err := a.dataset()
	if err != nil {
		return nil, err
	}
	t := a.transport()
	data, err := a.dataClient(t)
	if err != nil {
		return nil, err
	}
	return fuseki.NewSPARQLClient(t, ds,
		fuseki.WithNamespaces(a.profile.NamespaceList()),
		fuseki.WithQueryService(a.profile.QueryService),
		fuseki.WithUpdateService(a.profile.UpdateService),
		fuseki.WithDataClient(data),
	), nil
}

// reportedError marks an error whose explanation was already printed.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// fail prints troubleshooting help for library errors and returns err wrapped with action.
func (a *app) fail(err error, action string) error {
	if err == nil {
		return nil
	}
	if fuseki.KindOf(err) == "" {
		return err
	}
	if a.flags.output == "json" {
		return err
	}
	return &reportedError{err: httperrors.Report(a.errOut, err, action, a.clientConfig().BaseURI())}
}
