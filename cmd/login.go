// Copyright (c) 2025 The fuseki-manager Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	clierrors "fuseki-manager/internal/errors"
	"fuseki-manager/internal/terminal"
)

func newLoginCmd(a *app) *cobra.Command {
	var (
		passwordStdin bool
		skipVerify    bool
	)
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Save a server profile and its password",
		Long: `The login command stores the connection settings of the selected profile in the
config file and the password in the OS keychain. The credentials are checked
against the server's administration endpoint before anything is saved.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in := bufio.NewReader(a.deps.stdin)
			if a.profile.User == "" {
				user, err := terminal.ReadLine(a.out, in, "User", "admin")
				if err != nil {
					return clierrors.Wrap(clierrors.BadInput, "read user", err)
				}
				a.profile.User = user
			}

			password, err := a.readPassword(in, passwordStdin)
			if err != nil {
				return err
			}
			a.password = password

			if !skipVerify {
				ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
				defer cancel()
				admin, err := a.admin()
				if err != nil {
					return err
				}
				if _, err := admin.ServerInfo(ctx); err != nil {
					return a.fail(err, "verifying credentials")
				}
			}

			store, err := a.deps.secrets()
			if err != nil {
				return clierrors.Wrap(clierrors.CredentialsUnavailable, "open keychain", err)
			}
			if err := store.SavePassword(a.profileName, password); err != nil {
				return clierrors.Wrap(clierrors.CredentialsUnavailable, "save password", err)
			}

			a.cfg.SetProfile(a.profileName, a.profile)
			a.cfg.CurrentProfile = a.profileName
			if err := a.deps.saveConfig(a.cfg); err != nil {
				return clierrors.Wrap(clierrors.ConfigInvalid, "save config", err)
			}

			pterm.Fprintln(a.out, pterm.Sprintf("✅ Logged in to %s as %s (profile %s)",
				a.clientConfig().BaseURI(), a.profile.User, a.profileName))
			return nil
		},
	}
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "Read the password from stdin")
	cmd.Flags().BoolVar(&skipVerify, "no-verify", false, "Save without contacting the server")
	return cmd
}

// readPassword takes the password from stdin or an interactive prompt.
func (a *app) readPassword(in io.Reader, fromStdin bool) (string, error) {
	if fromStdin {
		pw, err := terminal.ReadLine(a.errOut, in, "Password", "")
		if err != nil {
			return "", clierrors.Wrap(clierrors.BadInput, "read password", err)
		}
		return pw, nil
	}
	prompt := fmt.Sprintf("Password for %s: ", a.profile.User)
	pw, err := terminal.ReadPassword(a.errOut, prompt)
	if err != nil {
		return "", clierrors.Wrap(clierrors.BadInput, "read password (use --password-stdin when not on a terminal)", err)
	}
	terminal.ClearPreviousLines(a.errOut, len(prompt))
	return pw, nil
}
