// Copyright (c) 2025 The fuseki-manager Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	clierrors "fuseki-manager/internal/errors"
)

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the saved password of the profile",
		Long: `The logout command deletes the password of the selected profile from the OS
keychain. The profile's connection settings stay in the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := a.deps.secrets()
			if err != nil {
				return clierrors.Wrap(clierrors.CredentialsUnavailable, "open keychain", err)
			}
			if err := store.DeletePassword(a.profileName); err != nil {
				return clierrors.Wrap(clierrors.CredentialsUnavailable, "delete password", err)
			}
			fmt.Fprintf(a.out, "✅ Password of profile %s has been removed\n", a.profileName)
			return nil
		},
	}
}
