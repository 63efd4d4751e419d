// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 NetSchool Go Contributors

package main

import (
	"io"
	"os"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/netschool-go/netschool/internal/auth"
	"github.com/netschool-go/netschool/internal/config"
)

type digestView struct {
	Full    string `json:"full" yaml:"full"`
	Trimmed string `json:"trimmed" yaml:"trimmed"`
}

// NewDigestCmd creates the digest subcommand.
func NewDigestCmd(opts *globalOptions) *cobra.Command {
	var salt string

	cmd := &cobra.Command{
		Use:   "digest",
		Short: "Compute the login password digest for a salt",
		Long: `Compute the salted password digest the portal expects at login, in both
the full and the password-length forms. The password is read from the
NETSCHOOL_PASSWORD environment variable. No request is sent.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateOutput(opts.output); err != nil {
				return err
			}
			password, ok := os.LookupEnv(config.PasswordEnv)
			if !ok {
				return oops.Code("CLI_MISSING_PASSWORD").Errorf("%s is not set", config.PasswordEnv)
			}

			d, err := auth.NewLegacyDigester().Digest(password, salt)
			if err != nil {
				return err
			}

			view := digestView{Full: d.Full, Trimmed: d.Trimmed}
			return render(cmd.OutOrStdout(), opts.output, view, func(w io.Writer) {
				row(w, "FULL", view.Full)
				row(w, "TRIMMED", view.Trimmed)
			})
		},
	}

	cmd.Flags().StringVar(&salt, "salt", "", "salt issued by the portal's auth/getdata endpoint")
	_ = cmd.MarkFlagRequired("salt")

	return cmd
}
