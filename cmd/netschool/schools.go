// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 NetSchool Go Contributors

package main

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/netschool-go/netschool/internal/netschool"
)

// NewSchoolsCmd creates the schools subcommand.
func NewSchoolsCmd(opts *globalOptions) *cobra.Command {
	var match string

	cmd := &cobra.Command{
		Use:   "schools",
		Short: "List the schools registered on the portal",
		Long: `List the portal's school directory. No login is needed. With --match
only schools whose name matches the glob pattern are shown.`,
		Args: cobra.NoArgs,
		RunE: opts.portalCommand(func(ctx context.Context, cmd *cobra.Command, e *env, _ []string) error {
			dir := netschool.NewDirectory(e.anon, e.logger)

			var (
				schools []netschool.SchoolInfo
				err     error
			)
			if match != "" {
				schools, err = dir.Match(ctx, match)
			} else {
				schools, err = dir.List(ctx)
			}
			if err != nil {
				return err
			}

			return render(cmd.OutOrStdout(), opts.output, schools, func(w io.Writer) {
				schoolHeader(w)
				for _, s := range schools {
					schoolRow(w, s)
				}
			})
		}),
	}

	cmd.Flags().StringVar(&match, "match", "", "glob pattern the school name must match, e.g. 'Lyceum*'")

	return cmd
}

// NewSchoolCmd creates the school subcommand.
func NewSchoolCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "school NAME",
		Short: "Show one school by its exact name",
		Long: `Look up a school in the portal directory by its exact name. When several
schools share the name the first one listed by the portal is shown.`,
		Args: cobra.ExactArgs(1),
		RunE: opts.portalCommand(func(ctx context.Context, cmd *cobra.Command, e *env, args []string) error {
			school, err := netschool.NewDirectory(e.anon, e.logger).FindByName(ctx, args[0])
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), opts.output, school, func(w io.Writer) {
				schoolHeader(w)
				schoolRow(w, school)
			})
		}),
	}
}

func schoolHeader(w io.Writer) {
	row(w, "ID", "NAME", "TYPE", "CITY", "MUNICIPALITY", "STATE", "COUNTRY")
}

func schoolRow(w io.Writer, s netschool.SchoolInfo) {
	row(w, s.ID, s.Name, s.Type, s.CityID, s.MunicipalityID, s.StateID, s.CountryID)
}
