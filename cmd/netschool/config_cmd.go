// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 NetSchool Go Contributors

package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/netschool-go/netschool/internal/config"
	"github.com/netschool-go/netschool/internal/xdg"
)

// NewConfigCmd creates the config subcommand group.
func NewConfigCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the netschool config file",
	}

	cmd.AddCommand(newConfigInitCmd(opts))
	cmd.AddCommand(newConfigValidateCmd(opts))
	cmd.AddCommand(newConfigSchemaCmd())

	return cmd
}

func newConfigInitCmd(opts *globalOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter config file",
		Long: `Write a starter config file for the portal given by --url. The file goes
to --config when set, otherwise to $XDG_CONFIG_HOME/netschool/config.yaml.
An existing file is kept unless --force is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			url, err := cmd.Flags().GetString("url")
			if err != nil {
				return oops.Wrap(err)
			}
			if url == "" {
				return oops.Code("CLI_MISSING_FLAG").Errorf("--url is required")
			}

			path, err := configPath(opts)
			if err != nil {
				return err
			}
			if _, err := os.Stat(path); err == nil && !force {
				return oops.Code("CLI_CONFIG_EXISTS").With("path", path).
					Errorf("config file already exists (use --force to overwrite)")
			} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return oops.With("path", path).Wrap(err)
			}

			data, err := config.Template(url)
			if err != nil {
				return err
			}
			if err := xdg.EnsureDir(filepath.Dir(path)); err != nil {
				return err
			}
			if err := os.WriteFile(path, data, 0o600); err != nil {
				return oops.With("path", path).Wrapf(err, "write config file")
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")

	return cmd
}

func newConfigValidateCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the config file and flags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := configPath(opts)
			if err != nil {
				return err
			}
			if _, err := config.Load(opts.configFile, cmd.Flags()); err != nil {
				cmd.PrintErrln(config.FormatSchemaError(err))
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", path)
			return nil
		},
	}
}

func newConfigSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the config file JSON Schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := config.GenerateSchema()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}

func configPath(opts *globalOptions) (string, error) {
	if opts.configFile != "" {
		return opts.configFile, nil
	}
	path, err := xdg.ConfigFile()
	if err != nil {
		return "", err
	}
	return path, nil
}
