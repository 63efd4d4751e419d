// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 NetSchool Go Contributors

package main

import (
	"context"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/netschool-go/netschool/internal/config"
	"github.com/netschool-go/netschool/internal/logging"
	"github.com/netschool-go/netschool/internal/netschool"
	"github.com/netschool-go/netschool/internal/webclient"
)

// globalOptions holds the flags shared by every subcommand that are not
// part of the config file.
type globalOptions struct {
	configFile string
	envFile    string
	output     string
	metrics    bool
}

// NewRootCmd creates the root command for the netschool CLI.
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "netschool",
		Short: "netschool - a NetSchool portal client",
		Long: `netschool talks to a NetSchool school portal: it lists the school
directory, signs in with the portal's salted password digest and prints the
account context fetched after login.`,
		SilenceUsage: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return opts.loadEnvFile()
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "config file path (default $XDG_CONFIG_HOME/netschool/config.yaml)")
	flags.StringVar(&opts.envFile, "env-file", "", "dotenv file to read NETSCHOOL_PASSWORD and other variables from")
	flags.StringVarP(&opts.output, "output", "o", formatTable, "output format (table, json, yaml)")
	flags.BoolVar(&opts.metrics, "metrics", false, "print Prometheus metrics to stderr when the command finishes")
	config.BindFlags(flags)

	cmd.AddCommand(NewSchoolsCmd(opts))
	cmd.AddCommand(NewSchoolCmd(opts))
	cmd.AddCommand(NewLoginCmd(opts))
	cmd.AddCommand(NewDigestCmd(opts))
	cmd.AddCommand(NewConfigCmd(opts))

	return cmd
}

// loadEnvFile exports the variables of --env-file. Variables already set in
// the environment win.
func (o *globalOptions) loadEnvFile() error {
	if o.envFile == "" {
		return nil
	}
	if err := godotenv.Load(o.envFile); err != nil {
		return oops.Code("CLI_ENV_FILE").With("path", o.envFile).Wrapf(err, "load env file")
	}
	return nil
}

// env is everything a portal command needs, built from the loaded config.
type env struct {
	cfg      *config.Config
	logger   *slog.Logger
	registry *prometheus.Registry
	anon     webclient.Anonymous
}

// portalCommand adapts fn into a cobra RunE that loads the config, builds the
// portal client and reports metrics when asked to.
func (o *globalOptions) portalCommand(fn func(ctx context.Context, cmd *cobra.Command, e *env, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := validateOutput(o.output); err != nil {
			return err
		}

		e, err := o.setup(cmd)
		if err != nil {
			return err
		}
		if o.metrics {
			defer func() {
				if err := writeMetrics(cmd.ErrOrStderr(), e.registry); err != nil {
					e.logger.Warn("failed to write metrics", "error", err)
				}
			}()
		}
		return fn(cmd.Context(), cmd, e, args)
	}
}

func (o *globalOptions) setup(cmd *cobra.Command) (*env, error) {
	cfg, err := config.Load(o.configFile, cmd.Flags())
	if err != nil {
		return nil, err
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	logger := logging.Setup(logging.Options{
		Service: "netschool",
		Version: version,
		Format:  cfg.Log.Format,
		Level:   level,
		Writer:  cmd.ErrOrStderr(),
	})

	registry := prometheus.NewRegistry()
	netschool.RegisterMetrics(registry)

	client, err := webclient.New(webclient.Config{
		BaseURL:   cfg.BaseURL(),
		UserAgent: cfg.UserAgent(),
		Timeout:   cfg.Portal.Timeout.Std(),
		Logger:    logger,
	})
	if err != nil {
		return nil, oops.Wrapf(err, "create portal client")
	}

	return &env{
		cfg:      cfg,
		logger:   logger,
		registry: registry,
		anon:     webclient.NewAnonymous(client),
	}, nil
}
