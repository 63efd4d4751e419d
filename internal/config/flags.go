// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 NetSchool Go Contributors

package config

import (
	"github.com/knadh/koanf/providers/posflag"
	"github.com/spf13/pflag"
)

// flagKeys maps command-line flags to config keys. Flags not listed here
// are not configuration and are ignored by Load.
var flagKeys = map[string]string{
	"url":              "portal.url",
	"client-version":   "portal.client_version",
	"timeout":          "portal.timeout",
	"rollback-timeout": "portal.rollback_timeout",
	"username":         "account.username",
	"school":           "account.school",
	"log-format":       "log.format",
	"log-level":        "log.level",
}

// BindFlags registers the configuration flags on fs with the built-in
// defaults.
func BindFlags(fs *pflag.FlagSet) {
	def := Default()
	fs.String("url", def.Portal.URL, "portal site URL")
	fs.String("client-version", def.Portal.ClientVersion, "client version sent in the User-Agent")
	fs.Duration("timeout", def.Portal.Timeout.Std(), "per-request timeout")
	fs.Duration("rollback-timeout", def.Portal.RollbackTimeout.Std(), "timeout for the logout after a failed login")
	fs.String("username", def.Account.Username, "account username")
	fs.String("school", def.Account.School, "school name as listed in the portal directory")
	fs.String("log-format", def.Log.Format, "log format (json or text)")
	fs.String("log-level", def.Log.Level, "log level (debug, info, warn, error)")
}

// flagKey returns the posflag callback for fs.
func flagKey(fs *pflag.FlagSet) func(*pflag.Flag) (string, any) {
	return func(f *pflag.Flag) (string, any) {
		key, ok := flagKeys[f.Name]
		if !ok {
			return "", nil
		}
		return key, posflag.FlagVal(fs, f)
	}
}
