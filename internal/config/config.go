// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 NetSchool Go Contributors

// Package config loads netschool CLI configuration from a YAML file and
// command-line flags.
//
// Flags override the file; unset flags fill in whatever the file leaves
// out. The password is read from NETSCHOOL_PASSWORD when set, so it does
// not have to live in the file.
package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"
	goyaml "gopkg.in/yaml.v3"

	"github.com/netschool-go/netschool/internal/logging"
	"github.com/netschool-go/netschool/internal/netschool"
	"github.com/netschool-go/netschool/internal/webclient"
	"github.com/netschool-go/netschool/internal/xdg"
)

// PasswordEnv names the environment variable that overrides account.password.
const PasswordEnv = "NETSCHOOL_PASSWORD"

// DefaultClientVersion is the API client version announced to the portal.
const DefaultClientVersion = "5.0.3"

// Config is the complete CLI configuration.
type Config struct {
	Portal  PortalConfig  `koanf:"portal" json:"portal,omitempty" yaml:"portal,omitempty"`
	Account AccountConfig `koanf:"account" json:"account,omitempty" yaml:"account,omitempty"`
	Log     LogConfig     `koanf:"log" json:"log,omitempty" yaml:"log,omitempty"`
}

// PortalConfig selects the portal and tunes the transport.
type PortalConfig struct {
	URL             string   `koanf:"url" json:"url,omitempty" yaml:"url,omitempty" jsonschema:"description=Portal site URL such as https://sgo.example.ru/"`
	ClientVersion   string   `koanf:"client_version" json:"client_version,omitempty" yaml:"client_version,omitempty" jsonschema:"description=Client version sent in the User-Agent"`
	Timeout         Duration `koanf:"timeout" json:"timeout,omitempty" yaml:"timeout,omitempty"`
	RollbackTimeout Duration `koanf:"rollback_timeout" json:"rollback_timeout,omitempty" yaml:"rollback_timeout,omitempty"`
}

// AccountConfig holds the login account.
type AccountConfig struct {
	Username string `koanf:"username" json:"username,omitempty" yaml:"username,omitempty"`
	Password string `koanf:"password" json:"password,omitempty" yaml:"password,omitempty" jsonschema:"description=Prefer the NETSCHOOL_PASSWORD environment variable"`
	School   string `koanf:"school" json:"school,omitempty" yaml:"school,omitempty" jsonschema:"description=Exact school name as listed in the portal directory"`
}

// LogConfig configures logging.
type LogConfig struct {
	Format string `koanf:"format" json:"format,omitempty" yaml:"format,omitempty" jsonschema:"enum=json,enum=text"`
	Level  string `koanf:"level" json:"level,omitempty" yaml:"level,omitempty" jsonschema:"enum=debug,enum=info,enum=warn,enum=error"`
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		Portal: PortalConfig{
			ClientVersion:   DefaultClientVersion,
			Timeout:         Duration(webclient.DefaultTimeout),
			RollbackTimeout: Duration(netschool.DefaultRollbackTimeout),
		},
		Log: LogConfig{
			Format: logging.FormatText,
			Level:  "warn",
		},
	}
}

// Load reads the config file at path, then applies flags and the
// environment. An empty path means the default XDG location, which may be
// absent; an explicit path must exist. flags may be nil.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	explicit := path != ""
	if !explicit {
		defaultPath, err := xdg.ConfigFile()
		if err == nil {
			path = defaultPath
		}
	}

	if path != "" {
		data, err := os.ReadFile(path) //nolint:gosec // path is chosen by the user
		switch {
		case errors.Is(err, fs.ErrNotExist) && !explicit:
			// no config file; flags and defaults only
		case err != nil:
			return nil, oops.Code("CONFIG_READ_FAILED").With("path", path).Wrap(err)
		default:
			if err := ValidateSchema(data); err != nil {
				return nil, oops.Code("CONFIG_INVALID").With("path", path).Wrap(err)
			}
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, oops.Code("CONFIG_READ_FAILED").With("path", path).Wrap(err)
			}
		}
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, flagKey(flags)), nil); err != nil {
			return nil, oops.Code("CONFIG_INVALID").Wrap(err)
		}
	}

	cfg := Default()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.TextUnmarshallerHookFunc(),
			),
			Result:           &cfg,
			TagName:          "koanf",
			WeaklyTypedInput: true,
		},
	}); err != nil {
		return nil, oops.Code("CONFIG_INVALID").Wrap(err)
	}

	if password, ok := os.LookupEnv(PasswordEnv); ok {
		cfg.Account.Password = password
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the fields every command needs.
func (c *Config) Validate() error {
	if c.Portal.URL == "" {
		return oops.Code("CONFIG_INVALID").With("field", "portal.url").Errorf("portal url is required")
	}
	if _, err := webclient.ParseBaseURL(c.Portal.URL); err != nil {
		return oops.Code("CONFIG_INVALID").With("field", "portal.url").Wrap(err)
	}
	if _, err := semver.StrictNewVersion(c.Portal.ClientVersion); err != nil {
		return oops.Code("CONFIG_INVALID").
			With("field", "portal.client_version").
			With("value", c.Portal.ClientVersion).
			Wrapf(err, "client version must be a semantic version")
	}
	if c.Portal.Timeout < 0 || c.Portal.RollbackTimeout < 0 {
		return oops.Code("CONFIG_INVALID").With("field", "portal.timeout").Errorf("timeouts must not be negative")
	}
	if err := logging.ValidateFormat(c.Log.Format); err != nil {
		return oops.Code("CONFIG_INVALID").With("field", "log.format").Wrap(err)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return oops.Code("CONFIG_INVALID").With("field", "log.level").Wrap(err)
	}
	return nil
}

// RequireAccount checks that a login can be attempted.
func (c *Config) RequireAccount() error {
	missing := make([]string, 0, 3)
	if c.Account.Username == "" {
		missing = append(missing, "account.username")
	}
	if c.Account.Password == "" {
		missing = append(missing, "account.password ("+PasswordEnv+")")
	}
	if c.Account.School == "" {
		missing = append(missing, "account.school")
	}
	if len(missing) > 0 {
		return oops.Code("CONFIG_INVALID").With("missing", missing).Errorf("account settings missing: %v", missing)
	}
	return nil
}

// UserAgent returns the User-Agent announced to the portal.
func (c *Config) UserAgent() string {
	return "NetSchoolAPI/" + c.Portal.ClientVersion
}

// BaseURL returns the parsed portal URL. Call Validate first.
func (c *Config) BaseURL() webclient.BaseURL {
	base, err := webclient.ParseBaseURL(c.Portal.URL)
	if err != nil {
		return webclient.BaseURL{}
	}
	return base
}

// Duration is a time.Duration written as a Go duration string ("30s").
type Duration time.Duration

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

func (d Duration) String() string {
	return time.Duration(d).String()
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return oops.With("value", string(text)).Wrap(err)
	}
	*d = Duration(v)
	return nil
}

// Template renders a starter config file for the given portal URL.
func Template(portalURL string) ([]byte, error) {
	cfg := Default()
	cfg.Portal.URL = portalURL
	data, err := goyaml.Marshal(&cfg)
	if err != nil {
		return nil, oops.Wrapf(err, "render config template")
	}
	return data, nil
}
