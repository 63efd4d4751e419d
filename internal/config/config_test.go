// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 NetSchool Go Contributors

package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netschool-go/netschool/pkg/errutil"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	BindFlags(fs)
	fs.String("output", "table", "not configuration")
	require.NoError(t, fs.Parse(args))
	return fs
}

// isolate points the default config location at an empty directory.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(PasswordEnv, "")
	require.NoError(t, os.Unsetenv(PasswordEnv))
}

func TestLoad_File(t *testing.T) {
	isolate(t)
	path := writeConfig(t, `
portal:
  url: https://sgo.example.ru/
  timeout: 5s
account:
  username: student
  school: Lyceum 42
log:
  format: json
  level: debug
`)

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "https://sgo.example.ru/", cfg.Portal.URL)
	assert.Equal(t, 5*time.Second, cfg.Portal.Timeout.Std())
	assert.Equal(t, Default().Portal.RollbackTimeout, cfg.Portal.RollbackTimeout)
	assert.Equal(t, DefaultClientVersion, cfg.Portal.ClientVersion)
	assert.Equal(t, "student", cfg.Account.Username)
	assert.Equal(t, "Lyceum 42", cfg.Account.School)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "NetSchoolAPI/5.0.3", cfg.UserAgent())
	assert.Equal(t, "https://sgo.example.ru/webapi/", cfg.BaseURL().APIRoute().String())
}

func TestLoad_FlagsOverrideFile(t *testing.T) {
	isolate(t)
	path := writeConfig(t, `
portal:
  url: https://sgo.example.ru/
  timeout: 5s
log:
  level: debug
`)

	cfg, err := Load(path, newFlags(t, "--url", "https://other.example.ru", "--username", "parent", "--timeout", "1m"))
	require.NoError(t, err)

	assert.Equal(t, "https://other.example.ru", cfg.Portal.URL)
	assert.Equal(t, "parent", cfg.Account.Username)
	assert.Equal(t, time.Minute, cfg.Portal.Timeout.Std())
	assert.Equal(t, "debug", cfg.Log.Level, "unset flag must not override the file")
	assert.Equal(t, "text", cfg.Log.Format, "unset flag fills in the default")
}

func TestLoad_FlagsOnly(t *testing.T) {
	isolate(t)

	cfg, err := Load("", newFlags(t, "--url", "https://sgo.example.ru", "--school", "School 1"))
	require.NoError(t, err)

	assert.Equal(t, "https://sgo.example.ru", cfg.Portal.URL)
	assert.Equal(t, "School 1", cfg.Account.School)
	assert.Equal(t, Default().Portal.Timeout, cfg.Portal.Timeout)
}

func TestLoad_DefaultLocation(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "netschool"), 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "netschool", "config.yaml"),
		[]byte("portal:\n  url: https://default.example.ru/\n"), 0o600))

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "https://default.example.ru/", cfg.Portal.URL)
}

func TestLoad_PasswordFromEnvironment(t *testing.T) {
	isolate(t)
	path := writeConfig(t, "portal:\n  url: https://sgo.example.ru/\naccount:\n  password: from-file\n")

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.Account.Password)

	t.Setenv(PasswordEnv, "from-env")
	cfg, err = Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Account.Password)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		code    string
	}{
		{name: "missing url", content: "log:\n  level: info\n", code: "CONFIG_INVALID"},
		{name: "unknown key", content: "portal:\n  url: https://a.example/\n  proxy: x\n", code: "CONFIG_INVALID"},
		{name: "bad duration", content: "portal:\n  url: https://a.example/\n  timeout: soon\n", code: "CONFIG_INVALID"},
		{name: "numeric duration", content: "portal:\n  url: https://a.example/\n  timeout: 30\n", code: "CONFIG_INVALID"},
		{name: "bad log format", content: "portal:\n  url: https://a.example/\nlog:\n  format: xml\n", code: "CONFIG_INVALID"},
		{name: "bad client version", content: "portal:\n  url: https://a.example/\n  client_version: five\n", code: "CONFIG_INVALID"},
		{name: "bad url scheme", content: "portal:\n  url: ftp://a.example/\n", code: "CONFIG_INVALID"},
		{name: "not yaml", content: "portal: [\n", code: "CONFIG_INVALID"},
		{name: "empty", content: "\n", code: "CONFIG_INVALID"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			_, err := Load(writeConfig(t, tt.content), nil)
			require.Error(t, err)
			errutil.AssertErrorCode(t, err, tt.code)
		})
	}
}

func TestLoad_ExplicitPathMustExist(t *testing.T) {
	isolate(t)
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	require.Error(t, err)
	errutil.AssertErrorCode(t, err, "CONFIG_READ_FAILED")
}

func TestRequireAccount(t *testing.T) {
	cfg := Default()
	err := cfg.RequireAccount()
	require.Error(t, err)
	errutil.AssertErrorCode(t, err, "CONFIG_INVALID")
	assert.Contains(t, err.Error(), "account.username")
	assert.Contains(t, err.Error(), PasswordEnv)

	cfg.Account = AccountConfig{Username: "u", Password: "p", School: "s"}
	assert.NoError(t, cfg.RequireAccount())
}

func TestDuration_Text(t *testing.T) {
	var d Duration
	require.NoError(t, d.UnmarshalText([]byte("1m30s")))
	assert.Equal(t, 90*time.Second, d.Std())

	text, err := d.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "1m30s", string(text))

	assert.Error(t, d.UnmarshalText([]byte("90")))
}

func TestGenerateSchema(t *testing.T) {
	data, err := GenerateSchema()
	require.NoError(t, err)

	var schema map[string]any
	require.NoError(t, json.Unmarshal(data, &schema))
	assert.Equal(t, SchemaID, schema["$id"])

	props, ok := schema["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, props, "portal")
	assert.Contains(t, props, "account")
	assert.Contains(t, props, "log")

	portal := props["portal"].(map[string]any)["properties"].(map[string]any)
	timeout := portal["timeout"].(map[string]any)
	assert.Equal(t, "string", timeout["type"])
}

func TestValidateSchema_FormatsValidationErrors(t *testing.T) {
	err := ValidateSchema([]byte("log:\n  level: loud\n"))
	require.Error(t, err)
	msg := FormatSchemaError(err)
	assert.NotEmpty(t, msg)
	assert.Empty(t, FormatSchemaError(nil))
}

func TestTemplate(t *testing.T) {
	isolate(t)
	data, err := Template("https://sgo.example.ru/")
	require.NoError(t, err)
	require.NoError(t, ValidateSchema(data))

	path := writeConfig(t, string(data))
	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "https://sgo.example.ru/", cfg.Portal.URL)
	assert.Equal(t, Default().Portal, PortalConfig{
		ClientVersion:   cfg.Portal.ClientVersion,
		Timeout:         cfg.Portal.Timeout,
		RollbackTimeout: cfg.Portal.RollbackTimeout,
	})
}
