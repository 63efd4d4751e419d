// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 NetSchool Go Contributors

package errutil_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/samber/oops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netschool-go/netschool/pkg/errutil"
)

func TestCode(t *testing.T) {
	assert.Equal(t, "SOME_CODE", errutil.Code(oops.Code("SOME_CODE").Errorf("boom")))
	assert.Empty(t, errutil.Code(errors.New("plain")))
	assert.Empty(t, errutil.Code(oops.Errorf("no code")))
	assert.Empty(t, errutil.Code(nil))

	wrapped := fmt.Errorf("outer: %w", oops.Code("INNER").Errorf("inner"))
	assert.Equal(t, "INNER", errutil.Code(wrapped))
	assert.True(t, errutil.HasCode(wrapped, "INNER"))
	assert.False(t, errutil.HasCode(nil, ""))
}

func TestLogError_WithOopsError(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	err := oops.Code("NETSCHOOL_INVALID_RESPONSE").
		With("path", "years/current").
		Errorf("unexpected body")

	errutil.LogError(logger, "bootstrap failed", err)

	var logEntry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &logEntry))
	assert.Equal(t, "ERROR", logEntry["level"])
	assert.Equal(t, "bootstrap failed", logEntry["msg"])
	assert.Equal(t, "NETSCHOOL_INVALID_RESPONSE", logEntry["code"])
	errCtx, ok := logEntry["context"].(map[string]any)
	require.True(t, ok, "context should be an object")
	assert.Equal(t, "years/current", errCtx["path"])
}

func TestLog_WithStandardErrorAtWarn(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	errutil.Log(context.Background(), logger, slog.LevelWarn, "logout failed", errors.New("connection reset"))

	var logEntry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &logEntry))
	assert.Equal(t, "WARN", logEntry["level"])
	assert.Contains(t, logEntry["error"], "connection reset")
	assert.NotContains(t, logEntry, "code")
}
