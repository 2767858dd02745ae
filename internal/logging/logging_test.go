// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pdiddy/lapsed-patents/pkg/types"
)

func TestNewConsoleLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(types.LogConfig{Level: "warn", Format: "console"}, &buf)
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("backend slow", zap.Int("status", 503))
	require.NoError(t, logger.Sync())

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "backend slow")
	assert.Contains(t, out, "503")
}

func TestNewJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(types.LogConfig{Level: "debug", Format: "json"}, &buf)
	require.NoError(t, err)

	logger.Debug("request issued", zap.Uint64("seq", 4))
	require.NoError(t, logger.Sync())

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "request issued", entry["message"])
	assert.Equal(t, float64(4), entry["seq"])
}

func TestNewWithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lapsed-patents.log")
	var buf bytes.Buffer
	logger, err := New(types.LogConfig{Level: "error", Format: "console", File: path}, &buf)
	require.NoError(t, err)

	logger.Debug("only in file")
	require.NoError(t, logger.Sync())

	assert.Empty(t, buf.String())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `"message":"only in file"`))
}

func TestNewRejectsBadConfig(t *testing.T) {
	_, err := New(types.LogConfig{Level: "loud", Format: "console"}, &bytes.Buffer{})
	assert.ErrorContains(t, err, "parsing log level")

	_, err = New(types.LogConfig{Level: "info", Format: "xml"}, &bytes.Buffer{})
	assert.ErrorContains(t, err, "unknown log format")
}
