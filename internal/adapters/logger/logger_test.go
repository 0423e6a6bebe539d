package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/quill/internal/adapters/logger"
	"go.trai.ch/zerr"
)

// newTestLogger creates a logger with an injected bytes.Buffer for isolated testing.
// It also sets NO_COLOR=1 to ensure deterministic output without ANSI escape codes.
func newTestLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg := logger.New().(*logger.Logger)
	lg.SetOutput(buf)
	return lg, buf
}

func TestLogger_Info(t *testing.T) {
	tests := []struct {
		name       string
		msg        string
		goldenName string
	}{
		{name: "simple message", msg: "rebuilt 3 pages, skipped 12", goldenName: "info_basic"},
		{name: "multiline message", msg: "line1\nline2", goldenName: "info_multiline"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, buf := newTestLogger(t)
			lg.Info(tt.msg)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestLogger_Warn(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Warn("unknown invalidation term prefix \"foo\" in \"foo:bar\"")

	g := goldie.New(t)
	g.Assert(t, "warn_basic", buf.Bytes())
}

func TestLogger_Error(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		goldenName string
	}{
		{
			name:       "plain error",
			err:        errors.New("boom"),
			goldenName: "error_plain",
		},
		{
			name: "wrapped with metadata",
			err: zerr.With(
				zerr.Wrap(errors.New("mkdir /srv/cache: permission denied"), "failed to write cache manifest"),
				"cache_dir", "/srv/cache",
			),
			goldenName: "error_chain",
		},
		{
			name: "joined sentinel",
			err: errors.Join(
				zerr.New("permission denied writing cache manifest"),
				zerr.Wrap(errors.New("open manifest.json: permission denied"), "failed to write cache manifest"),
			),
			goldenName: "error_joined",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, buf := newTestLogger(t)
			lg.Error(tt.err)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestLogger_Error_Nil(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Error(nil)
	assert.Empty(t, buf.String())
}

func TestLogger_SetJSON(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.SetJSON(true)

	lg.Error(zerr.With(zerr.Wrap(errors.New("disk full"), "failed to write cache manifest"), "cache_dir", "/c"))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "ERROR", record[slog.LevelKey])
	assert.Equal(t, "operation failed", record[slog.MessageKey])
	assert.Equal(t, "failed to write cache manifest", record["error"])
	assert.Equal(t, []any{"disk full"}, record["causes"])
	assert.Equal(t, "/c", record["cache_dir"])

	buf.Reset()
	lg.SetJSON(false)
	lg.Info("back to pretty")
	assert.Equal(t, "back to pretty\n", buf.String())
}

func TestLogger_SetOutput_PreservesJSON(t *testing.T) {
	lg, _ := newTestLogger(t)
	lg.SetJSON(true)

	buf := &bytes.Buffer{}
	lg.SetOutput(buf)
	lg.Info("hello")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "hello", record[slog.MessageKey])
}
