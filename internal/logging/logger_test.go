package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		" WARN ":  zapcore.WarnLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"info":    zapcore.InfoLevel,
		"":        zapcore.InfoLevel,
		"verbose": zapcore.InfoLevel,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestWrapForwardsKeyValues(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := Wrap(zap.New(core)).With("run_id", "r1")

	l.Debug("collection missing", "collection", "members.json")
	l.Info("saved")
	l.Warn("collection unreadable; treating as empty", "status", "corrupt", "error", errors.New("bad json"))
	l.Error("failed")

	entries := logs.All()
	require.Len(t, entries, 4)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, "members.json", entries[0].ContextMap()["collection"])
	assert.Equal(t, "r1", entries[1].ContextMap()["run_id"])
	assert.Equal(t, zapcore.WarnLevel, entries[2].Level)
	assert.Equal(t, "corrupt", entries[2].ContextMap()["status"])
	assert.Equal(t, "bad json", entries[2].ContextMap()["error"])
	assert.Equal(t, zapcore.ErrorLevel, entries[3].Level)
}

func TestWrapNil(t *testing.T) {
	l := Wrap(nil)
	assert.NotPanics(t, func() { l.Info("dropped") })
}

func TestNewLoggerFormats(t *testing.T) {
	for _, format := range []string{"json", "console"} {
		l := NewLogger("debug", format, "tagcrm")
		assert.True(t, l.Core().Enabled(zapcore.DebugLevel), format)
	}
	l := NewLogger("error", "json", "")
	assert.False(t, l.Core().Enabled(zapcore.WarnLevel))
}

func TestNewWriterLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriterLogger(&buf, "info", "json", "tagcrm")
	Wrap(l).Warn("collection unreadable; treating as empty", "collection", "members.json")
	l.Debug("suppressed")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "members.json", entry["collection"])
	assert.Equal(t, "tagcrm", entry["service_name"])
	assert.Contains(t, entry, "timestamp")
}

func TestServiceFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	withServiceFields(zap.New(core), "tagcrm").Info("hello")
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "tagcrm", logs.All()[0].ContextMap()["service_name"])
}
