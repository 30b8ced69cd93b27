package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/pokereview/internal/logger"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for line := range strings.SplitSeq(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry), "line: %s", line)
		out = append(out, entry)
	}
	return out
}

func TestNewCentralLogger_RejectsBadConfig(t *testing.T) {
	t.Parallel()

	_, err := logger.NewCentralLogger(nil, nil)
	require.Error(t, err)

	_, err = logger.NewCentralLogger(&logger.LoggingConfig{Format: "xml"}, nil)
	require.Error(t, err)

	_, err = logger.NewCentralLogger(&logger.LoggingConfig{Timezone: "Mars/Olympus"}, nil)
	require.Error(t, err)
}

func TestCentralLogger_JSONOutputCarriesModuleAndFields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	cl, err := logger.NewCentralLogger(&logger.LoggingConfig{Format: "json", Timezone: "UTC"}, &buf)
	require.NoError(t, err)

	log := cl.Module("datastore").Module("session")
	log.Info("save committed",
		logger.String("session_id", "abc"),
		logger.Int64("rows", 3),
		logger.Float64("avg", 3.66666),
		logger.Duration("elapsed", 1500*time.Millisecond),
	)

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	e := entries[0]
	assert.Equal(t, "save committed", e["msg"])
	assert.Equal(t, "datastore.session", e["module"])
	assert.Equal(t, "abc", e["session_id"])
	assert.InDelta(t, 3.0, e["rows"], 0)
	assert.InDelta(t, 3.667, e["avg"], 0.0001)
	assert.Equal(t, "1.5s", e["elapsed"])
}

func TestCentralLogger_ModuleLevels(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	cl, err := logger.NewCentralLogger(&logger.LoggingConfig{
		DefaultLevel: "warn",
		Format:       "json",
		ModuleLevels: map[string]string{"seed": "debug"},
	}, &buf)
	require.NoError(t, err)

	cl.Module("api").Info("hidden")
	cl.Module("api").Warn("shown")
	cl.Module("seed").Debug("also shown")

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 2)
	assert.Equal(t, "shown", entries[0]["msg"])
	assert.Equal(t, "also shown", entries[1]["msg"])
}

func TestSlogLogger_TraceLevelName(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.NewSlogLogger(&buf, logger.LogLevelTrace, time.UTC)
	log.Trace("statement")

	assert.Contains(t, buf.String(), "level=TRACE")
	assert.Contains(t, buf.String(), "msg=statement")
}

func TestSlogLogger_WithDoesNotLeakFields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	base := logger.NewSlogLogger(&buf, logger.LogLevelInfo, time.UTC)
	child := base.With(logger.String("table", "owners"))

	child.Info("child")
	base.Info("base")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "table=owners")
	assert.NotContains(t, lines[1], "table=owners")
}

func TestSlogLogger_WithContextAddsTraceID(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.NewSlogLogger(&buf, logger.LogLevelInfo, time.UTC)

	log.WithContext(logger.WithTraceID(context.Background(), "req-42")).Info("handled")
	log.WithContext(context.Background()).Info("plain")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "trace_id=req-42")
	assert.NotContains(t, lines[1], "trace_id")
}

func TestSlogLogger_LogExplicitLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.NewSlogLogger(&buf, logger.LogLevelWarn, time.UTC)
	log.Log(logger.LogLevelInfo, "dropped")
	log.Log(logger.LogLevelError, "kept", logger.Error(assert.AnError))

	out := buf.String()
	assert.NotContains(t, out, "dropped")
	assert.Contains(t, out, "kept")
	assert.Contains(t, out, assert.AnError.Error())
	assert.NoError(t, log.Flush())
}
