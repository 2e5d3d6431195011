package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/quickrate/pkg/config"
)

// lines decodes every JSON line written to buf
func lines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &entry), line)
		out = append(out, entry)
	}
	return out
}

func TestNew_LevelFromConfig(t *testing.T) {
	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"WARN", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"verbose", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			log := New(&config.Config{Env: "development", LogLevel: tt.level, LogFormat: "json"})
			require.NotNil(t, log)
			assert.Equal(t, tt.want, log.zlog.GetLevel())
		})
	}
}

// One logger's level must not leak into another's
func TestNew_NoGlobalLevel(t *testing.T) {
	_ = New(&config.Config{LogLevel: "error"})

	var buf bytes.Buffer
	NewWithWriter(&buf, "debug").Debug("panel evaluated")

	assert.Contains(t, buf.String(), "panel evaluated")
}

func TestNewWithWriter_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "warn")

	log.Debug("label resolved")
	log.Info("catalog loaded")
	log.Warn("unmapped indicator")
	log.Error("snapshot save failed")

	entries := lines(t, &buf)
	require.Len(t, entries, 2)
	assert.Equal(t, "warn", entries[0]["level"])
	assert.Equal(t, "unmapped indicator", entries[0]["message"])
	assert.Equal(t, "error", entries[1]["level"])
	assert.Contains(t, entries[1], "time")
}

func TestStructuredFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "debug")

	log.WithFields(map[string]interface{}{
		"sector": "Technology",
		"label":  "Crescimento Receita",
	}).WithField("tier", "compacted").Debug("label resolved")

	log.WithError(errors.New("unknown custom evaluator")).WithField("key", "dcf").Warn("evaluation degraded")

	entries := lines(t, &buf)
	require.Len(t, entries, 2)

	assert.Equal(t, "Technology", entries[0]["sector"])
	assert.Equal(t, "Crescimento Receita", entries[0]["label"])
	assert.Equal(t, "compacted", entries[0]["tier"])

	assert.Equal(t, "unknown custom evaluator", entries[1]["error"])
	assert.Equal(t, "dcf", entries[1]["key"])
}

// With* return new loggers; the parent stays clean
func TestWithField_DoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer
	parent := NewWithWriter(&buf, "info")

	parent.WithField("ticker", "WEGE3").Info("child")
	parent.Info("parent")

	entries := lines(t, &buf)
	require.Len(t, entries, 2)
	assert.Equal(t, "WEGE3", entries[0]["ticker"])
	assert.NotContains(t, entries[1], "ticker")
}

func TestNop(t *testing.T) {
	log := Nop()
	assert.NotPanics(t, func() {
		log.WithField("k", "v").WithError(errors.New("x")).Error("discarded")
	})
}
