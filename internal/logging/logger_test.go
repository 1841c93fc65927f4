package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}

	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestInitLoggerTo(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	InitLoggerTo(&buf, slog.LevelWarn)

	slog.Info("[Test] hidden")
	slog.Warn("[Test] shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "[Test] shown")
}
