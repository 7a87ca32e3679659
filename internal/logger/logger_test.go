package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tables := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"info":    zapcore.InfoLevel,
		"warn":    zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"":        zapcore.InfoLevel,
		"verbose": zapcore.InfoLevel,
	}

	for in, want := range tables {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestFileOutput(t *testing.T) {
	file := filepath.Join(t.TempDir(), "spack.log")

	cfg := DefaultFileConfig(file)
	cfg.Compress = false

	log := NewWithFileConfig("warn", cfg, false)
	log.Info("hidden")
	log.Warn("Skipping unchanged atlas", zap.String("output", "hero.atlas"))
	_ = log.Sync()

	b, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(b), "WARN")
	assert.Contains(t, string(b), "Skipping unchanged atlas")
	assert.Contains(t, string(b), "hero.atlas")
	assert.NotContains(t, string(b), "hidden")
}

func TestNoOutputs(t *testing.T) {
	log := New("debug", "", false)
	assert.False(t, log.Core().Enabled(zapcore.ErrorLevel))
}
