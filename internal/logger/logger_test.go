package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestBuildWritesJSONWithStepKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.json")

	log, err := build(true, false, []string{path})
	require.NoError(t, err)

	log.Debug("hidden")
	log.Info("ranked", zap.Int("candidates", 3))
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"step":"ranked"`)
	assert.Contains(t, string(data), `"candidates":3`)
	assert.NotContains(t, string(data), "hidden")
}

func TestNewDebugLevel(t *testing.T) {
	log, err := New(false, true)
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(zapcore.DebugLevel))
}

func TestRankingFields(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)

	WithFields(zap.New(core), RankingFields("run-1", " Backend Engineer ")...).Info("ranking finished")

	entries := observed.All()
	require.Len(t, entries, 1)
	assert.Equal(t, map[string]any{
		FieldRankingID: "run-1",
		FieldJobTitle:  "Backend Engineer",
	}, entries[0].ContextMap())

	assert.Len(t, RankingFields("", "  "), 0)
}
