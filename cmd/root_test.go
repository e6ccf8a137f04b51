package cmd

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/candidate-ranker/internal/scoring"
	"github.com/spigell/candidate-ranker/internal/weights"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	setDefaults()
	t.Cleanup(func() {
		viper.Reset()
		setDefaults()
	})
}

func TestGetConfigDefaults(t *testing.T) {
	resetViper(t)

	config, err := getConfig()
	require.NoError(t, err)

	assert.Equal(t, weights.Default(), config.Weights)
	assert.True(t, config.DynamicWeights)
	assert.Equal(t, scoring.StrategySequence, config.Similarity.Strategy)
	assert.Equal(t, 5, config.Ranking.Limit)
	require.NotNil(t, config.AI)
	assert.False(t, config.AI.Enabled)
	require.NotNil(t, config.AI.Gemini)
	assert.Equal(t, 3, config.AI.Gemini.MaxRetries)
}

func TestGetConfigRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value any
	}{
		{name: "unknown similarity", key: "similarity.strategy", value: "soundex"},
		{name: "similarity above one", key: "similarity.threshold", value: 1.5},
		{name: "threshold above hundred", key: "ranking.threshold", value: 150},
		{name: "negative limit", key: "ranking.limit", value: -1},
		{name: "zero limit", key: "ranking.limit", value: 0},
		{name: "negative weight", key: "weights.skills", value: -0.2},
		{name: "unknown provider", key: "ai.provider", value: "openai"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetViper(t)
			viper.Set(tt.key, tt.value)

			_, err := getConfig()
			assert.Error(t, err)
		})
	}
}

func TestGetConfigOverrides(t *testing.T) {
	resetViper(t)
	viper.Set("weights.skills", 0.7)
	viper.Set("similarity.strategy", scoring.StrategyJaroWinkler)
	viper.Set("exclude.candidates", []string{"Jane Doe"})

	config, err := getConfig()
	require.NoError(t, err)

	assert.InDelta(t, 0.7, config.Weights.Skills, 1e-9)
	assert.Equal(t, scoring.StrategyJaroWinkler, config.Similarity.Strategy)
	assert.Equal(t, []string{"Jane Doe"}, config.Exclude.Candidates)
}
