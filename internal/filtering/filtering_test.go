package filtering

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/candidate-ranker/internal/profile"
	"github.com/spigell/candidate-ranker/internal/ranking"
	"github.com/spigell/candidate-ranker/internal/scoring"
	"github.com/spigell/candidate-ranker/internal/weights"
)

func rankedResult(skills ...float64) *ranking.Result {
	engine := ranking.New(ranking.Config{Weights: weights.WeightSet{Skills: 1}}, ranking.Deps{})
	var scored []ranking.Scored
	for i, s := range skills {
		scored = append(scored, ranking.Scored{
			Candidate: &profile.CandidateProfile{Name: string(rune('a' + i))},
			Match:     scoring.MatchResult{Skills: scoring.ComponentScore{Score: s}},
		})
	}
	return engine.RankScored(&profile.JobRequirement{Title: "Go Developer"}, scored)
}

func TestRunAppliesStepsInOrder(t *testing.T) {
	dir := t.TempDir()
	excludeFile := filepath.Join(dir, "excluded.json")
	excluded := &profile.ExcludedCandidates{Items: []*profile.ExcludedCandidate{{Name: "C"}}}
	require.NoError(t, excluded.ToFile(excludeFile))

	core, observed := observer.New(zapcore.InfoLevel)
	cfg := &Config{
		ExcludedCandidates: []string{" a ", ""},
		ExcludeFile:        excludeFile,
		Limit:              2,
		Threshold:          40,
	}

	result, err := Run(context.Background(), cfg, Deps{Logger: zap.New(core)}, Default(), rankedResult(95, 90, 85, 80, 30))
	require.NoError(t, err)

	assert.Equal(t, []string{"b", "d"}, result.Names())
	assert.Equal(t, 1, result.Candidates[0].Rank)

	steps := observed.FilterMessage("filter step").All()
	require.Len(t, steps, 3)
	assert.Equal(t, "excluded_candidates", steps[0].ContextMap()["name"])
	assert.EqualValues(t, 1, steps[1].ContextMap()["dropped"])
	assert.EqualValues(t, 2, steps[2].ContextMap()["left"])
}

func TestRunWithoutConfigKeepsEverything(t *testing.T) {
	result, err := Run(context.Background(), nil, Deps{}, Default(), rankedResult(10, 20))
	require.NoError(t, err)
	assert.Equal(t, 2, result.Len())
}

func TestRunSkipsDisabledSteps(t *testing.T) {
	steps := Default()
	DisableByName(steps, "top", "show everything")

	core, observed := observer.New(zapcore.InfoLevel)
	result, err := Run(context.Background(), &Config{Limit: 1}, Deps{Logger: zap.New(core)}, steps, rankedResult(10, 20, 30))
	require.NoError(t, err)
	assert.Equal(t, 3, result.Len())
	assert.Equal(t, 1, observed.FilterMessage("filter disabled").Len())

	statuses := Describe(steps)
	require.Len(t, statuses, 3)
	assert.False(t, statuses[2].Enabled)
	assert.Equal(t, "show everything", statuses[2].Reason)
}

func TestRunValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		cfg  *Config
	}{
		{name: "negative limit", cfg: &Config{Limit: -1}},
		{name: "zero limit", cfg: &Config{Threshold: 50}},
		{name: "threshold above scale", cfg: &Config{Limit: 5, Threshold: 101}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Run(context.Background(), tt.cfg, Deps{}, Default(), rankedResult(50))
			assert.ErrorContains(t, err, "top:")
		})
	}
}

func TestExcludeFileErrors(t *testing.T) {
	dir := t.TempDir()

	missing := &Config{ExcludeFile: filepath.Join(dir, "missing.json")}
	result, err := Run(context.Background(), missing, Deps{}, []Filter{NewExcludeFile()}, rankedResult(50))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Len())

	_, err = Run(context.Background(), &Config{ExcludeFile: dir}, Deps{}, []Filter{NewExcludeFile()}, rankedResult(50))
	require.Error(t, err)
	assert.ErrorContains(t, err, "exclude_file:")
}

func TestTopStatus(t *testing.T) {
	top := NewTop()
	require.NoError(t, top.Validate(&Config{Limit: 5, Threshold: 62.5}))

	status := top.(statusProvider).Status()
	assert.Equal(t, "5", status.Details["limit"])
	assert.Equal(t, "62.5", status.Details["threshold"])
}
