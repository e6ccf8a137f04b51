package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/candidate-ranker/internal/ai"
	"github.com/spigell/candidate-ranker/internal/ai/gemini"
	"github.com/spigell/candidate-ranker/internal/profile"
	"github.com/spigell/candidate-ranker/internal/scoring"
	"github.com/spigell/candidate-ranker/internal/secrets"
	"github.com/spigell/candidate-ranker/internal/source"
)

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func newLoader(cfg *Config, logger *zap.Logger) (*source.Loader, error) {
	token, err := sourceToken(cfg.Source)
	if err != nil {
		return nil, err
	}
	return source.New(logger, source.WithToken(token), source.WithTimeout(cfg.Source.Timeout)), nil
}

// sourceToken returns the optional bearer token for HTTP sources.
func sourceToken(cfg SourceConfig) (string, error) {
	if strings.TrimSpace(cfg.TokenFile) == "" && strings.TrimSpace(os.Getenv(sourceTokenEnv)) == "" {
		return "", nil
	}
	return secrets.Load(secrets.Source{
		Name: "source token",
		File: cfg.TokenFile,
		Env:  sourceTokenEnv,
	})
}

func loadJob(ctx context.Context, loader *source.Loader, location string, logger *zap.Logger) (*profile.JobRequirement, error) {
	data, err := loader.Load(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("loading job: %w", err)
	}

	job, issues, err := profile.DecodeJob(data)
	if err != nil {
		return nil, fmt.Errorf("decoding job: %w", err)
	}
	logIssues(logger, "job", issues)

	return job, nil
}

func loadCandidates(ctx context.Context, loader *source.Loader, location string, logger *zap.Logger) (*profile.Candidates, error) {
	data, err := loader.Load(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("loading candidates: %w", err)
	}

	candidates, issues, err := profile.DecodeCandidates(data)
	if err != nil {
		return nil, fmt.Errorf("decoding candidates: %w", err)
	}
	logIssues(logger, "candidates", issues)

	return candidates, nil
}

func loadCandidate(ctx context.Context, loader *source.Loader, location string, logger *zap.Logger) (*profile.CandidateProfile, error) {
	data, err := loader.Load(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("loading candidate: %w", err)
	}

	candidate, issues, err := profile.DecodeCandidate(data)
	if err != nil {
		return nil, fmt.Errorf("decoding candidate: %w", err)
	}
	logIssues(logger, "candidate", issues)

	return candidate, nil
}

func logIssues(logger *zap.Logger, record string, issues []profile.Issue) {
	for _, issue := range issues {
		logger.Warn("malformed field replaced with default",
			zap.String("record", record),
			zap.String("field", issue.Field),
			zap.String("problem", issue.Message),
		)
	}
}

func newScorer(cfg *Config) (*scoring.Scorer, error) {
	similarity, err := scoring.NewSimilarity(cfg.Similarity.Strategy, cfg.Similarity.Threshold)
	if err != nil {
		return nil, err
	}
	return scoring.New(
		scoring.WithSimilarity(similarity),
		scoring.WithWeights(cfg.Weights),
	), nil
}

// newExplainer returns nil when AI explanations are disabled.
func newExplainer(ctx context.Context, cfg *Config, logger *zap.Logger) (ai.Explainer, error) {
	if cfg.AI == nil || !cfg.AI.Enabled {
		return nil, nil
	}

	switch cfg.AI.Provider {
	case "", gemini.Provider:
	default:
		return nil, fmt.Errorf("unsupported ai provider %q", cfg.AI.Provider)
	}

	g := cfg.AI.Gemini
	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: g.APIKey,
		File:  g.APIKeyFile,
		Env:   geminiKeyEnv,
	})
	if err != nil {
		return nil, err
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, g.Model, g.MaxRetries, logger)
	if err != nil {
		return nil, err
	}

	return gemini.NewExplainer(generator, logger, g.MaxLogLength), nil
}
