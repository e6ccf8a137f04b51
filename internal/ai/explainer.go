package ai

import (
	"context"
	"errors"

	"github.com/spigell/candidate-ranker/internal/profile"
	"github.com/spigell/candidate-ranker/internal/weights"
)

var ErrNoCandidates = errors.New("no ranked candidates to explain")

// CandidateSummary is the view of a ranked candidate handed to an explainer.
type CandidateSummary struct {
	Rank           int     `json:"rank"`
	Name           string  `json:"name"`
	Overall        float64 `json:"overall_score"`
	Skills         float64 `json:"skills_score"`
	Experience     float64 `json:"experience_score"`
	Education      float64 `json:"education_score"`
	Certifications float64 `json:"certifications_score"`
	Summary        string  `json:"summary"`
}

type RankingInput struct {
	Job        *profile.JobRequirement `json:"job"`
	Weights    weights.WeightSet       `json:"weights"`
	Candidates []CandidateSummary      `json:"candidates"`
}

type CandidateInsight struct {
	CandidateNumber int      `json:"candidate_number"`
	KeyStrengths    []string `json:"key_strengths"`
	RankingReason   string   `json:"ranking_reason"`
}

// Explanation describes why a ranking came out the way it did.
type Explanation struct {
	RankingExplanation     string             `json:"ranking_explanation"`
	WeightsUsed            weights.WeightSet  `json:"weights_used"`
	DifferentiationFactors []string           `json:"differentiation_factors"`
	TieBreakers            []string           `json:"tie_breakers"`
	CandidateInsights      []CandidateInsight `json:"candidate_insights"`
	Provider               string             `json:"provider"`
}

// Insight returns the insight for the candidate at the 1-based rank.
func (e *Explanation) Insight(rank int) (CandidateInsight, bool) {
	if e == nil {
		return CandidateInsight{}, false
	}
	for _, insight := range e.CandidateInsights {
		if insight.CandidateNumber == rank {
			return insight, true
		}
	}
	return CandidateInsight{}, false
}

// Explainer produces a human-readable account of a ranking. Implementations
// may call external services; the ranking itself never depends on them.
type Explainer interface {
	Explain(ctx context.Context, in RankingInput) (*Explanation, error)
}
