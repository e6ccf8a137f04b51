package ai

import (
	"context"
	"fmt"
)

const (
	ProviderStatic = "static"

	staticInsightLimit = 10
)

// StaticExplainer builds an explanation from the scores alone.
type StaticExplainer struct{}

func NewStaticExplainer() *StaticExplainer {
	return &StaticExplainer{}
}

func (s *StaticExplainer) Explain(_ context.Context, in RankingInput) (*Explanation, error) {
	explanation := &Explanation{
		RankingExplanation: "Candidates are ranked based on their overall match score with the job.",
		WeightsUsed:        in.Weights,
		DifferentiationFactors: []string{
			"Technical skills match with job requirements",
			"Experience level in years",
			"Educational background relevance",
			"Certifications related to the job",
		},
		TieBreakers: []string{
			"Skills score takes precedence in case of tied overall scores",
			"Experience score is used as a secondary tie-breaker",
			"Education score is used as a tertiary tie-breaker",
		},
		Provider: ProviderStatic,
	}

	for i, candidate := range in.Candidates {
		if i == staticInsightLimit {
			break
		}
		rank := candidate.Rank
		if rank == 0 {
			rank = i + 1
		}
		explanation.CandidateInsights = append(explanation.CandidateInsights, CandidateInsight{
			CandidateNumber: rank,
			KeyStrengths:    strengths(candidate),
			RankingReason:   fmt.Sprintf("Ranked #%d due to overall match score of %.2f", rank, candidate.Overall),
		})
	}

	return explanation, nil
}

func strengths(c CandidateSummary) []string {
	var out []string
	if c.Skills >= 70 {
		out = append(out, "Strong technical skills")
	}
	if c.Experience >= 70 {
		out = append(out, "Relevant experience")
	}
	if c.Education >= 90 {
		out = append(out, "Good educational background")
	}
	if c.Certifications >= 100 {
		out = append(out, "Holds the required certifications")
	}
	if len(out) == 0 {
		out = append(out, "Partial match across requirements")
	}
	return out
}
