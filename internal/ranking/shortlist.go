package ranking

import (
	"context"

	"github.com/spigell/candidate-ranker/internal/weights"
)

type ShortlistEntry struct {
	Rank          int      `json:"rank"`
	Name          string   `json:"name"`
	Score         float64  `json:"overall_score"`
	Summary       string   `json:"summary"`
	KeyStrengths  []string `json:"key_strengths,omitempty"`
	RankingReason string   `json:"ranking_reason,omitempty"`
}

// Shortlist is the top of a ranking merged with its explanation.
type Shortlist struct {
	RankingID   string            `json:"ranking_id"`
	JobTitle    string            `json:"job_title"`
	Weights     weights.WeightSet `json:"weights_used"`
	Explanation string            `json:"ranking_explanation"`
	Entries     []ShortlistEntry  `json:"candidates"`
}

// Shortlist returns the best limit candidates with their insights. The result
// is explained first when it has no explanation yet.
func (e *Engine) Shortlist(ctx context.Context, result *Result, limit int) *Shortlist {
	explanation := result.Explanation
	if explanation == nil {
		explanation = e.Explain(ctx, result)
	}

	shortlist := &Shortlist{
		RankingID:   result.ID,
		JobTitle:    result.JobTitle(),
		Weights:     result.Weights,
		Explanation: explanation.RankingExplanation,
	}

	for _, c := range result.Top(limit, 0) {
		entry := ShortlistEntry{
			Rank:    c.Rank,
			Name:    c.Name(),
			Score:   c.Score(),
			Summary: c.Match.Overall.Summary,
		}
		if insight, ok := explanation.Insight(c.Rank); ok {
			entry.KeyStrengths = insight.KeyStrengths
			entry.RankingReason = insight.RankingReason
		}
		shortlist.Entries = append(shortlist.Entries, entry)
	}

	return shortlist
}
