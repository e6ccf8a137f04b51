package ranking

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spigell/candidate-ranker/internal/ai"
	"github.com/spigell/candidate-ranker/internal/profile"
	"github.com/spigell/candidate-ranker/internal/scoring"
	"github.com/spigell/candidate-ranker/internal/weights"
)

// RankedCandidate is a candidate with its scores and 1-based position.
type RankedCandidate struct {
	Rank      int                       `json:"rank"`
	Candidate *profile.CandidateProfile `json:"candidate"`
	Match     scoring.MatchResult       `json:"match"`
}

func (r RankedCandidate) Name() string {
	if r.Candidate == nil {
		return ""
	}
	return r.Candidate.Name
}

func (r RankedCandidate) Score() float64 {
	return r.Match.Overall.Score
}

// Result is the outcome of one ranking run.
type Result struct {
	ID          string                  `json:"id"`
	Job         *profile.JobRequirement `json:"job"`
	Weights     weights.WeightSet       `json:"weights_used"`
	Candidates  []RankedCandidate       `json:"candidates"`
	Explanation *ai.Explanation         `json:"explanation,omitempty"`
}

func (r *Result) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Candidates)
}

func (r *Result) JobTitle() string {
	if r == nil || r.Job == nil {
		return ""
	}
	return r.Job.Title
}

func (r *Result) Names() []string {
	names := make([]string, 0, r.Len())
	for _, c := range r.Candidates {
		names = append(names, c.Name())
	}
	return names
}

// Top returns candidates scoring at least threshold, in rank order, truncated
// to limit. A non-positive limit yields nothing.
func (r *Result) Top(limit int, threshold float64) []RankedCandidate {
	var out []RankedCandidate
	for _, c := range r.Candidates {
		if len(out) >= limit {
			break
		}
		if c.Score() >= threshold {
			out = append(out, c)
		}
	}
	return out
}

// Retain keeps the candidates for which keep returns true and returns the
// names of the dropped ones. Order is preserved and ranks are renumbered.
func (r *Result) Retain(keep func(RankedCandidate) bool) []string {
	var dropped []string
	kept := r.Candidates[:0]
	for _, c := range r.Candidates {
		if keep(c) {
			kept = append(kept, c)
			continue
		}
		dropped = append(dropped, c.Name())
	}
	r.Candidates = kept
	renumber(r.Candidates)
	return dropped
}

// Exclude drops candidates whose names appear in names.
func (r *Result) Exclude(names []string) []string {
	if len(names) == 0 {
		return nil
	}
	return r.Retain(func(c RankedCandidate) bool {
		return !profile.ContainsName(names, c.Name())
	})
}

// Pool returns the ranked candidates as a plain pool in rank order.
func (r *Result) Pool() *profile.Candidates {
	pool := &profile.Candidates{}
	for _, c := range r.Candidates {
		pool.Items = append(pool.Items, c.Candidate)
	}
	return pool
}

// Input builds the explainer input for the ranking.
func (r *Result) Input() ai.RankingInput {
	in := ai.RankingInput{Job: r.Job, Weights: r.Weights}
	for _, c := range r.Candidates {
		in.Candidates = append(in.Candidates, ai.CandidateSummary{
			Rank:           c.Rank,
			Name:           c.Name(),
			Overall:        c.Match.Overall.Score,
			Skills:         c.Match.Skills.Score,
			Experience:     c.Match.Experience.Score,
			Education:      c.Match.Education.Score,
			Certifications: c.Match.Certifications.Score,
			Summary:        c.Match.Overall.Summary,
		})
	}
	return in
}

// ReportByBand groups candidates by the qualitative band of their overall
// score.
func (r *Result) ReportByBand() map[string][]map[string]string {
	report := make(map[string][]map[string]string)
	for _, c := range r.Candidates {
		band := scoring.Band(c.Score())
		report[band] = append(report[band], map[string]string{
			"rank":    fmt.Sprintf("%d", c.Rank),
			"name":    c.Name(),
			"score":   fmt.Sprintf("%.1f", c.Score()),
			"summary": c.Match.Overall.Summary,
		})
	}
	return report
}

// DumpToTmpFile writes the result as indented JSON to a new temporary file and
// returns its path.
func (r *Result) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "ranking_*.json")
	if err != nil {
		return "", err
	}

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		file.Close()
		os.Remove(file.Name())
		return "", err
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("closing %s: %w", file.Name(), err)
	}
	return file.Name(), nil
}
