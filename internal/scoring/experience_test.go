package scoring

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spigell/candidate-ranker/internal/profile"
)

func TestParseDuration(t *testing.T) {
	t.Parallel()

	tests := map[string]float64{
		"3 years":            3,
		"2.5 yrs":            2.5,
		"Jan 2019 - present": 2019,
		"about a year":       1,
		"":                   1,
		"0 years":            1,
		"18 months":          18,
	}

	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, want, ParseDuration(in), 1e-9)
		})
	}
}

func TestScoreExperienceSumsEntries(t *testing.T) {
	entries := []profile.ExperienceEntry{
		{Title: "Senior Engineer", Company: "Tech Solutions", Duration: "3 years"},
		{Title: "Engineer", Company: "Innovative Systems", Duration: "2 years"},
	}

	got := New().ScoreExperience(5, entries)

	assert.InDelta(t, 100.0, got.Score, 1e-9)
	assert.Contains(t, got.Details, "5.0 years of relevant experience")
	assert.Contains(t, got.Details, "3 years as Senior Engineer at Tech Solutions")
	assert.Contains(t, got.Details, "2 years as Engineer at Innovative Systems")
}

func TestScoreExperience(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		required int
		entries  []profile.ExperienceEntry
		want     float64
	}{
		{name: "no requirement", required: 0, want: 100},
		{name: "negative requirement", required: -3, want: 100},
		{name: "no history", required: 4, want: 0},
		{name: "partial", required: 4, entries: []profile.ExperienceEntry{{Duration: "3 years"}}, want: 75},
		{name: "unparsed counts as one year", required: 4, entries: []profile.ExperienceEntry{{Duration: "since forever"}}, want: 25},
		{name: "more than required is capped", required: 2, entries: []profile.ExperienceEntry{{Duration: "10 years"}}, want: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := New().ScoreExperience(tt.required, tt.entries)
			assert.InDelta(t, tt.want, got.Score, 1e-9)
		})
	}
}

func TestScoreExperienceRelevanceHook(t *testing.T) {
	engineeringOnly := func(entry profile.ExperienceEntry) float64 {
		if strings.Contains(strings.ToLower(entry.Title), "engineer") {
			return 1
		}
		return 0
	}
	entries := []profile.ExperienceEntry{
		{Title: "Engineer", Duration: "2 years"},
		{Title: "Barista", Duration: "6 years"},
	}

	got := New(WithRelevance(engineeringOnly)).ScoreExperience(4, entries)
	assert.InDelta(t, 50.0, got.Score, 1e-9)

	months := func(text string) float64 { return ParseDuration(text) / 12 }
	got = New(WithDurationParser(months)).ScoreExperience(2, []profile.ExperienceEntry{{Duration: "12 months"}})
	assert.InDelta(t, 50.0, got.Score, 1e-9)
}
