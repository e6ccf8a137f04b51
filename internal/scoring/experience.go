package scoring

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/spigell/candidate-ranker/internal/profile"
)

var numberPattern = regexp.MustCompile(`\d+(?:\.\d+)?`)

// DurationFunc converts the free-text duration of an entry into years.
type DurationFunc func(duration string) float64

// RelevanceFunc weights an entry's years between 0 (irrelevant) and 1.
type RelevanceFunc func(entry profile.ExperienceEntry) float64

// ParseDuration returns the first number found in text. Text without a
// positive number counts as one year.
func ParseDuration(text string) float64 {
	match := numberPattern.FindString(text)
	if match == "" {
		return 1
	}
	years, err := strconv.ParseFloat(match, 64)
	if err != nil || years <= 0 {
		return 1
	}
	return years
}

// FullRelevance treats every entry as fully relevant.
func FullRelevance(profile.ExperienceEntry) float64 {
	return 1
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Unknown"
	}
	return s
}

// ScoreExperience sums the relevant years across entries and compares them
// with the requirement.
func (s *Scorer) ScoreExperience(requiredYears int, entries []profile.ExperienceEntry) ComponentScore {
	if requiredYears <= 0 {
		return ComponentScore{Score: 100, Details: "No experience requirement specified"}
	}

	var total float64
	breakdown := make([]string, 0, len(entries))
	for _, entry := range entries {
		years := s.duration(entry.Duration)
		relevance := min(max(s.relevance(entry), 0), 1)
		total += years * relevance

		breakdown = append(breakdown, fmt.Sprintf("%s years as %s at %s",
			strconv.FormatFloat(years, 'f', -1, 64), orUnknown(entry.Title), orUnknown(entry.Company)))
	}

	required := float64(requiredYears)
	var (
		score   float64
		details string
	)
	if total >= required {
		score = 100
		details = fmt.Sprintf("Candidate has %.1f years of relevant experience, meeting the %d years required.", total, requiredYears)
	} else {
		score = max(total/required*100, 0)
		details = fmt.Sprintf("Candidate has %.1f years of relevant experience, which is %.1f%% of the %d years required.", total, score, requiredYears)
	}

	if len(breakdown) > 0 {
		details += "\nExperience breakdown:\n" + strings.Join(breakdown, "\n")
	}

	return ComponentScore{Score: score, Details: details}
}
