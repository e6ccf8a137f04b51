package scoring

import (
	"fmt"
	"strings"

	"github.com/spigell/candidate-ranker/internal/weights"
)

// Band boundaries of the overall summary.
const (
	BandExcellent = 90.0
	BandStrong    = 75.0
	BandGood      = 60.0
	BandModerate  = 50.0
)

// Band returns the qualitative label of an overall score.
func Band(score float64) string {
	switch {
	case score >= BandExcellent:
		return "Excellent"
	case score >= BandStrong:
		return "Strong"
	case score >= BandGood:
		return "Good"
	case score >= BandModerate:
		return "Moderate"
	default:
		return "Poor"
	}
}

// Components holds the component scores available for a candidate. Missing
// entries are left out of the weighted average.
type Components map[weights.Component]float64

// Components returns the four component scores of the result.
func (r MatchResult) Components() Components {
	return Components{
		weights.Skills:         r.Skills.Score,
		weights.Experience:     r.Experience.Score,
		weights.Education:      r.Education.Score,
		weights.Certifications: r.Certifications.Score,
	}
}

// ScoreOverall combines the present components using w, dividing by the sum of
// the weights actually used. No components, or only zero weights, yield 0.
func ScoreOverall(components Components, w weights.WeightSet) Overall {
	var sum, used float64
	for _, c := range weights.Components {
		score, ok := components[c]
		if !ok {
			continue
		}
		weight := w.Of(c)
		sum += score * weight
		used += weight
	}

	var overall float64
	if used > 0 {
		overall = sum / used
	}

	return Overall{Score: overall, Summary: summarize(overall, components)}
}

func summarize(overall float64, components Components) string {
	var parts []string

	if score, ok := components[weights.Skills]; ok {
		switch {
		case score >= 90:
			parts = append(parts, "excellent skill match")
		case score >= 70:
			parts = append(parts, "good skill match")
		case score >= 50:
			parts = append(parts, "moderate skill match")
		default:
			parts = append(parts, "poor skill match")
		}
	}

	if score, ok := components[weights.Experience]; ok {
		switch {
		case score >= 90:
			parts = append(parts, "highly experienced")
		case score >= 70:
			parts = append(parts, "well experienced")
		case score >= 50:
			parts = append(parts, "adequately experienced")
		default:
			parts = append(parts, "insufficiently experienced")
		}
	}

	if score, ok := components[weights.Education]; ok {
		if score >= 90 {
			parts = append(parts, "meets education requirements")
		} else {
			parts = append(parts, "below education requirements")
		}
	}

	return fmt.Sprintf("%s overall match (%.1f%%): %s", Band(overall), overall, strings.Join(parts, ", "))
}
