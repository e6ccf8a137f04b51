package scoring

import (
	"fmt"
	"strings"
)

// ScoreCertifications counts required certifications that appear, in either
// substring direction, among the possessed ones.
func (s *Scorer) ScoreCertifications(required, possessed []string) ComponentScore {
	req := prepare(required)
	if len(req) == 0 {
		return ComponentScore{Score: 100, Details: "No certification requirements specified"}
	}
	have := prepare(possessed)

	var matched, missing []string
	for _, r := range req {
		found := false
		for _, h := range have {
			if strings.Contains(h.norm, r.norm) || strings.Contains(r.norm, h.norm) {
				found = true
				break
			}
		}
		if found {
			matched = append(matched, r.raw)
		} else {
			missing = append(missing, r.raw)
		}
	}

	var lines []string
	if len(matched) > 0 {
		lines = append(lines, fmt.Sprintf("Matched certifications: %s", strings.Join(matched, ", ")))
	}
	if len(missing) > 0 {
		lines = append(lines, fmt.Sprintf("Missing certifications: %s", strings.Join(missing, ", ")))
	}

	return ComponentScore{
		Score:   float64(len(matched)) / float64(len(req)) * 100,
		Details: strings.Join(lines, "\n"),
	}
}
