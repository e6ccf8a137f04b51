package scoring

import (
	"fmt"
	"strings"

	"github.com/spigell/candidate-ranker/internal/profile"
)

const (
	similarCredit   = 0.8
	technicalWeight = 0.7
	softWeight      = 0.3
)

type skillMatch struct {
	matched []string
	similar []string
	missing []string
	total   int
}

func (m skillMatch) score() float64 {
	if m.total == 0 {
		return 100
	}
	credit := float64(len(m.matched)) + similarCredit*float64(len(m.similar))
	return credit / float64(m.total) * 100
}

func (m skillMatch) describe(category string, lines []string) []string {
	if len(m.matched) > 0 {
		lines = append(lines, fmt.Sprintf("Matched %s skills: %s", category, strings.Join(m.matched, ", ")))
	}
	if len(m.similar) > 0 {
		lines = append(lines, fmt.Sprintf("Similar %s skills: %s", category, strings.Join(m.similar, ", ")))
	}
	if len(m.missing) > 0 {
		lines = append(lines, fmt.Sprintf("Missing %s skills: %s", category, strings.Join(m.missing, ", ")))
	}
	return lines
}

// normalize lowercases s, trims it and collapses inner whitespace.
func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

type skill struct {
	raw  string
	norm string
}

func prepare(list []string) []skill {
	out := make([]skill, 0, len(list))
	for _, s := range list {
		norm := normalize(s)
		if norm == "" {
			continue
		}
		out = append(out, skill{raw: strings.TrimSpace(s), norm: norm})
	}
	return out
}

func (s *Scorer) matchSkills(required, possessed []string) skillMatch {
	req := prepare(required)
	have := prepare(possessed)

	exact := make(map[string]struct{}, len(have))
	for _, h := range have {
		exact[h.norm] = struct{}{}
	}

	m := skillMatch{total: len(req)}
	for _, r := range req {
		if _, ok := exact[r.norm]; ok {
			m.matched = append(m.matched, r.raw)
			continue
		}

		found := false
		for _, h := range have {
			if strings.Contains(h.norm, r.norm) || strings.Contains(r.norm, h.norm) || s.similarity.Similar(r.norm, h.norm) {
				m.similar = append(m.similar, r.raw+" ≈ "+h.raw)
				found = true
				break
			}
		}
		if !found {
			m.missing = append(m.missing, r.raw)
		}
	}
	return m
}

// ScoreSkills compares required skills against possessed ones. Technical skills
// count for 70% and soft skills for 30% when both are required.
func (s *Scorer) ScoreSkills(required, possessed profile.SkillSet) ComponentScore {
	tech := s.matchSkills(required.Technical, possessed.Technical)
	soft := s.matchSkills(required.Soft, possessed.Soft)

	var score float64
	switch {
	case tech.total == 0 && soft.total == 0:
		return ComponentScore{Score: 100, Details: "No skills requirement specified"}
	case tech.total > 0 && soft.total > 0:
		score = technicalWeight*tech.score() + softWeight*soft.score()
	case tech.total > 0:
		score = tech.score()
	default:
		score = soft.score()
	}

	var lines []string
	lines = tech.describe("technical", lines)
	lines = soft.describe("soft", lines)

	return ComponentScore{Score: score, Details: strings.Join(lines, "\n")}
}
