package profile

import "strings"

type ExperienceEntry struct {
	Title       string `json:"title" mapstructure:"title"`
	Company     string `json:"company" mapstructure:"company"`
	Duration    string `json:"duration" mapstructure:"duration"`
	Description string `json:"description,omitempty" mapstructure:"description"`
}

type EducationEntry struct {
	Degree      string `json:"degree" mapstructure:"degree"`
	Institution string `json:"institution,omitempty" mapstructure:"institution"`
	Year        string `json:"year,omitempty" mapstructure:"year"`
}

// CandidateProfile is the structured resume of a single applicant.
type CandidateProfile struct {
	Name           string            `json:"name" mapstructure:"name"`
	Skills         SkillSet          `json:"skills" mapstructure:"skills"`
	Experience     []ExperienceEntry `json:"experience" mapstructure:"experience"`
	Education      []EducationEntry  `json:"education" mapstructure:"education"`
	Certifications []string          `json:"certifications" mapstructure:"certifications"`
}

// Candidates is an ordered candidate pool for one job.
type Candidates struct {
	Items []*CandidateProfile
}

func (c *Candidates) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Items)
}

func (c *Candidates) Names() []string {
	names := make([]string, 0, c.Len())
	for _, candidate := range c.Items {
		names = append(names, candidate.Name)
	}
	return names
}

// FindByName looks a candidate up by name, ignoring case and surrounding spaces.
func (c *Candidates) FindByName(name string) *CandidateProfile {
	for _, candidate := range c.Items {
		if sameName(candidate.Name, name) {
			return candidate
		}
	}
	return nil
}

func sameName(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// ContainsName reports whether name is present in names, ignoring case.
func ContainsName(names []string, name string) bool {
	for _, n := range names {
		if sameName(n, name) {
			return true
		}
	}
	return false
}
