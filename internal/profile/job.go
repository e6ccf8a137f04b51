package profile

// SkillSet groups skills by category. The technical list carries more weight
// than the soft one during skill matching.
type SkillSet struct {
	Technical []string `json:"technical" mapstructure:"technical"`
	Soft      []string `json:"soft" mapstructure:"soft"`
}

// Len returns the combined number of technical and soft skills.
func (s SkillSet) Len() int {
	return len(s.Technical) + len(s.Soft)
}

// IsEmpty reports whether neither category lists any skill.
func (s SkillSet) IsEmpty() bool {
	return s.Len() == 0
}

// JobRequirement is the structured description of an open position as supplied
// by the extraction layer. It is treated as immutable once scored.
type JobRequirement struct {
	Title                   string   `json:"title" mapstructure:"title"`
	Department              string   `json:"department,omitempty" mapstructure:"department"`
	RequiredExperienceYears int      `json:"required_experience_years" mapstructure:"required_experience_years"`
	RequiredEducation       string   `json:"required_education" mapstructure:"required_education"`
	RequiredSkills          SkillSet `json:"required_skills" mapstructure:"required_skills"`
	RequiredCertifications  []string `json:"required_certifications" mapstructure:"required_certifications"`
}
