package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spigell/candidate-ranker/internal/profile"
	"github.com/spigell/candidate-ranker/internal/weights"
)

func sampleJob() *profile.JobRequirement {
	return &profile.JobRequirement{
		Title:                   "Python Developer",
		RequiredExperienceYears: 5,
		RequiredEducation:       "Bachelor's degree in Computer Science",
		RequiredSkills: profile.SkillSet{
			Technical: []string{"Python", "Django", "Flask", "SQL", "Git"},
			Soft:      []string{"Communication", "Teamwork", "Problem-solving"},
		},
		RequiredCertifications: []string{"AWS Certified Developer"},
	}
}

func sampleCandidate() *profile.CandidateProfile {
	return &profile.CandidateProfile{
		Name: "John Smith",
		Skills: profile.SkillSet{
			Technical: []string{"Python", "JavaScript", "Django", "Flask", "React", "SQL", "Git"},
			Soft:      []string{"Communication", "Teamwork", "Leadership"},
		},
		Experience: []profile.ExperienceEntry{
			{Title: "Senior Software Engineer", Company: "Tech Solutions Inc.", Duration: "3 years"},
			{Title: "Software Engineer", Company: "Innovative Systems", Duration: "2 years"},
		},
		Education: []profile.EducationEntry{
			{Degree: "Master of Science in Computer Science"},
			{Degree: "Bachelor of Science in Computer Engineering"},
		},
		Certifications: []string{"AWS Certified Developer - Associate"},
	}
}

func TestScoreMatch(t *testing.T) {
	got := New().ScoreMatch(sampleJob(), sampleCandidate())

	assert.InDelta(t, 90.0, got.Skills.Score, 0.01)
	assert.InDelta(t, 100.0, got.Experience.Score, 1e-9)
	assert.InDelta(t, 100.0, got.Education.Score, 1e-9)
	assert.InDelta(t, 100.0, got.Certifications.Score, 1e-9)
	assert.InDelta(t, 96.0, got.Overall.Score, 0.01)
	assert.Contains(t, got.Overall.Summary, "Excellent overall match")
}

func TestScoreMatchIsIdempotent(t *testing.T) {
	scorer := New()
	job, candidate := sampleJob(), sampleCandidate()

	assert.Equal(t, scorer.ScoreMatch(job, candidate), scorer.ScoreMatch(job, candidate))
}

func TestScoreMatchHandlesEmptyRecords(t *testing.T) {
	got := New().ScoreMatch(nil, nil)

	assert.InDelta(t, 100.0, got.Skills.Score, 1e-9)
	assert.InDelta(t, 100.0, got.Experience.Score, 1e-9)
	assert.InDelta(t, 100.0, got.Education.Score, 1e-9)
	assert.InDelta(t, 100.0, got.Certifications.Score, 1e-9)
	assert.InDelta(t, 100.0, got.Overall.Score, 1e-9)
}

func TestScoreMatchWithCustomWeights(t *testing.T) {
	job := sampleJob()
	candidate := sampleCandidate()
	candidate.Certifications = nil

	skillsOnly := New(WithWeights(weights.WeightSet{Skills: 2}))
	assert.Equal(t, weights.WeightSet{Skills: 1}, skillsOnly.Weights())
	assert.InDelta(t, 90.0, skillsOnly.ScoreMatch(job, candidate).Overall.Score, 0.01)

	certsOnly := New().ScoreMatchWith(job, candidate, weights.WeightSet{Certifications: 1})
	assert.Zero(t, certsOnly.Overall.Score)
}
