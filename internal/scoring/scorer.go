package scoring

import (
	"github.com/spigell/candidate-ranker/internal/profile"
	"github.com/spigell/candidate-ranker/internal/weights"
)

// Scorer evaluates candidates against jobs. It holds no mutable state and is
// safe for concurrent use.
type Scorer struct {
	similarity Similarity
	weights    weights.WeightSet
	relevance  RelevanceFunc
	duration   DurationFunc
}

type Option func(*Scorer)

func WithSimilarity(similarity Similarity) Option {
	return func(s *Scorer) {
		if similarity != nil {
			s.similarity = similarity
		}
	}
}

// WithWeights sets the weights ScoreMatch uses. They are normalized.
func WithWeights(w weights.WeightSet) Option {
	return func(s *Scorer) {
		s.weights = w.Normalize()
	}
}

func WithRelevance(relevance RelevanceFunc) Option {
	return func(s *Scorer) {
		if relevance != nil {
			s.relevance = relevance
		}
	}
}

func WithDurationParser(duration DurationFunc) Option {
	return func(s *Scorer) {
		if duration != nil {
			s.duration = duration
		}
	}
}

func New(opts ...Option) *Scorer {
	s := &Scorer{
		similarity: SequenceSimilarity{Threshold: DefaultSimilarityThreshold},
		weights:    weights.Default(),
		relevance:  FullRelevance,
		duration:   ParseDuration,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Scorer) Weights() weights.WeightSet {
	return s.weights
}

// ScoreMatch evaluates candidate against job with the scorer's weights.
func (s *Scorer) ScoreMatch(job *profile.JobRequirement, candidate *profile.CandidateProfile) MatchResult {
	return s.ScoreMatchWith(job, candidate, s.weights)
}

// ScoreMatchWith evaluates candidate against job with explicit weights.
func (s *Scorer) ScoreMatchWith(job *profile.JobRequirement, candidate *profile.CandidateProfile, w weights.WeightSet) MatchResult {
	if job == nil {
		job = &profile.JobRequirement{}
	}
	if candidate == nil {
		candidate = &profile.CandidateProfile{}
	}

	result := MatchResult{
		Skills:         s.ScoreSkills(job.RequiredSkills, candidate.Skills),
		Experience:     s.ScoreExperience(job.RequiredExperienceYears, candidate.Experience),
		Education:      s.ScoreEducation(job.RequiredEducation, candidate.Education),
		Certifications: s.ScoreCertifications(job.RequiredCertifications, candidate.Certifications),
	}
	result.Overall = ScoreOverall(result.Components(), w.Normalize())

	return result
}
