package ranking

import (
	"context"
	"fmt"
	"runtime"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/candidate-ranker/internal/ai"
	"github.com/spigell/candidate-ranker/internal/logger"
	"github.com/spigell/candidate-ranker/internal/profile"
	"github.com/spigell/candidate-ranker/internal/scoring"
	"github.com/spigell/candidate-ranker/internal/weights"
)

type Config struct {
	// Weights are the base weights. A zero set means the defaults.
	Weights weights.WeightSet
	// Dynamic enables per-job weight adjustment.
	Dynamic bool
	// Workers limits concurrent scoring. Zero means GOMAXPROCS.
	Workers int
}

type Deps struct {
	Scorer    *scoring.Scorer
	Explainer ai.Explainer
	Logger    *zap.Logger
}

// Engine orders a candidate pool against a job.
type Engine struct {
	cfg       Config
	scorer    *scoring.Scorer
	explainer ai.Explainer
	fallback  ai.Explainer
	logger    *zap.Logger
}

func New(cfg Config, deps Deps) *Engine {
	cfg.Weights = cfg.Weights.Normalize()
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}

	scorer := deps.Scorer
	if scorer == nil {
		scorer = scoring.New()
	}

	return &Engine{
		cfg:       cfg,
		scorer:    scorer,
		explainer: deps.Explainer,
		fallback:  ai.NewStaticExplainer(),
		logger:    logger.WithFields(deps.Logger),
	}
}

// ShapeOf extracts what the weight adjuster needs from a job.
func ShapeOf(job *profile.JobRequirement) weights.JobShape {
	if job == nil {
		return weights.JobShape{}
	}
	return weights.JobShape{
		SkillCount:              job.RequiredSkills.Len(),
		RequiredExperienceYears: job.RequiredExperienceYears,
	}
}

// WeightsFor returns the weights used for job. The engine's base weights are
// never modified.
func (e *Engine) WeightsFor(job *profile.JobRequirement) weights.WeightSet {
	if !e.cfg.Dynamic {
		return e.cfg.Weights
	}
	return weights.Adjust(e.cfg.Weights, ShapeOf(job))
}

// Scored pairs a candidate with component scores computed elsewhere.
type Scored struct {
	Candidate *profile.CandidateProfile
	Match     scoring.MatchResult
}

// Rank scores every candidate in the pool and orders them. Scoring runs in
// parallel; ordering happens once all scores are known. An empty pool gives an
// empty result.
func (e *Engine) Rank(ctx context.Context, job *profile.JobRequirement, pool *profile.Candidates) (*Result, error) {
	if job == nil {
		job = &profile.JobRequirement{}
	}

	id := uuid.NewString()
	w := e.WeightsFor(job)
	log := logger.WithFields(e.logger, logger.RankingFields(id, job.Title)...)

	var items []*profile.CandidateProfile
	if pool != nil {
		items = pool.Items
	}

	scored := make([]Scored, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.Workers)
	for i, candidate := range items {
		if candidate == nil {
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			match := e.scorer.ScoreMatchWith(job, candidate, w)
			scored[i] = Scored{Candidate: candidate, Match: match}
			log.Debug("candidate scored",
				zap.String(logger.FieldCandidate, candidate.Name),
				zap.Float64("overall", match.Overall.Score),
			)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("score candidates: %w", err)
	}

	result := e.build(id, job, w, scored)

	log.Info("candidates ranked",
		zap.Int("candidates", result.Len()),
		zap.Bool("dynamic_weights", e.cfg.Dynamic),
		zap.Stringer("weights", w),
	)

	return result, nil
}

// RankScored orders candidates whose component scores are already known. The
// overall score is recomputed with the job's weights.
func (e *Engine) RankScored(job *profile.JobRequirement, scored []Scored) *Result {
	if job == nil {
		job = &profile.JobRequirement{}
	}
	return e.build(uuid.NewString(), job, e.WeightsFor(job), scored)
}

func (e *Engine) build(id string, job *profile.JobRequirement, w weights.WeightSet, scored []Scored) *Result {
	ranked := make([]RankedCandidate, 0, len(scored))
	for _, s := range scored {
		if s.Candidate == nil {
			continue
		}
		match := s.Match
		match.Overall = scoring.ScoreOverall(match.Components(), w)
		ranked = append(ranked, RankedCandidate{Candidate: s.Candidate, Match: match})
	}

	sortRanked(ranked)

	return &Result{
		ID:         id,
		Job:        job,
		Weights:    w,
		Candidates: ranked,
	}
}

// sortRanked orders by overall score, then skills, experience and education,
// all descending. Full ties keep their input order.
func sortRanked(items []RankedCandidate) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].Match, items[j].Match
		if a.Overall.Score != b.Overall.Score {
			return a.Overall.Score > b.Overall.Score
		}
		if a.Skills.Score != b.Skills.Score {
			return a.Skills.Score > b.Skills.Score
		}
		if a.Experience.Score != b.Experience.Score {
			return a.Experience.Score > b.Experience.Score
		}
		return a.Education.Score > b.Education.Score
	})
	renumber(items)
}

func renumber(items []RankedCandidate) {
	for i := range items {
		items[i].Rank = i + 1
	}
}

// Explain attaches an explanation to result. When the configured explainer is
// missing or fails, the static one is used.
func (e *Engine) Explain(ctx context.Context, result *Result) *ai.Explanation {
	in := result.Input()
	log := logger.WithFields(e.logger, logger.RankingFields(result.ID, result.JobTitle())...)

	var explanation *ai.Explanation
	if e.explainer != nil && len(in.Candidates) > 0 {
		got, err := e.explainer.Explain(ctx, in)
		if err != nil {
			log.Warn("explainer failed, using static explanation", zap.Error(err))
		} else {
			explanation = got
		}
	}

	if explanation == nil {
		explanation, _ = e.fallback.Explain(ctx, in)
	}

	result.Explanation = explanation
	return explanation
}
