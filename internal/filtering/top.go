package filtering

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/spigell/candidate-ranker/internal/ranking"
)

type topFilter struct {
	toggle
	configured bool
	limit      int
	threshold  float64
}

// NewTop keeps candidates scoring at least the threshold, truncated to the
// limit. Without a config it keeps everything; disable it to skip the cut.
func NewTop() Filter {
	return &topFilter{}
}

func (f *topFilter) Name() string { return "top" }

func (f *topFilter) Validate(cfg *Config) error {
	f.configured, f.limit, f.threshold = false, 0, 0
	if cfg == nil {
		return nil
	}
	if cfg.Limit < 1 {
		return fmt.Errorf("limit must be positive, got %d", cfg.Limit)
	}
	if cfg.Threshold < 0 || cfg.Threshold > 100 {
		return fmt.Errorf("threshold must be within 0..100, got %.2f", cfg.Threshold)
	}
	f.configured, f.limit, f.threshold = true, cfg.Limit, cfg.Threshold
	return nil
}

func (f *topFilter) Apply(_ context.Context, deps Deps, r *ranking.Result) (*ranking.Result, Step, error) {
	initial := r.Len()
	if !f.configured {
		return r, Step{Initial: initial, Left: initial}, nil
	}

	kept := make(map[int]struct{})
	for _, c := range r.Top(f.limit, f.threshold) {
		kept[c.Rank] = struct{}{}
	}
	dropped := r.Retain(func(c ranking.RankedCandidate) bool {
		_, ok := kept[c.Rank]
		return ok
	})

	if len(dropped) > 0 {
		deps.Logger.Debug("dropping candidates outside the top",
			zap.Strings("dropped_candidates", dropped),
			zap.Int("limit", f.limit),
			zap.Float64("threshold", f.threshold),
		)
	}

	return r, Step{Initial: initial, Dropped: len(dropped), Left: r.Len()}, nil
}

func (f *topFilter) Status() Status {
	return Status{
		Name:    f.Name(),
		Enabled: f.IsEnabled(),
		Reason:  f.reason,
		Details: map[string]string{
			"limit":     strconv.Itoa(f.limit),
			"threshold": strconv.FormatFloat(f.threshold, 'f', 1, 64),
		},
	}
}
