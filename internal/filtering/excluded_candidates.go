package filtering

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/candidate-ranker/internal/ranking"
)

type excludedCandidatesFilter struct {
	toggle
	names []string
}

// NewExcludedCandidates drops candidates listed by name in the configuration.
func NewExcludedCandidates() Filter {
	return &excludedCandidatesFilter{}
}

func (f *excludedCandidatesFilter) Name() string { return "excluded_candidates" }

func (f *excludedCandidatesFilter) Validate(cfg *Config) error {
	f.names = nil
	if cfg == nil {
		return nil
	}
	for _, name := range cfg.ExcludedCandidates {
		if name = strings.TrimSpace(name); name != "" {
			f.names = append(f.names, name)
		}
	}
	return nil
}

func (f *excludedCandidatesFilter) Apply(_ context.Context, deps Deps, r *ranking.Result) (*ranking.Result, Step, error) {
	initial := r.Len()
	excluded := r.Exclude(f.names)
	if len(excluded) > 0 {
		deps.Logger.Info("excluding candidates listed in config",
			zap.Strings("excluded_candidates", excluded),
			zap.Int("candidates_left", r.Len()),
		)
	}

	return r, Step{Initial: initial, Dropped: len(excluded), Left: r.Len()}, nil
}

func (f *excludedCandidatesFilter) Status() Status {
	details := map[string]string{}
	if len(f.names) > 0 {
		details["candidates"] = strings.Join(f.names, ",")
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
