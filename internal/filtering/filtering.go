package filtering

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/candidate-ranker/internal/ranking"
)

// Filter is a single post-ranking step that may drop candidates from a result.
// Steps never reorder the candidates they keep.
type Filter interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	Validate(cfg *Config) error
	Apply(ctx context.Context, deps Deps, r *ranking.Result) (*ranking.Result, Step, error)
}

type Deps struct {
	Logger *zap.Logger
}

// Step describes the effect of one filter.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// Config holds the settings read by the filters.
type Config struct {
	ExcludedCandidates []string
	ExcludeFile        string
	Limit              int
	Threshold          float64
}

type Status struct {
	Name    string
	Enabled bool
	Reason  string
	Details map[string]string
}

type statusProvider interface {
	Status() Status
}

// toggle carries the enabled state shared by all filters.
type toggle struct {
	disabled bool
	reason   string
}

func (t *toggle) Disable(reason string) {
	t.disabled = true
	t.reason = reason
}

func (t *toggle) IsEnabled() bool { return !t.disabled }

// Default returns the standard pipeline in execution order.
func Default() []Filter {
	return []Filter{
		NewExcludedCandidates(),
		NewExcludeFile(),
		NewTop(),
	}
}

// DisableByName disables the named filter while keeping it in the list.
func DisableByName(steps []Filter, name, reason string) {
	for _, step := range steps {
		if step.Name() == name {
			step.Disable(reason)
		}
	}
}

// Run validates every enabled filter and then applies them in order.
func Run(ctx context.Context, cfg *Config, deps Deps, steps []Filter, r *ranking.Result) (*ranking.Result, error) {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	for _, step := range steps {
		if !step.IsEnabled() {
			continue
		}
		if err := step.Validate(cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}
	}

	for _, step := range steps {
		if !step.IsEnabled() {
			deps.Logger.Info("filter disabled", zap.String("name", step.Name()))
			continue
		}

		next, info, err := step.Apply(ctx, deps, r)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}

		deps.Logger.Info("filter step",
			zap.String("name", step.Name()),
			zap.Int("initial", info.Initial),
			zap.Int("dropped", info.Dropped),
			zap.Int("left", info.Left),
		)

		r = next
	}

	return r, nil
}

// Describe reports the status of each filter.
func Describe(steps []Filter) []Status {
	statuses := make([]Status, 0, len(steps))
	for _, step := range steps {
		if reporter, ok := step.(statusProvider); ok {
			statuses = append(statuses, reporter.Status())
			continue
		}
		statuses = append(statuses, Status{Name: step.Name(), Enabled: step.IsEnabled()})
	}
	return statuses
}
