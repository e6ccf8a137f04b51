package scoring

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/xrash/smetrics"
)

const (
	StrategySequence    = "sequence"
	StrategyJaroWinkler = "jaro-winkler"

	DefaultSimilarityThreshold = 0.8
)

// Similarity decides whether two normalized skill names denote the same skill
// when they are not exactly equal.
type Similarity interface {
	Similar(a, b string) bool
}

// SimilarityFunc adapts a plain function to Similarity.
type SimilarityFunc func(a, b string) bool

func (f SimilarityFunc) Similar(a, b string) bool {
	return f(a, b)
}

// SequenceSimilarity compares strings by the longest-matching-blocks ratio
// 2*M/T over their characters.
type SequenceSimilarity struct {
	Threshold float64
}

func (s SequenceSimilarity) Similar(a, b string) bool {
	return SequenceRatio(a, b) > s.Threshold
}

// SequenceRatio returns the similarity ratio of a and b in [0, 1].
func SequenceRatio(a, b string) float64 {
	if a == "" && b == "" {
		return 1
	}
	m := difflib.NewMatcher(strings.Split(a, ""), strings.Split(b, ""))
	return m.Ratio()
}

type JaroWinklerSimilarity struct {
	Threshold float64
}

func (s JaroWinklerSimilarity) Similar(a, b string) bool {
	return smetrics.JaroWinkler(a, b, 0.7, 4) > s.Threshold
}

// NewSimilarity builds the named strategy. An empty strategy selects the
// sequence ratio and a non-positive threshold selects the default.
func NewSimilarity(strategy string, threshold float64) (Similarity, error) {
	if threshold <= 0 {
		threshold = DefaultSimilarityThreshold
	}

	switch strings.ToLower(strings.TrimSpace(strategy)) {
	case "", StrategySequence:
		return SequenceSimilarity{Threshold: threshold}, nil
	case StrategyJaroWinkler:
		return JaroWinklerSimilarity{Threshold: threshold}, nil
	default:
		return nil, fmt.Errorf("unknown similarity strategy %q", strategy)
	}
}
