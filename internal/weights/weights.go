package weights

import (
	"fmt"
	"math"
)

// Component names a scored dimension of a match.
type Component string

const (
	Skills         Component = "skills"
	Experience     Component = "experience"
	Education      Component = "education"
	Certifications Component = "certifications"
)

// Components lists every component in reporting order.
var Components = []Component{Skills, Experience, Education, Certifications}

// WeightSet holds the relative importance of each component. Values are copied
// around by value; a set handed to a function is never modified in place.
type WeightSet struct {
	Skills         float64 `json:"skills" mapstructure:"skills" validate:"gte=0,lte=1"`
	Experience     float64 `json:"experience" mapstructure:"experience" validate:"gte=0,lte=1"`
	Education      float64 `json:"education" mapstructure:"education" validate:"gte=0,lte=1"`
	Certifications float64 `json:"certifications" mapstructure:"certifications" validate:"gte=0,lte=1"`
}

func Default() WeightSet {
	return WeightSet{
		Skills:         0.4,
		Experience:     0.3,
		Education:      0.2,
		Certifications: 0.1,
	}
}

func (w WeightSet) Sum() float64 {
	return w.Skills + w.Experience + w.Education + w.Certifications
}

// sumTolerance is how far from 1 a sum may drift and still count as normalized.
const sumTolerance = 1e-9

// Normalize scales the set so it sums to 1. A set with a non-positive sum or a
// negative member falls back to Default.
func (w WeightSet) Normalize() WeightSet {
	total := w.Sum()
	if total <= 0 || w.Skills < 0 || w.Experience < 0 || w.Education < 0 || w.Certifications < 0 {
		return Default()
	}
	if math.Abs(total-1) < sumTolerance {
		return w
	}
	return WeightSet{
		Skills:         w.Skills / total,
		Experience:     w.Experience / total,
		Education:      w.Education / total,
		Certifications: w.Certifications / total,
	}
}

func (w WeightSet) Of(c Component) float64 {
	switch c {
	case Skills:
		return w.Skills
	case Experience:
		return w.Experience
	case Education:
		return w.Education
	case Certifications:
		return w.Certifications
	default:
		return 0
	}
}

func (w WeightSet) with(c Component, value float64) WeightSet {
	switch c {
	case Skills:
		w.Skills = value
	case Experience:
		w.Experience = value
	case Education:
		w.Education = value
	case Certifications:
		w.Certifications = value
	}
	return w
}

func (w WeightSet) Map() map[Component]float64 {
	out := make(map[Component]float64, len(Components))
	for _, c := range Components {
		out[c] = w.Of(c)
	}
	return out
}

func (w WeightSet) String() string {
	return fmt.Sprintf("skills=%.3f experience=%.3f education=%.3f certifications=%.3f",
		w.Skills, w.Experience, w.Education, w.Certifications)
}
