package weights

const (
	// skillCountThreshold is the number of required skills above which the
	// skills weight is raised.
	skillCountThreshold = 5
	// experienceYearsThreshold is the required experience above which the
	// experience weight is raised.
	experienceYearsThreshold = 5
	boost                    = 0.1
)

// JobShape is the part of a job requirement the adjuster looks at.
type JobShape struct {
	SkillCount              int `json:"skill_count"`
	RequiredExperienceYears int `json:"required_experience_years"`
}

// Adjust rebalances base for a job of the given shape. Long skill lists raise
// the skills weight and high experience requirements raise the experience
// weight; both rules may fire, skills first. The result always sums to 1.
func Adjust(base WeightSet, shape JobShape) WeightSet {
	adjusted := base.Normalize()

	if shape.SkillCount > skillCountThreshold {
		adjusted = raise(adjusted, Skills)
	}
	if shape.RequiredExperienceYears > experienceYearsThreshold {
		adjusted = raise(adjusted, Experience)
	}

	return adjusted.Normalize()
}

// raise adds boost to the target component and shrinks the other three
// proportionally so the total is unchanged.
func raise(w WeightSet, target Component) WeightSet {
	old := w.Of(target)
	updated := min(old+boost, 1)

	factor := 0.0
	if old < 1 {
		factor = (1 - updated) / (1 - old)
	}

	out := w
	for _, c := range Components {
		if c == target {
			out = out.with(c, updated)
			continue
		}
		out = out.with(c, w.Of(c)*factor)
	}
	return out
}
