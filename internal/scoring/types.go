package scoring

// ComponentScore is one dimension of a match on a 0..100 scale with a
// human-readable explanation.
type ComponentScore struct {
	Score   float64 `json:"score"`
	Details string  `json:"details"`
}

type Overall struct {
	Score   float64 `json:"score"`
	Summary string  `json:"summary"`
}

// MatchResult is the full evaluation of one candidate against one job.
type MatchResult struct {
	Skills         ComponentScore `json:"skills"`
	Experience     ComponentScore `json:"experience"`
	Education      ComponentScore `json:"education"`
	Certifications ComponentScore `json:"certifications"`
	Overall        Overall        `json:"overall"`
}
