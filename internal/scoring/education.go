package scoring

import (
	"fmt"
	"strings"

	"github.com/spigell/candidate-ranker/internal/profile"
)

// Level is the tier of a degree on the education scale. Unrecognized text maps
// to LevelUnknown.
type Level int

const (
	LevelUnknown Level = iota
	LevelHighSchool
	LevelAssociate
	LevelBachelor
	LevelMaster
	LevelDoctorate
)

func (l Level) String() string {
	switch l {
	case LevelHighSchool:
		return "high school"
	case LevelAssociate:
		return "associate"
	case LevelBachelor:
		return "bachelor"
	case LevelMaster:
		return "master"
	case LevelDoctorate:
		return "doctorate"
	default:
		return "unknown"
	}
}

type educationPhrase struct {
	phrase   string
	position int
	level    Level
}

// educationScale is scanned in order and the first phrase found in a text
// wins. Partial credit divides positions, so synonyms reuse the position of
// the phrase they stand for. High school is the floor at position 0, shared
// with unrecognized text.
var educationScale = []educationPhrase{
	{"high school", 0, LevelHighSchool},
	{"secondary school", 0, LevelHighSchool},
	{"associate's degree", 1, LevelAssociate},
	{"associate degree", 2, LevelAssociate},
	{"associates", 3, LevelAssociate},
	{"associate", 3, LevelAssociate},
	{"bachelor's degree", 4, LevelBachelor},
	{"bachelor degree", 5, LevelBachelor},
	{"bachelors", 6, LevelBachelor},
	{"bachelor", 6, LevelBachelor},
	{"b.s.", 7, LevelBachelor},
	{"b.sc", 7, LevelBachelor},
	{"bsc", 7, LevelBachelor},
	{"b.a.", 8, LevelBachelor},
	{"master's degree", 9, LevelMaster},
	{"master degree", 10, LevelMaster},
	{"masters", 11, LevelMaster},
	{"master", 11, LevelMaster},
	{"m.s.", 12, LevelMaster},
	{"m.sc", 12, LevelMaster},
	{"msc", 12, LevelMaster},
	{"m.a.", 13, LevelMaster},
	{"mba", 14, LevelMaster},
	{"doctorate", 15, LevelDoctorate},
	{"doctor of", 15, LevelDoctorate},
	{"doctoral", 16, LevelDoctorate},
	{"phd", 17, LevelDoctorate},
	{"ph.d", 18, LevelDoctorate},
}

func lookupEducation(text string) (educationPhrase, bool) {
	lower := strings.ToLower(text)
	for _, entry := range educationScale {
		if strings.Contains(lower, entry.phrase) {
			return entry, true
		}
	}
	return educationPhrase{}, false
}

// EducationLevel returns the tier of a free-text degree description and the
// phrase that determined it.
func EducationLevel(text string) (Level, string) {
	entry, ok := lookupEducation(text)
	if !ok {
		return LevelUnknown, ""
	}
	return entry.level, entry.phrase
}

// EducationPosition returns the scale position of a free-text degree
// description. Unrecognized text sits on the floor.
func EducationPosition(text string) int {
	entry, _ := lookupEducation(text)
	return entry.position
}

// ScoreEducation compares the highest degree in entries with the required one.
func (s *Scorer) ScoreEducation(required string, entries []profile.EducationEntry) ComponentScore {
	required = strings.TrimSpace(required)
	if required == "" || strings.EqualFold(required, "not specified") {
		return ComponentScore{Score: 100, Details: "No education requirement specified"}
	}

	requiredPosition := EducationPosition(required)

	highest := 0
	highestDegree := "None"
	degrees := make([]string, 0, len(entries))
	for _, entry := range entries {
		degree := strings.TrimSpace(entry.Degree)
		if degree == "" {
			continue
		}
		degrees = append(degrees, degree)

		if position := EducationPosition(degree); position > highest {
			highest = position
			highestDegree = degree
		}
	}

	var (
		score   float64
		details string
	)
	if highest >= requiredPosition {
		score = 100
		details = fmt.Sprintf("Candidate's highest education (%s) meets or exceeds the required level (%s).", highestDegree, required)
	} else {
		score = float64(highest) / float64(requiredPosition) * 100
		details = fmt.Sprintf("Candidate's highest education (%s) is below the required level (%s).", highestDegree, required)
	}

	if len(degrees) > 0 {
		details += "\nEducation details:\n" + strings.Join(degrees, "\n")
	}

	return ComponentScore{Score: score, Details: details}
}
