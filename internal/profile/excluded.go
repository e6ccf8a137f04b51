package profile

import (
	"encoding/json"
	"errors"
	"os"
	"time"
)

// ExcludedCandidates is the persisted list of candidates that must not be
// ranked again, for example because they were already contacted.
type ExcludedCandidates struct {
	Items []*ExcludedCandidate
}

type ExcludedCandidate struct {
	Name       string
	JobTitle   string
	Reason     string
	ExcludedAt time.Time
}

// ToExcluded converts the pool into exclusion records for the given job.
func (c *Candidates) ToExcluded(jobTitle, reason string) *ExcludedCandidates {
	excluded := &ExcludedCandidates{}
	for _, candidate := range c.Items {
		excluded.Items = append(excluded.Items, &ExcludedCandidate{
			Name:       candidate.Name,
			JobTitle:   jobTitle,
			Reason:     reason,
			ExcludedAt: time.Now().UTC(),
		})
	}
	return excluded
}

// ReadExcludedFile loads exclusion records from path. A missing or empty file
// yields an empty list.
func ReadExcludedFile(path string) (*ExcludedCandidates, error) {
	file, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return &ExcludedCandidates{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}

	if stat.Size() == 0 {
		return &ExcludedCandidates{}, nil
	}

	var excluded ExcludedCandidates
	if err := json.NewDecoder(file).Decode(&excluded); err != nil {
		return nil, err
	}
	return &excluded, nil
}

func (e *ExcludedCandidates) Append(s *ExcludedCandidates) {
	if s == nil {
		return
	}
	e.Items = append(e.Items, s.Items...)
}

func (e *ExcludedCandidates) Names() []string {
	names := make([]string, 0, len(e.Items))
	for _, candidate := range e.Items {
		names = append(names, candidate.Name)
	}
	return names
}

// ToFile overwrites path with the current list.
func (e *ExcludedCandidates) ToFile(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(e)
}
