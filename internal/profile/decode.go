package profile

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/tidwall/gjson"
)

// maxExperienceYears caps year counts read from documents.
const maxExperienceYears = 100

var (
	ErrInvalidJSON = errors.New("invalid JSON document")
	ErrNotObject   = errors.New("expected a JSON object")
)

// Issue describes a malformed field that was replaced with its default value.
// Decoding never fails because of a single bad field.
type Issue struct {
	Field   string
	Message string
}

func (i Issue) String() string {
	return i.Field + ": " + i.Message
}

type decoder struct {
	prefix string
	issues []Issue
}

func (d *decoder) add(field, format string, args ...any) {
	d.issues = append(d.issues, Issue{Field: d.prefix + field, Message: fmt.Sprintf(format, args...)})
}

// lookup returns the first key present in obj.
func lookup(obj gjson.Result, keys ...string) (gjson.Result, string) {
	for _, key := range keys {
		if r := obj.Get(gjson.Escape(key)); r.Exists() {
			return r, key
		}
	}
	return gjson.Result{}, keys[0]
}

func (d *decoder) str(obj gjson.Result, keys ...string) string {
	r, key := lookup(obj, keys...)
	switch r.Type {
	case gjson.Null:
		return ""
	case gjson.String:
		return strings.TrimSpace(r.Str)
	case gjson.Number:
		return r.Raw
	default:
		d.add(key, "expected a string, got %s", r.Type)
		return ""
	}
}

func (d *decoder) strs(obj gjson.Result, keys ...string) []string {
	r, key := lookup(obj, keys...)
	return d.list(r, key)
}

func (d *decoder) list(r gjson.Result, field string) []string {
	switch {
	case !r.Exists() || r.Type == gjson.Null:
		return nil
	case r.IsArray():
		var out []string
		for i, item := range r.Array() {
			switch item.Type {
			case gjson.String:
				if s := strings.TrimSpace(item.Str); s != "" {
					out = append(out, s)
				}
			case gjson.Number:
				out = append(out, item.Raw)
			default:
				d.add(fmt.Sprintf("%s[%d]", field, i), "expected a string, got %s", item.Type)
			}
		}
		return out
	case r.Type == gjson.String:
		d.add(field, "expected a list, got a string")
		if s := strings.TrimSpace(r.Str); s != "" {
			return []string{s}
		}
		return nil
	default:
		d.add(field, "expected a list, got %s", r.Type)
		return nil
	}
}

func (d *decoder) years(obj gjson.Result, keys ...string) int {
	r, key := lookup(obj, keys...)
	var value float64
	switch r.Type {
	case gjson.Null:
		return 0
	case gjson.Number:
		value = r.Num
	case gjson.String:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(r.Str), 64)
		if err != nil || math.IsNaN(parsed) {
			d.add(key, "expected a number, got %q", r.Str)
			return 0
		}
		value = parsed
	default:
		d.add(key, "expected a number, got %s", r.Type)
		return 0
	}

	if value < 0 {
		d.add(key, "negative value %v replaced with 0", value)
		return 0
	}
	if value > maxExperienceYears {
		d.add(key, "value %v clamped to %d", value, maxExperienceYears)
		return maxExperienceYears
	}
	return int(value)
}

func (d *decoder) skills(obj gjson.Result, keys ...string) SkillSet {
	r, key := lookup(obj, keys...)
	switch {
	case !r.Exists() || r.Type == gjson.Null:
		return SkillSet{}
	case r.IsObject():
		tech, techKey := lookup(r, "technical", "technical_skills")
		soft, softKey := lookup(r, "soft", "soft_skills")
		return SkillSet{
			Technical: d.list(tech, key+"."+techKey),
			Soft:      d.list(soft, key+"."+softKey),
		}
	case r.IsArray():
		d.add(key, "expected technical and soft categories, treating list as technical")
		return SkillSet{Technical: d.list(r, key)}
	default:
		d.add(key, "expected an object, got %s", r.Type)
		return SkillSet{}
	}
}

// DecodeJob parses a job requirement document. Malformed fields fall back to
// their defaults and are reported as issues.
func DecodeJob(data []byte) (*JobRequirement, []Issue, error) {
	root, err := parseObject(data)
	if err != nil {
		return nil, nil, err
	}

	d := &decoder{}
	job := decodeJob(d, root)
	return job, d.issues, nil
}

func decodeJob(d *decoder, obj gjson.Result) *JobRequirement {
	return &JobRequirement{
		Title:                   d.str(obj, "title", "job_title"),
		Department:              d.str(obj, "department"),
		RequiredExperienceYears: d.years(obj, "required_experience_years", "required_experience"),
		RequiredEducation:       d.str(obj, "required_education", "education"),
		RequiredSkills:          d.skills(obj, "required_skills", "skills"),
		RequiredCertifications:  d.strs(obj, "required_certifications", "certifications"),
	}
}

// DecodeCandidate parses a single candidate profile.
func DecodeCandidate(data []byte) (*CandidateProfile, []Issue, error) {
	root, err := parseObject(data)
	if err != nil {
		return nil, nil, err
	}

	d := &decoder{}
	candidate := decodeCandidate(d, root)
	return candidate, d.issues, nil
}

// DecodeCandidates parses either a JSON array of candidate profiles or an
// object holding such an array under the "candidates" key. Entries that are
// not objects are skipped and reported.
func DecodeCandidates(data []byte) (*Candidates, []Issue, error) {
	if !gjson.ValidBytes(data) {
		return nil, nil, ErrInvalidJSON
	}

	root := gjson.ParseBytes(data)
	if root.IsObject() {
		root = root.Get("candidates")
	}
	if !root.IsArray() {
		return nil, nil, fmt.Errorf("expected a list of candidates: %w", ErrNotObject)
	}

	pool := &Candidates{}
	var issues []Issue
	for i, item := range root.Array() {
		d := &decoder{prefix: fmt.Sprintf("candidates[%d].", i)}
		if !item.IsObject() {
			issues = append(issues, Issue{
				Field:   fmt.Sprintf("candidates[%d]", i),
				Message: fmt.Sprintf("expected an object, got %s", item.Type),
			})
			continue
		}
		pool.Items = append(pool.Items, decodeCandidate(d, item))
		issues = append(issues, d.issues...)
	}

	return pool, issues, nil
}

func decodeCandidate(d *decoder, obj gjson.Result) *CandidateProfile {
	return &CandidateProfile{
		Name:           d.str(obj, "name", "candidate_name"),
		Skills:         d.skills(obj, "skills"),
		Experience:     d.experience(obj),
		Education:      d.education(obj),
		Certifications: d.strs(obj, "certifications"),
	}
}

func (d *decoder) experience(obj gjson.Result) []ExperienceEntry {
	r, key := lookup(obj, "experience", "work_experience")
	items := d.entries(r, key)

	out := make([]ExperienceEntry, 0, len(items))
	for i, item := range items {
		field := fmt.Sprintf("%s[%d]", key, i)
		if item.Type == gjson.String {
			d.add(field, "expected an object, using the text as title")
			out = append(out, ExperienceEntry{Title: strings.TrimSpace(item.Str)})
			continue
		}

		var entry ExperienceEntry
		if err := decodeEntry(item.Value(), &entry); err != nil {
			d.add(field, "%v", err)
		}
		out = append(out, entry)
	}
	return out
}

func (d *decoder) education(obj gjson.Result) []EducationEntry {
	r, key := lookup(obj, "education")
	items := d.entries(r, key)

	out := make([]EducationEntry, 0, len(items))
	for i, item := range items {
		field := fmt.Sprintf("%s[%d]", key, i)
		if item.Type == gjson.String {
			out = append(out, EducationEntry{Degree: strings.TrimSpace(item.Str)})
			continue
		}

		var entry EducationEntry
		if err := decodeEntry(item.Value(), &entry); err != nil {
			d.add(field, "%v", err)
		}
		out = append(out, entry)
	}
	return out
}

// entries returns the elements of a list of records, dropping anything that is
// neither an object nor a plain string.
func (d *decoder) entries(r gjson.Result, field string) []gjson.Result {
	if !r.Exists() || r.Type == gjson.Null {
		return nil
	}
	if !r.IsArray() {
		d.add(field, "expected a list, got %s", r.Type)
		return nil
	}

	var out []gjson.Result
	for i, item := range r.Array() {
		if item.IsObject() || item.Type == gjson.String {
			out = append(out, item)
			continue
		}
		d.add(fmt.Sprintf("%s[%d]", field, i), "expected an object, got %s", item.Type)
	}
	return out
}

func decodeEntry(value, target any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           target,
	})
	if err != nil {
		return err
	}
	return dec.Decode(value)
}

func parseObject(data []byte) (gjson.Result, error) {
	if !gjson.ValidBytes(data) {
		return gjson.Result{}, ErrInvalidJSON
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return gjson.Result{}, ErrNotObject
	}
	return root, nil
}
