// Package grading turns raw assessment scores into a total and a letter grade.
//
// The letter boundaries are institutional policy, so they live in a Policy
// value built from configuration rather than in code.
package grading

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultFailingLetter is the letter given below the lowest boundary.
const DefaultFailingLetter = "F"

// Boundary maps a minimum total (inclusive) to a letter.
type Boundary struct {
	Letter string `yaml:"letter" json:"letter"`
	Min    int    `yaml:"min" json:"min"`
}

// Policy is an ordered boundary table plus the failing letter.
type Policy struct {
	boundaries    []Boundary // sorted by Min, highest first
	failingLetter string
}

// PolicyFile is the on-disk layout of an external grading policy.
type PolicyFile struct {
	FailingLetter string     `yaml:"failing_letter"`
	Boundaries    []Boundary `yaml:"boundaries"`
}

var (
	ErrEmptyPolicy     = errors.New("grading policy has no boundaries")
	ErrInvalidBoundary = errors.New("invalid grading boundary")
)

// DefaultBoundaries is used when no table is configured.
func DefaultBoundaries() []Boundary {
	return []Boundary{
		{Letter: "A", Min: 90},
		{Letter: "B", Min: 80},
		{Letter: "C", Min: 70},
		{Letter: "D", Min: 60},
	}
}

// DefaultPolicy returns A>=90, B>=80, C>=70, D>=60, otherwise F.
func DefaultPolicy() *Policy {
	p, err := NewPolicy(DefaultBoundaries(), DefaultFailingLetter)
	if err != nil {
		panic(err)
	}
	return p
}

// NewPolicy validates and sorts a boundary table.
func NewPolicy(boundaries []Boundary, failingLetter string) (*Policy, error) {
	if len(boundaries) == 0 {
		return nil, ErrEmptyPolicy
	}
	failingLetter = strings.TrimSpace(failingLetter)
	if failingLetter == "" {
		failingLetter = DefaultFailingLetter
	}

	sorted := make([]Boundary, len(boundaries))
	copy(sorted, boundaries)
	letters := make(map[string]struct{}, len(sorted))
	mins := make(map[int]struct{}, len(sorted))
	for i := range sorted {
		b := &sorted[i]
		b.Letter = strings.TrimSpace(b.Letter)
		if b.Letter == "" {
			return nil, fmt.Errorf("%w: boundary %d has no letter", ErrInvalidBoundary, i)
		}
		if b.Min < 0 || b.Min > MaxTotal {
			return nil, fmt.Errorf("%w: %s minimum %d outside 0..%d", ErrInvalidBoundary, b.Letter, b.Min, MaxTotal)
		}
		if _, dup := letters[b.Letter]; dup {
			return nil, fmt.Errorf("%w: letter %s listed twice", ErrInvalidBoundary, b.Letter)
		}
		if _, dup := mins[b.Min]; dup {
			return nil, fmt.Errorf("%w: minimum %d listed twice", ErrInvalidBoundary, b.Min)
		}
		letters[b.Letter] = struct{}{}
		mins[b.Min] = struct{}{}
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Min > sorted[j].Min })

	return &Policy{boundaries: sorted, failingLetter: failingLetter}, nil
}

// LoadPolicyFile reads a YAML policy file.
func LoadPolicyFile(path string) (*Policy, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read grading policy: %w", err)
	}
	var file PolicyFile
	if err := yaml.Unmarshal(content, &file); err != nil {
		return nil, fmt.Errorf("failed to parse grading policy: %w", err)
	}
	return NewPolicy(file.Boundaries, file.FailingLetter)
}

// Letter returns the letter for a total.
func (p *Policy) Letter(total int) string {
	for _, b := range p.boundaries {
		if total >= b.Min {
			return b.Letter
		}
	}
	return p.failingLetter
}

// IsFailing reports whether a letter counts as a fail at course closure.
func (p *Policy) IsFailing(letter string) bool {
	return strings.EqualFold(strings.TrimSpace(letter), p.failingLetter)
}

// FailingLetter returns the letter below the lowest boundary.
func (p *Policy) FailingLetter() string {
	return p.failingLetter
}

// Boundaries returns a copy of the table, highest first.
func (p *Policy) Boundaries() []Boundary {
	out := make([]Boundary, len(p.boundaries))
	copy(out, p.boundaries)
	return out
}
