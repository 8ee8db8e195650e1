package grading

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/unitrack/internal/pkg/apperrors"
)

func TestCalculateDefaultPolicy(t *testing.T) {
	p := DefaultPolicy()

	tests := []struct {
		name       string
		scores     Scores
		wantTotal  int
		wantLetter string
	}{
		{name: "full marks", scores: Scores{5, 5, 5, 5, 30, 50}, wantTotal: 100, wantLetter: "A"},
		{name: "exactly 90", scores: Scores{5, 5, 5, 5, 30, 40}, wantTotal: 90, wantLetter: "A"},
		{name: "89 is B", scores: Scores{5, 5, 5, 4, 30, 40}, wantTotal: 89, wantLetter: "B"},
		{name: "C band", scores: Scores{4, 4, 4, 4, 20, 35}, wantTotal: 71, wantLetter: "C"},
		{name: "D boundary", scores: Scores{0, 0, 0, 0, 20, 40}, wantTotal: 60, wantLetter: "D"},
		{name: "fail", scores: Scores{1, 1, 1, 1, 10, 20}, wantTotal: 34, wantLetter: "F"},
		{name: "all zero", scores: Scores{}, wantTotal: 0, wantLetter: "F"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.Calculate(tt.scores)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, got.Total)
			assert.Equal(t, tt.wantLetter, got.Letter)
		})
	}
}

func TestCalculateRejectsOutOfRange(t *testing.T) {
	p := DefaultPolicy()

	tests := []struct {
		name   string
		scores Scores
	}{
		{name: "assignment over max", scores: Scores{Assignment1: 6}},
		{name: "negative quiz", scores: Scores{Quiz2: -1}},
		{name: "mid over max", scores: Scores{Mid: 31}},
		{name: "final over max", scores: Scores{Final: 51}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Calculate(tt.scores)
			assert.True(t, errors.Is(err, apperrors.ErrInvalidScore), "got %v", err)
		})
	}
}

func TestNewPolicy(t *testing.T) {
	p, err := NewPolicy([]Boundary{{"C", 50}, {"A", 85}, {"B", 70}}, "")
	require.NoError(t, err)
	assert.Equal(t, []Boundary{{"A", 85}, {"B", 70}, {"C", 50}}, p.Boundaries())
	assert.Equal(t, "A", p.Letter(85))
	assert.Equal(t, "C", p.Letter(69))
	assert.Equal(t, DefaultFailingLetter, p.Letter(49))
	assert.True(t, p.IsFailing("f"))
	assert.False(t, p.IsFailing("C"))

	invalid := []struct {
		name       string
		boundaries []Boundary
	}{
		{name: "empty", boundaries: nil},
		{name: "blank letter", boundaries: []Boundary{{" ", 50}}},
		{name: "min above total", boundaries: []Boundary{{"A", 101}}},
		{name: "duplicate letter", boundaries: []Boundary{{"A", 90}, {"A", 80}}},
		{name: "duplicate min", boundaries: []Boundary{{"A", 90}, {"B", 90}}},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPolicy(tt.boundaries, "F")
			assert.Error(t, err)
		})
	}
}

func TestLoadPolicyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	content := []byte("failing_letter: E\nboundaries:\n  - letter: P\n    min: 50\n  - letter: D\n    min: 75\n")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	p, err := LoadPolicyFile(path)
	require.NoError(t, err)
	assert.Equal(t, "D", p.Letter(80))
	assert.Equal(t, "P", p.Letter(50))
	assert.Equal(t, "E", p.Letter(49))
	assert.True(t, p.IsFailing("E"))

	_, err = LoadPolicyFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
