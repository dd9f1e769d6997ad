// Package matrix computes weighted evaluation matrices for screening stages.
// Every stage scores a fixed set of named dimensions on a 0-10 scale; the
// matrix collapses them into one overall score and a coarse fit rating.
package matrix

import (
	"fmt"
	"math"
)

const (
	// MaxDimensionScore is the upper bound every dimension score is clamped to
	MaxDimensionScore = 10
	// MinDimensionScore is the lower bound every dimension score is clamped to
	MinDimensionScore = 0

	// highFitThreshold is the minimum overall score for a "high" fit rating
	highFitThreshold = 7.0
	// mediumFitThreshold is the minimum overall score for a "medium" fit rating
	mediumFitThreshold = 4.0
)

// FitRating buckets an overall score into a coarse hiring signal
type FitRating string

// Fit rating values, derived from the overall score
const (
	FitHigh   FitRating = "high"
	FitMedium FitRating = "medium"
	FitLow    FitRating = "low"
)

// Dimension is one named, weighted score within an evaluation matrix
type Dimension struct {
	Name      string  `json:"name"`
	Score     float64 `json:"score"`
	MaxScore  float64 `json:"max_score"`
	Weight    float64 `json:"weight"`
	Rationale string  `json:"rationale,omitempty"`
}

// Matrix is the full weighted evaluation for one stage attempt.
// It is persisted as part of the stage payload for audit and UI replay.
type Matrix struct {
	Dimensions   []Dimension        `json:"dimensions"`
	Weights      map[string]float64 `json:"weights"`
	OverallScore float64            `json:"overall_score"`
	FitRating    FitRating          `json:"fit_rating"`
}

// Input is a raw dimension score with its rationale, before clamping
type Input struct {
	Name      string
	Score     float64
	Rationale string
}

// Stage weight tables. Each table's values sum to 1.0.
var (
	// Stage1Weights scores a resume against the job posting
	Stage1Weights = Weights{
		{"skills", 0.40},
		{"experience", 0.35},
		{"education", 0.25},
	}
	// Stage2Weights scores a written answer set as a whole
	Stage2Weights = Weights{
		{"relevance", 0.40},
		{"clarity", 0.30},
		{"role_fit", 0.30},
	}
	// Stage3Weights scores a voice interview transcript
	Stage3Weights = Weights{
		{"communication", 0.40},
		{"problem_solving", 0.35},
		{"role_understanding", 0.25},
	}
)

// WeightEntry pairs a dimension name with its weight
type WeightEntry struct {
	Name   string
	Weight float64
}

// Weights is an ordered weight table for one stage
type Weights []WeightEntry

// Map returns the table as a name->weight map for persistence
func (w Weights) Map() map[string]float64 {
	m := make(map[string]float64, len(w))
	for _, e := range w {
		m[e.Name] = e.Weight
	}
	return m
}

// Names returns the dimension names in table order
func (w Weights) Names() []string {
	names := make([]string, len(w))
	for i, e := range w {
		names[i] = e.Name
	}
	return names
}

// Clamp forces a raw score into the [0,10] dimension range.
// Out-of-range model output is corrected, never rejected.
func Clamp(score float64) float64 {
	if score < MinDimensionScore {
		return MinDimensionScore
	}
	if score > MaxDimensionScore {
		return MaxDimensionScore
	}
	return score
}

// Compute builds the evaluation matrix for a stage from raw dimension inputs.
// Inputs must appear in the same order as the weight table; a missing or
// misnamed dimension is a programming error, not model output, so it fails.
func Compute(weights Weights, inputs []Input) (*Matrix, error) {
	if len(inputs) != len(weights) {
		return nil, fmt.Errorf("expected %d dimensions, got %d", len(weights), len(inputs))
	}

	dims := make([]Dimension, len(weights))
	var overall float64
	for i, entry := range weights {
		in := inputs[i]
		if in.Name != entry.Name {
			return nil, fmt.Errorf("dimension %d: expected %q, got %q", i, entry.Name, in.Name)
		}
		score := Clamp(in.Score)
		dims[i] = Dimension{
			Name:      entry.Name,
			Score:     score,
			MaxScore:  MaxDimensionScore,
			Weight:    entry.Weight,
			Rationale: in.Rationale,
		}
		overall += entry.Weight * score
	}

	return &Matrix{
		Dimensions:   dims,
		Weights:      weights.Map(),
		OverallScore: Round2(overall),
		FitRating:    Rate(Round2(overall)),
	}, nil
}

// Rate maps an overall score to its fit rating bucket
func Rate(overall float64) FitRating {
	switch {
	case overall >= highFitThreshold:
		return FitHigh
	case overall >= mediumFitThreshold:
		return FitMedium
	default:
		return FitLow
	}
}

// Round2 rounds to two decimal places
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Dimension lookup by name; returns nil if absent.
func (m *Matrix) Dimension(name string) *Dimension {
	for i := range m.Dimensions {
		if m.Dimensions[i].Name == name {
			return &m.Dimensions[i]
		}
	}
	return nil
}
