package matrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name        string
		weights     Weights
		inputs      []Input
		wantError   bool
		wantOverall float64
		wantRating  FitRating
	}{
		{
			name:    "Stage 2 worked example",
			weights: Stage2Weights,
			inputs: []Input{
				{Name: "relevance", Score: 8},
				{Name: "clarity", Score: 6},
				{Name: "role_fit", Score: 7},
			},
			wantOverall: 7.1,
			wantRating:  FitHigh,
		},
		{
			name:    "Stage 1 medium fit",
			weights: Stage1Weights,
			inputs: []Input{
				{Name: "skills", Score: 5},
				{Name: "experience", Score: 4},
				{Name: "education", Score: 6},
			},
			wantOverall: 4.9,
			wantRating:  FitMedium,
		},
		{
			name:    "Out-of-range scores are clamped before weighting",
			weights: Stage3Weights,
			inputs: []Input{
				{Name: "communication", Score: 14},
				{Name: "problem_solving", Score: -3},
				{Name: "role_understanding", Score: 5},
			},
			// 0.40*10 + 0.35*0 + 0.25*5 = 5.25
			wantOverall: 5.25,
			wantRating:  FitMedium,
		},
		{
			name:    "All zeros is low fit",
			weights: Stage2Weights,
			inputs: []Input{
				{Name: "relevance", Score: 0},
				{Name: "clarity", Score: 0},
				{Name: "role_fit", Score: 0},
			},
			wantOverall: 0,
			wantRating:  FitLow,
		},
		{
			name:    "Count mismatch fails",
			weights: Stage1Weights,
			inputs: []Input{
				{Name: "skills", Score: 5},
			},
			wantError: true,
		},
		{
			name:    "Name mismatch fails",
			weights: Stage1Weights,
			inputs: []Input{
				{Name: "skills", Score: 5},
				{Name: "education", Score: 4},
				{Name: "experience", Score: 6},
			},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Compute(tt.weights, tt.inputs)
			if tt.wantError {
				assert.Error(t, err)
				assert.Nil(t, m)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantOverall, m.OverallScore)
			assert.Equal(t, tt.wantRating, m.FitRating)
			assert.Len(t, m.Dimensions, len(tt.weights))
			for _, d := range m.Dimensions {
				assert.GreaterOrEqual(t, d.Score, 0.0)
				assert.LessOrEqual(t, d.Score, 10.0)
				assert.Equal(t, 10.0, d.MaxScore)
			}
		})
	}
}

func TestComputeOverallAlwaysInRange(t *testing.T) {
	// Weighted sum of clamped scores cannot leave [0,10] for any raw input.
	raw := [][]float64{
		{-100, -100, -100},
		{100, 100, 100},
		{-5, 15, 3.7},
	}
	for _, scores := range raw {
		inputs := []Input{
			{Name: "relevance", Score: scores[0]},
			{Name: "clarity", Score: scores[1]},
			{Name: "role_fit", Score: scores[2]},
		}
		m, err := Compute(Stage2Weights, inputs)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, m.OverallScore, 0.0)
		assert.LessOrEqual(t, m.OverallScore, 10.0)
	}
}

func TestRate(t *testing.T) {
	tests := []struct {
		score float64
		want  FitRating
	}{
		{10, FitHigh},
		{7, FitHigh},
		{6.99, FitMedium},
		{4, FitMedium},
		{3.99, FitLow},
		{0, FitLow},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Rate(tt.score), "score %v", tt.score)
	}
}

func TestWeightTablesSumToOne(t *testing.T) {
	for _, w := range []Weights{Stage1Weights, Stage2Weights, Stage3Weights} {
		var sum float64
		for _, e := range w {
			sum += e.Weight
		}
		assert.InDelta(t, 1.0, sum, 1e-9)
	}
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-3))
	assert.Equal(t, 10.0, Clamp(14))
	assert.Equal(t, 7.5, Clamp(7.5))
}

func TestMatrixDimensionLookup(t *testing.T) {
	m, err := Compute(Stage1Weights, []Input{
		{Name: "skills", Score: 8, Rationale: "strong overlap"},
		{Name: "experience", Score: 6},
		{Name: "education", Score: 4},
	})
	require.NoError(t, err)

	d := m.Dimension("skills")
	require.NotNil(t, d)
	assert.Equal(t, 8.0, d.Score)
	assert.Equal(t, "strong overlap", d.Rationale)

	assert.Nil(t, m.Dimension("missing"))
}
