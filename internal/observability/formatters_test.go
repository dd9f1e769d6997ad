package observability

import (
	"bytes"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/jonathan/candidate-screener/internal/db"
	"github.com/jonathan/candidate-screener/internal/gate"
	"github.com/jonathan/candidate-screener/internal/matrix"
)

func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }

func TestPrintMatrix(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	m, err := matrix.Compute(matrix.Stage1Weights, []matrix.Input{
		{Name: "skills", Score: 8},
		{Name: "experience", Score: 6},
		{Name: "education", Score: 7},
	})
	assert.NoError(t, err)

	p.PrintMatrix(1, m)
	out := buf.String()

	assert.Contains(t, out, "RESUME SCREENING MATRIX")
	assert.Contains(t, out, "skills")
	assert.Contains(t, out, "Overall:  7.05")
	assert.Contains(t, out, "Fit:      high")
}

func TestPrintMatrixNilIsSilent(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintMatrix(1, nil)
	assert.Empty(t, buf.String())
}

func TestPrintMatrixUnknownStage(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)
	p.PrintMatrix(9, &matrix.Matrix{OverallScore: 5, FitRating: matrix.FitMedium})
	assert.Contains(t, buf.String(), "STAGE 9 MATRIX")
}

func TestPrintVerdict(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	v, err := gate.Decide(2, 7.1, 5.0)
	assert.NoError(t, err)

	p.PrintVerdict(v, floatPtr(7.1), 5.0)
	out := buf.String()

	assert.Contains(t, out, "STAGE 2 GATE")
	assert.Contains(t, out, "Score:      7.10 (threshold 5.00)")
	assert.Contains(t, out, "Result:     PASSED")
	assert.Contains(t, out, "New status: stage2_passed")
}

func TestPrintVerdictNilScore(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	v := gate.Verdict{Stage: 1, Passed: false, Status: gate.StatusStage1Failed, StageStatus: gate.StageSkipped}
	p.PrintVerdict(v, nil, 5.0)
	out := buf.String()

	assert.Contains(t, out, "Result:     FAILED")
	assert.Contains(t, out, "Score:      -")
}

func TestPrintApplication(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	app := &db.Application{
		ID:           uuid.New(),
		Status:       "stage2_passed",
		CurrentStage: intPtr(2),
		OverallScore: floatPtr(7.1),
		AISummary:    "Strong written answers.",
	}
	stages := []db.ScreeningStage{
		{StageNumber: 1, Attempt: 1, Status: "completed", Score: floatPtr(7.05)},
		{StageNumber: 2, Attempt: 1, Status: "completed", Score: floatPtr(7.1)},
	}

	p.PrintApplication(app, stages)
	out := buf.String()

	assert.Contains(t, out, "APPLICATION")
	assert.Contains(t, out, "Status:   stage2_passed")
	assert.Contains(t, out, "stage 1 #1  completed")
	assert.Contains(t, out, "7.05")
}

func TestPrintApplicationTruncatesAttempts(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	app := &db.Application{ID: uuid.New(), Status: "submitted"}
	stages := make([]db.ScreeningStage, 8)
	for i := range stages {
		stages[i] = db.ScreeningStage{StageNumber: 1, Attempt: i + 1, Status: "failed"}
	}

	p.PrintApplication(app, stages)
	assert.Contains(t, buf.String(), "... and 3 more")
}

func TestPrintEvaluation(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	stage := &db.ScreeningStage{
		StageNumber: 1,
		Attempt:     2,
		Evaluation:  []byte(`{"fit_rating":"high"}`),
	}
	p.PrintEvaluation(stage)
	out := buf.String()

	assert.Contains(t, out, "STAGE 1 ATTEMPT 2 EVALUATION")
	assert.Contains(t, out, `"fit_rating": "high"`)
}

func TestPrintEvaluationEmptyIsSilent(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintEvaluation(&db.ScreeningStage{StageNumber: 1})
	assert.Empty(t, buf.String())
}
