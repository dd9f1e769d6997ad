// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/candidate-screener/internal/db"
	"github.com/jonathan/candidate-screener/internal/gate"
	"github.com/jonathan/candidate-screener/internal/matrix"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// stageNames maps a stage number to its display name
var stageNames = map[int]string{
	1: "RESUME SCREENING",
	2: "WRITTEN ASSESSMENT",
	3: "VOICE INTERVIEW",
}

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintMatrix outputs the weighted evaluation matrix for one stage attempt.
func (p *Printer) PrintMatrix(stage int, m *matrix.Matrix) {
	if m == nil {
		return
	}

	var sb strings.Builder
	for _, d := range m.Dimensions {
		sb.WriteString(fmt.Sprintf("%-20s %5.2f / %.0f   (weight %.2f)\n",
			d.Name, d.Score, d.MaxScore, d.Weight))
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Overall:  %.2f\n", m.OverallScore))
	sb.WriteString(fmt.Sprintf("Fit:      %s", m.FitRating))

	title := stageNames[stage]
	if title == "" {
		title = fmt.Sprintf("STAGE %d", stage)
	}
	p.printBox(title+" MATRIX", sb.String())
}

// PrintVerdict outputs the gate decision for a completed stage attempt.
func (p *Printer) PrintVerdict(v gate.Verdict, score *float64, threshold float64) {
	var sb strings.Builder

	if score != nil {
		sb.WriteString(fmt.Sprintf("Score:      %.2f (threshold %.2f)\n", *score, threshold))
	} else {
		sb.WriteString(fmt.Sprintf("Score:      -    (threshold %.2f)\n", threshold))
	}
	result := "FAILED"
	if v.Passed {
		result = "PASSED"
	}
	sb.WriteString(fmt.Sprintf("Result:     %s\n", result))
	sb.WriteString(fmt.Sprintf("New status: %s", v.Status))

	p.printBox(fmt.Sprintf("STAGE %d GATE", v.Stage), sb.String())
}

// PrintApplication outputs an application summary with its stage attempts.
func (p *Printer) PrintApplication(app *db.Application, stages []db.ScreeningStage) {
	if app == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("ID:       %s\n", app.ID))
	sb.WriteString(fmt.Sprintf("Status:   %s\n", app.Status))
	if app.CurrentStage != nil {
		sb.WriteString(fmt.Sprintf("Stage:    %d\n", *app.CurrentStage))
	}
	if app.OverallScore != nil {
		sb.WriteString(fmt.Sprintf("Score:    %.2f\n", *app.OverallScore))
	}
	if app.AISummary != "" {
		sb.WriteString(fmt.Sprintf("Summary:  %s\n", app.AISummary))
	}

	if len(stages) > 0 {
		sb.WriteString("\nAttempts:\n")
		count := min(len(stages), maxItemsToShow)
		for i := 0; i < count; i++ {
			st := stages[i]
			sb.WriteString(fmt.Sprintf("  stage %d #%d  %-11s", st.StageNumber, st.Attempt, st.Status))
			if st.Score != nil {
				sb.WriteString(fmt.Sprintf("  %.2f", *st.Score))
			}
			sb.WriteString("\n")
		}
		if len(stages) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(stages)-maxItemsToShow))
		}
	}

	p.printBox("APPLICATION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintEvaluation outputs the stored evaluation payload of a stage attempt,
// pretty-printed when it is valid JSON.
func (p *Printer) PrintEvaluation(stage *db.ScreeningStage) {
	if stage == nil || len(stage.Evaluation) == 0 {
		return
	}

	content := string(stage.Evaluation)
	var buf map[string]any
	if err := json.Unmarshal(stage.Evaluation, &buf); err == nil {
		if pretty, err := json.MarshalIndent(buf, "", "  "); err == nil {
			content = string(pretty)
		}
	}

	title := fmt.Sprintf("STAGE %d ATTEMPT %d EVALUATION", stage.StageNumber, stage.Attempt)
	p.printBox(title, content)
}
