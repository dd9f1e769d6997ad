package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateResumeEvaluation(t *testing.T) {
	tests := []struct {
		name      string
		jsonText  string
		wantError bool
	}{
		{
			name: "Valid response",
			jsonText: `{
				"skills_score": 8,
				"experience_score": 6,
				"education_score": 5,
				"rationale": "Solid overlap with the stack.",
				"skills_match": {"required": ["Go"], "found": ["Go"], "missing": []},
				"experience_match": {"required": "5 years backend", "found": "6 years backend", "match": true}
			}`,
		},
		{
			name: "Missing rationale",
			jsonText: `{
				"skills_score": 8,
				"experience_score": 6,
				"education_score": 5,
				"skills_match": {"required": [], "found": [], "missing": []},
				"experience_match": {"required": "", "found": "", "match": false}
			}`,
			wantError: true,
		},
		{
			name: "Non-integer score",
			jsonText: `{
				"skills_score": "eight",
				"experience_score": 6,
				"education_score": 5,
				"rationale": "x",
				"skills_match": {"required": [], "found": [], "missing": []},
				"experience_match": {"required": "", "found": "", "match": false}
			}`,
			wantError: true,
		},
		{
			name:      "Empty object",
			jsonText:  `{}`,
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(ResumeEvaluation, tt.jsonText)
			if tt.wantError {
				require.Error(t, err)
				var ve *ValidationError
				assert.ErrorAs(t, err, &ve)
				assert.NotEmpty(t, ve.Errors)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateAnswerEvaluations(t *testing.T) {
	valid := `{"evaluations": [{"score": 7, "feedback": "clear"}, {"score": 4, "feedback": "thin"}]}`
	assert.NoError(t, Validate(AnswerEvaluations, valid))

	empty := `{"evaluations": []}`
	assert.Error(t, Validate(AnswerEvaluations, empty))

	missingFeedback := `{"evaluations": [{"score": 7}]}`
	assert.Error(t, Validate(AnswerEvaluations, missingFeedback))
}

func TestValidateAnswerSetEvaluation(t *testing.T) {
	valid := `{"relevance_score": 8, "clarity_score": 6, "role_fit_score": 7, "rationale": "good"}`
	assert.NoError(t, Validate(AnswerSetEvaluation, valid))

	assert.Error(t, Validate(AnswerSetEvaluation, `{"relevance_score": 8}`))
}

func TestValidateInterviewEvaluation(t *testing.T) {
	valid := `{
		"communication_score": 7,
		"problem_solving_score": 6,
		"role_understanding_score": 8,
		"rationale": "engaged throughout",
		"strengths": ["structured answers"],
		"weaknesses": []
	}`
	assert.NoError(t, Validate(InterviewEvaluation, valid))

	assert.Error(t, Validate(InterviewEvaluation, `{"communication_score": 7}`))
}

func TestValidateUnknownSchema(t *testing.T) {
	err := Validate("does_not_exist", `{}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown schema")
}

func TestValidateMalformedJSON(t *testing.T) {
	err := Validate(ResumeEvaluation, `{not json`)
	assert.Error(t, err)
}
