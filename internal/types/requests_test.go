package types

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCreateApplicationRequestValidate(t *testing.T) {
	valid := &CreateApplicationRequest{
		JobID:       uuid.New(),
		CandidateID: uuid.New(),
		ResumeText:  "ten years of Go",
	}
	assert.NoError(t, valid.Validate())

	// Empty resume text is allowed at request level; the pipeline records
	// the stage as skipped and fails it without an inference call.
	noResume := &CreateApplicationRequest{JobID: uuid.New(), CandidateID: uuid.New()}
	assert.NoError(t, noResume.Validate())

	missingJob := &CreateApplicationRequest{CandidateID: uuid.New()}
	assert.Error(t, missingJob.Validate())
}

func TestSubmitAnswersRequestValidate(t *testing.T) {
	assert.NoError(t, (&SubmitAnswersRequest{Answers: []string{"a", "b"}}).Validate())
	assert.Error(t, (&SubmitAnswersRequest{}).Validate())
	assert.Error(t, (&SubmitAnswersRequest{Answers: []string{"a", ""}}).Validate())
}

func TestOverrideRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     OverrideRequest
		wantErr bool
	}{
		{"Pass stage 2", OverrideRequest{Action: "pass", Stage: 2}, false},
		{"Fail stage 3", OverrideRequest{Action: "fail", Stage: 3}, false},
		{"Unknown action", OverrideRequest{Action: "retry", Stage: 1}, true},
		{"Stage out of range", OverrideRequest{Action: "pass", Stage: 4}, true},
		{"Missing stage", OverrideRequest{Action: "pass"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCallEndedRequestValidate(t *testing.T) {
	req := &CallEndedRequest{AssistantID: "asst_123", CallID: "call_456", Transcript: "hello"}
	assert.NoError(t, req.Validate())

	ev := req.Event()
	assert.Equal(t, "asst_123", ev.AssistantID)
	assert.Equal(t, "call_456", ev.CallID)

	assert.Error(t, (&CallEndedRequest{CallID: "x"}).Validate())
}

func TestStageDetailTaggedUnion(t *testing.T) {
	details := []StageDetail{
		ResumeDetail{},
		AnswerSetDetail{},
		InterviewDetail{},
	}
	assert.Equal(t, StageResume, details[0].StageNumber())
	assert.Equal(t, StageAnswers, details[1].StageNumber())
	assert.Equal(t, StageInterview, details[2].StageNumber())
}
