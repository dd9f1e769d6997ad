package types

// Stage numbers for the three screening gates
const (
	StageResume    = 1
	StageAnswers   = 2
	StageInterview = 3
)

// StageDetail is the tagged union over the three per-stage detail shapes.
// Keying the shape by stage number keeps each stage's invariants at the type
// level instead of one polymorphic blob.
type StageDetail interface {
	// StageNumber identifies which stage produced this detail
	StageNumber() int
}

// ResumeDetail is the stage 1 detail record
type ResumeDetail struct {
	Evaluation ResumeEvaluation `json:"evaluation"`
}

// StageNumber implements StageDetail
func (ResumeDetail) StageNumber() int { return StageResume }

// AnswerSetDetail is the stage 2 detail record: one entry per question,
// strictly in question order
type AnswerSetDetail struct {
	Answers    []QuestionAnswer    `json:"answers"`
	Evaluation AnswerSetEvaluation `json:"evaluation"`
}

// StageNumber implements StageDetail
func (AnswerSetDetail) StageNumber() int { return StageAnswers }

// InterviewDetail is the stage 3 detail record. Unlike stages 1 and 2 it is
// created when the call is configured and updated in place when the call ends.
type InterviewDetail struct {
	AssistantID     string              `json:"assistant_id"`
	CallID          string              `json:"call_id,omitempty"`
	Transcript      string              `json:"transcript,omitempty"`
	RecordingURL    string              `json:"recording_url,omitempty"`
	DurationSeconds float64             `json:"duration_seconds,omitempty"`
	Evaluation      InterviewEvaluation `json:"evaluation"`
}

// StageNumber implements StageDetail
func (InterviewDetail) StageNumber() int { return StageInterview }
