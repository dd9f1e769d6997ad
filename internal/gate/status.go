// Package gate implements the application status state machine. Every status
// transition, automatic or HR-forced, is decided here; evaluators and the
// override path never write a status they computed themselves.
package gate

import "fmt"

// Status is the lifecycle state of an application
type Status string

// Application statuses. An application is created as StatusSubmitted and is
// only ever mutated by a gate transition or an explicit HR action.
const (
	StatusSubmitted     Status = "submitted"
	StatusStage1Pending Status = "stage1_pending"
	StatusStage1Passed  Status = "stage1_passed"
	StatusStage1Failed  Status = "stage1_failed"
	StatusStage2Pending Status = "stage2_pending"
	StatusStage2Passed  Status = "stage2_passed"
	StatusStage2Failed  Status = "stage2_failed"
	StatusStage3Pending Status = "stage3_pending"
	StatusStage3Passed  Status = "stage3_passed"
	StatusStage3Failed  Status = "stage3_failed"
	StatusHired         Status = "hired"
	StatusRejected      Status = "rejected"
	StatusWithdrawn     Status = "withdrawn"
)

var allStatuses = map[Status]bool{
	StatusSubmitted:     true,
	StatusStage1Pending: true,
	StatusStage1Passed:  true,
	StatusStage1Failed:  true,
	StatusStage2Pending: true,
	StatusStage2Passed:  true,
	StatusStage2Failed:  true,
	StatusStage3Pending: true,
	StatusStage3Passed:  true,
	StatusStage3Failed:  true,
	StatusHired:         true,
	StatusRejected:      true,
	StatusWithdrawn:     true,
}

// ParseStatus validates a raw status string
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !allStatuses[status] {
		return "", fmt.Errorf("unknown application status %q", s)
	}
	return status, nil
}

// String returns the wire representation
func (s Status) String() string { return string(s) }

// IsTerminal reports whether no further automatic progress is possible.
// StatusStage3Passed is terminal-but-actionable: only an explicit HR
// "mark hired" moves past it.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusHired, StatusRejected, StatusWithdrawn:
		return true
	}
	return false
}

// StageStatus is the lifecycle state of one screening stage attempt
type StageStatus string

// Stage attempt statuses. The only legal transitions are
// in_progress -> completed, failed or skipped.
const (
	StagePending    StageStatus = "pending"
	StageInProgress StageStatus = "in_progress"
	StageCompleted  StageStatus = "completed"
	StageFailed     StageStatus = "failed"
	StageSkipped    StageStatus = "skipped"
)

// stageStatuses maps a stage number to its three application statuses
type stageStatuses struct {
	pending Status
	passed  Status
	failed  Status
}

var byStage = map[int]stageStatuses{
	1: {StatusStage1Pending, StatusStage1Passed, StatusStage1Failed},
	2: {StatusStage2Pending, StatusStage2Passed, StatusStage2Failed},
	3: {StatusStage3Pending, StatusStage3Passed, StatusStage3Failed},
}

// ValidStage reports whether n is a screening stage number
func ValidStage(n int) bool {
	_, ok := byStage[n]
	return ok
}

// PendingStatus returns the application status while stage n runs
func PendingStatus(stage int) Status { return byStage[stage].pending }

// PassedStatus returns the application status after stage n passes
func PassedStatus(stage int) Status { return byStage[stage].passed }

// FailedStatus returns the application status after stage n fails
func FailedStatus(stage int) Status { return byStage[stage].failed }

// EntryStatus returns the status an application naturally holds just before
// stage n begins: submitted for stage 1, the prior stage's pass otherwise.
func EntryStatus(stage int) Status {
	if stage == 1 {
		return StatusSubmitted
	}
	return byStage[stage-1].passed
}
