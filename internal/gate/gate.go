package gate

import "fmt"

// DefaultPassingThreshold applies when a job does not configure its own
const DefaultPassingThreshold = 5.0

// Verdict is a gate decision for one stage attempt
type Verdict struct {
	Stage  int
	Passed bool
	// Status is the application status the verdict commits
	Status Status
	// StageStatus is the terminal state of the stage attempt row
	StageStatus StageStatus
}

// Passed reports whether a score clears the threshold
func Passed(score, threshold float64) bool {
	return score >= threshold
}

// Decide maps a completed stage attempt's score to its verdict.
// The identical rule serves the automatic path and HR overrides; an override
// supplies the literal pass/fail via DecideForced instead of a score.
func Decide(stage int, score, threshold float64) (Verdict, error) {
	if !ValidStage(stage) {
		return Verdict{}, fmt.Errorf("invalid stage number %d", stage)
	}
	if Passed(score, threshold) {
		return Verdict{Stage: stage, Passed: true, Status: PassedStatus(stage), StageStatus: StageCompleted}, nil
	}
	return Verdict{Stage: stage, Passed: false, Status: FailedStatus(stage), StageStatus: StageCompleted}, nil
}

// DecideFailure is the verdict for an evaluator error or skipped input:
// the attempt is marked failed (or skipped) and the application routes to
// the stage's failed status. Candidate failure, by contract, so the state
// machine always reaches a terminal user-visible status.
func DecideFailure(stage int, stageStatus StageStatus) (Verdict, error) {
	if !ValidStage(stage) {
		return Verdict{}, fmt.Errorf("invalid stage number %d", stage)
	}
	if stageStatus != StageFailed && stageStatus != StageSkipped {
		return Verdict{}, fmt.Errorf("failure verdict requires failed or skipped stage status, got %q", stageStatus)
	}
	return Verdict{Stage: stage, Passed: false, Status: FailedStatus(stage), StageStatus: stageStatus}, nil
}

// GuardViolationError rejects an HR action requested from a source status
// the transition table does not allow. Nothing is written when it is returned.
type GuardViolationError struct {
	Action  string
	Stage   int
	Current Status
}

func (e *GuardViolationError) Error() string {
	if e.Stage > 0 {
		return fmt.Sprintf("cannot %s stage %d from status %q", e.Action, e.Stage, e.Current)
	}
	return fmt.Sprintf("cannot %s from status %q", e.Action, e.Current)
}

// forcePassSources lists the statuses HR may force-pass a stage from:
// the stage's natural pre-state, or its own failure.
var forcePassSources = map[int][]Status{
	1: {StatusSubmitted, StatusStage1Failed},
	2: {StatusStage1Passed, StatusStage2Failed},
	3: {StatusStage2Passed, StatusStage3Failed},
}

// forceFailSources lists the statuses HR may force-fail a stage from:
// while the stage is pending, or from its entry state before it has run.
var forceFailSources = map[int][]Status{
	1: {StatusSubmitted, StatusStage1Pending},
	2: {StatusStage1Passed, StatusStage2Pending},
	3: {StatusStage2Passed, StatusStage3Pending},
}

// DecideForced validates an HR override against the guard table and, when
// allowed, returns the same verdict the automatic path would have produced.
func DecideForced(current Status, stage int, pass bool) (Verdict, error) {
	if !ValidStage(stage) {
		return Verdict{}, fmt.Errorf("invalid stage number %d", stage)
	}

	action := "force-fail"
	sources := forceFailSources[stage]
	if pass {
		action = "force-pass"
		sources = forcePassSources[stage]
	}

	allowed := false
	for _, s := range sources {
		if s == current {
			allowed = true
			break
		}
	}
	if !allowed {
		return Verdict{}, &GuardViolationError{Action: action, Stage: stage, Current: current}
	}

	if pass {
		return Verdict{Stage: stage, Passed: true, Status: PassedStatus(stage), StageStatus: StageCompleted}, nil
	}
	return Verdict{Stage: stage, Passed: false, Status: FailedStatus(stage), StageStatus: StageFailed}, nil
}

// DecideHire guards the explicit HR "mark hired" action. There is no
// automatic hire: passing stage 3 parks the application at stage3_passed.
func DecideHire(current Status) (Status, error) {
	if current != StatusStage3Passed {
		return "", &GuardViolationError{Action: "mark hired", Current: current}
	}
	return StatusHired, nil
}

// CanRerun reports whether HR may re-run the given stage. A re-run creates a
// brand-new attempt and re-enters the gate from scratch; it is allowed from
// any status the stage has already reached, but never from a terminal one.
func CanRerun(current Status, stage int) bool {
	if !ValidStage(stage) || current.IsTerminal() {
		return false
	}
	switch current {
	case PendingStatus(stage), PassedStatus(stage), FailedStatus(stage):
		return true
	}
	return false
}
