package gate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecide(t *testing.T) {
	tests := []struct {
		name       string
		stage      int
		score      float64
		threshold  float64
		wantStatus Status
		wantPassed bool
		wantError  bool
	}{
		{
			name:       "Stage 2 worked example passes at 7.1",
			stage:      2,
			score:      7.1,
			threshold:  5,
			wantStatus: StatusStage2Passed,
			wantPassed: true,
		},
		{
			name:       "Exactly at threshold passes",
			stage:      1,
			score:      5,
			threshold:  5,
			wantStatus: StatusStage1Passed,
			wantPassed: true,
		},
		{
			name:       "Below threshold fails",
			stage:      3,
			score:      4.99,
			threshold:  5,
			wantStatus: StatusStage3Failed,
			wantPassed: false,
		},
		{
			name:      "Invalid stage",
			stage:     4,
			score:     9,
			threshold: 5,
			wantError: true,
		},
		{
			name:      "Stage zero",
			stage:     0,
			score:     9,
			threshold: 5,
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Decide(tt.stage, tt.score, tt.threshold)
			if tt.wantError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, v.Status)
			assert.Equal(t, tt.wantPassed, v.Passed)
			assert.Equal(t, StageCompleted, v.StageStatus)
		})
	}
}

func TestDecideFailure(t *testing.T) {
	v, err := DecideFailure(3, StageFailed)
	require.NoError(t, err)
	assert.Equal(t, StatusStage3Failed, v.Status)
	assert.Equal(t, StageFailed, v.StageStatus)
	assert.False(t, v.Passed)

	v, err = DecideFailure(1, StageSkipped)
	require.NoError(t, err)
	assert.Equal(t, StatusStage1Failed, v.Status)
	assert.Equal(t, StageSkipped, v.StageStatus)

	_, err = DecideFailure(1, StageCompleted)
	assert.Error(t, err)

	_, err = DecideFailure(5, StageFailed)
	assert.Error(t, err)
}

func TestDecideForcedGuards(t *testing.T) {
	tests := []struct {
		name    string
		current Status
		stage   int
		pass    bool
		want    Status
		wantErr bool
	}{
		{"Force-pass stage 1 from submitted", StatusSubmitted, 1, true, StatusStage1Passed, false},
		{"Force-pass stage 1 after its failure", StatusStage1Failed, 1, true, StatusStage1Passed, false},
		{"Force-pass stage 2 from stage1_passed", StatusStage1Passed, 2, true, StatusStage2Passed, false},
		{"Force-pass stage 2 after its failure", StatusStage2Failed, 2, true, StatusStage2Passed, false},
		{"Force-pass stage 3 from stage2_passed", StatusStage2Passed, 3, true, StatusStage3Passed, false},
		{"Force-pass stage 2 from submitted rejected", StatusSubmitted, 2, true, "", true},
		{"Force-pass stage 3 from stage1_passed rejected", StatusStage1Passed, 3, true, "", true},
		{"Force-pass from hired rejected", StatusHired, 1, true, "", true},
		{"Force-fail stage 2 while pending", StatusStage2Pending, 2, false, StatusStage2Failed, false},
		{"Force-fail stage 2 from its entry state", StatusStage1Passed, 2, false, StatusStage2Failed, false},
		{"Force-fail stage 1 from submitted", StatusSubmitted, 1, false, StatusStage1Failed, false},
		{"Force-fail stage 3 from stage1_passed rejected", StatusStage1Passed, 3, false, "", true},
		{"Force-fail already-failed stage rejected", StatusStage2Failed, 2, false, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := DecideForced(tt.current, tt.stage, tt.pass)
			if tt.wantErr {
				require.Error(t, err)
				var gv *GuardViolationError
				assert.ErrorAs(t, err, &gv)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, v.Status)
		})
	}
}

func TestForcedMatchesAutomaticOutcome(t *testing.T) {
	// The gate is deterministic: the same stage and verdict produce the same
	// application status whether computed from a score or forced by HR.
	auto, err := Decide(2, 7.1, 5)
	require.NoError(t, err)

	forced, err := DecideForced(StatusStage1Passed, 2, true)
	require.NoError(t, err)

	assert.Equal(t, auto.Status, forced.Status)
	assert.Equal(t, auto.Passed, forced.Passed)
}

func TestDecideHire(t *testing.T) {
	status, err := DecideHire(StatusStage3Passed)
	require.NoError(t, err)
	assert.Equal(t, StatusHired, status)

	for _, from := range []Status{
		StatusSubmitted, StatusStage1Passed, StatusStage2Passed,
		StatusStage3Failed, StatusHired, StatusRejected, StatusWithdrawn,
	} {
		_, err := DecideHire(from)
		assert.Error(t, err, "hire from %s should be rejected", from)
	}
}

func TestCanRerun(t *testing.T) {
	assert.True(t, CanRerun(StatusStage2Failed, 2))
	assert.True(t, CanRerun(StatusStage2Passed, 2))
	assert.True(t, CanRerun(StatusStage2Pending, 2))
	assert.False(t, CanRerun(StatusStage1Passed, 2), "stage 2 never started")
	assert.False(t, CanRerun(StatusHired, 3))
	assert.False(t, CanRerun(StatusWithdrawn, 1))
	assert.False(t, CanRerun(StatusStage1Failed, 4))
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus("stage2_passed")
	require.NoError(t, err)
	assert.Equal(t, StatusStage2Passed, s)

	_, err = ParseStatus("stage4_passed")
	assert.Error(t, err)
}

func TestStageStatusHelpers(t *testing.T) {
	assert.Equal(t, StatusSubmitted, EntryStatus(1))
	assert.Equal(t, StatusStage1Passed, EntryStatus(2))
	assert.Equal(t, StatusStage2Passed, EntryStatus(3))
	assert.Equal(t, StatusStage3Pending, PendingStatus(3))
	assert.True(t, StatusHired.IsTerminal())
	assert.False(t, StatusStage3Passed.IsTerminal(), "terminal-but-actionable")
}
