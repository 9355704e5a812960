package searchctl_test

import (
	"testing"
	"time"

	"github.com/kestrelchess/engine/pkg/board"
	"github.com/kestrelchess/engine/pkg/search/searchctl"
	"github.com/stretchr/testify/assert"
)

func TestTimeControlMoveTime(t *testing.T) {
	tc := searchctl.TimeControl{Mode: searchctl.ModeMoveTime, MoveTime: 3 * time.Second}
	soft, hard, ok := tc.Limits(board.White)
	assert.True(t, ok)
	assert.Equal(t, 2500*time.Millisecond, hard)
	assert.Equal(t, hard/2, soft)
}

func TestTimeControlMovesToGo(t *testing.T) {
	tc := searchctl.TimeControl{
		Mode:      searchctl.ModeMovesToGo,
		White:     60 * time.Second,
		MovesToGo: 19,
	}
	_, hard, ok := tc.Limits(board.White)
	assert.True(t, ok)
	assert.Equal(t, 3*time.Second, hard) // 60s / (19+1)
}

func TestTimeControlFixedDepthHasNoTimer(t *testing.T) {
	tc := searchctl.TimeControl{Mode: searchctl.ModeFixedDepth}
	_, _, ok := tc.Limits(board.White)
	assert.False(t, ok)
}

func TestTimeControlInfiniteHasNoTimer(t *testing.T) {
	tc := searchctl.TimeControl{Mode: searchctl.ModeInfinite}
	_, _, ok := tc.Limits(board.White)
	assert.False(t, ok)
}

func TestTimeControlNoneDefaultsToTwoSeconds(t *testing.T) {
	tc := searchctl.TimeControl{}
	_, hard, ok := tc.Limits(board.White)
	assert.True(t, ok)
	assert.Equal(t, 2*time.Second, hard)
}

func TestTimeControlSuddenDeathCapsAtRemainder(t *testing.T) {
	tc := searchctl.TimeControl{Mode: searchctl.ModeSuddenDeath, White: 500 * time.Millisecond}
	_, hard, ok := tc.Limits(board.White)
	assert.True(t, ok)
	assert.True(t, hard <= 0, "expected the remaining-minus-1s cap to floor the budget at zero, got %v", hard)
}

func TestTimeControlSuddenDeathRamp(t *testing.T) {
	tc := searchctl.TimeControl{Mode: searchctl.ModeSuddenDeath, White: 20 * time.Second, MovesPlayed: 10}
	_, hard, ok := tc.Limits(board.White)
	assert.True(t, ok)
	assert.Equal(t, 600*time.Millisecond, hard) // 20s * (0.02 + 10/1000)

	tc = searchctl.TimeControl{Mode: searchctl.ModeSuddenDeath, Black: 10 * time.Second, MovesPlayed: 20}
	_, hard, ok = tc.Limits(board.Black)
	assert.True(t, ok)
	assert.Equal(t, 400*time.Millisecond, hard) // 10s * (0.02 + 20/1000)
}

func TestTimeControlSuddenDeathFlattensPastMove40(t *testing.T) {
	tc := searchctl.TimeControl{Mode: searchctl.ModeSuddenDeath, White: 20 * time.Second, MovesPlayed: 60}
	_, hard, ok := tc.Limits(board.White)
	assert.True(t, ok)
	assert.Equal(t, time.Second, hard) // flat 5% regardless of how far past move 40
}
