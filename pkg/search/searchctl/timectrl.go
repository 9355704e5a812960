package searchctl

import (
	"context"
	"fmt"
	"time"

	"github.com/kestrelchess/engine/pkg/board"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
)

// Mode selects which UCI "go" time control policy governs a search.
type Mode int

const (
	// ModeNone means no time information was given at all: a 2s default budget.
	ModeNone Mode = iota
	// ModeMoveTime is UCI "movetime": a fixed per-move allotment.
	ModeMoveTime
	// ModeMovesToGo is UCI "wtime/btime ... movestogo": a known number of
	// moves remain before the next time control.
	ModeMovesToGo
	// ModeSuddenDeath is UCI "wtime/btime" with no movestogo: the entire
	// remaining clock must last the rest of the game.
	ModeSuddenDeath
	// ModeFixedDepth is UCI "depth": no time budget, terminate on reaching
	// the target depth.
	ModeFixedDepth
	// ModeInfinite is UCI "infinite": no timer at all.
	ModeInfinite
)

// TimeControl represents time control information carried by a UCI "go"
// command.
type TimeControl struct {
	Mode Mode

	MoveTime time.Duration // ModeMoveTime

	White, Black       time.Duration // remaining clock, ModeMovesToGo/ModeSuddenDeath
	WhiteInc, BlackInc time.Duration // increment per move, ModeMovesToGo/ModeSuddenDeath
	MovesToGo          int           // ModeMovesToGo
	MovesPlayed        int           // ModeSuddenDeath: full moves played so far this game
}

func (t TimeControl) remainingAndInc(c board.Color) (time.Duration, time.Duration) {
	if c == board.Black {
		return t.Black, t.BlackInc
	}
	return t.White, t.WhiteInc
}

// budget computes the single thinking-time allotment for color c, per mode:
//
//	fixed time per move (movetime)   given value minus 500ms safety margin
//	moves-to-go (movestogo N)        (remaining / (N+1)) + increment, capped at remaining-1s
//	sudden death / hourglass         (2% + 0.1%/move, moves<40) or flat 5% of remaining + increment, capped
//	fixed depth                      0 -- terminated when the target depth completes
//	none                             2s default
//	unbounded (infinite)             no timer
func (t TimeControl) budget(c board.Color) (time.Duration, bool) {
	switch t.Mode {
	case ModeMoveTime:
		b := t.MoveTime - 500*time.Millisecond
		if b < 0 {
			b = 0
		}
		return b, true

	case ModeMovesToGo:
		remaining, inc := t.remainingAndInc(c)
		n := time.Duration(t.MovesToGo)
		b := remaining/(n+1) + inc
		if cap := remaining - time.Second; b > cap {
			b = cap
		}
		if b < 0 {
			b = 0
		}
		return b, true

	case ModeSuddenDeath:
		remaining, inc := t.remainingAndInc(c)
		// Before move 40, ramp from 2% to ~6% as the game progresses; past
		// move 40, settle to a flat 5% regardless of how long the game runs.
		var fraction float64
		if played := t.MovesPlayed; played < 40 {
			fraction = 0.02 + float64(played)/1000
		} else {
			fraction = 1.0 / 20
		}
		b := time.Duration(float64(remaining)*fraction) + inc
		if cap := remaining - time.Second; b > cap {
			b = cap
		}
		if b < 0 {
			b = 0
		}
		return b, true

	case ModeFixedDepth, ModeInfinite:
		return 0, false

	default: // ModeNone
		return 2 * time.Second, true
	}
}

// Limits returns a soft and hard limit for making a move with the given
// color. After the soft limit, no new iteration should be started; at the
// hard limit the search is aborted outright. ok is false when there is no
// time-based stop at all (fixed depth, infinite).
func (t TimeControl) Limits(c board.Color) (soft, hard time.Duration, ok bool) {
	b, ok := t.budget(c)
	if !ok {
		return 0, 0, false
	}
	return b / 2, b, true
}

func (t TimeControl) String() string {
	switch t.Mode {
	case ModeMoveTime:
		return fmt.Sprintf("movetime=%v", t.MoveTime)
	case ModeMovesToGo:
		return fmt.Sprintf("%.1f<>%.1f[movestogo=%v]", t.White.Seconds(), t.Black.Seconds(), t.MovesToGo)
	case ModeSuddenDeath:
		return fmt.Sprintf("%.1f<>%.1f[suddendeath]", t.White.Seconds(), t.Black.Seconds())
	case ModeFixedDepth:
		return "fixed-depth"
	case ModeInfinite:
		return "infinite"
	default:
		return "none"
	}
}

// EnforceTimeControl enforces the time control limits, if any, by scheduling
// a hard halt. Returns the soft limit, and whether any time control applies.
func EnforceTimeControl(ctx context.Context, h Handle, tc lang.Optional[TimeControl], turn board.Color) (time.Duration, bool) {
	c, ok := tc.V()
	if !ok {
		return 0, false
	}

	soft, hard, ok := c.Limits(turn)
	if !ok {
		return 0, false
	}

	time.AfterFunc(hard, func() {
		h.Halt()
	})

	logw.Debugf(ctx, "time control limits for %v: [%v; %v]", c, soft, hard)
	return soft, true
}
