// Package searchctl drives the engine's Lazy-SMP parallel search: it owns
// time control policy, worker lifecycle, and the shared transposition table
// that lets concurrent searchers cross-pollinate.
package searchctl

import (
	"context"
	"fmt"
	"strings"

	"github.com/kestrelchess/engine/pkg/board"
	"github.com/kestrelchess/engine/pkg/search"
	"github.com/seekerror/stdlib/pkg/lang"
)

// Options hold dynamic search options. The user may change these on a
// particular search (set by the UCI "go" command).
type Options struct {
	// DepthLimit, if set, limits the search to the given ply depth.
	DepthLimit lang.Optional[uint]
	// TimeControl, if set, limits the search to the given time parameters.
	TimeControl lang.Optional[TimeControl]
	// Workers is the number of Lazy-SMP workers to run. Zero or negative
	// means the driver's default of 4.
	Workers int
}

func (o Options) String() string {
	var ret []string
	if v, ok := o.DepthLimit.V(); ok {
		ret = append(ret, fmt.Sprintf("depth=%v", v))
	}
	if v, ok := o.TimeControl.V(); ok {
		ret = append(ret, fmt.Sprintf("time=%v", v))
	}
	if o.Workers > 0 {
		ret = append(ret, fmt.Sprintf("workers=%v", o.Workers))
	}
	return fmt.Sprintf("[%v]", strings.Join(ret, ", "))
}

// Launcher is a Search generator.
type Launcher interface {
	// Launch a new search from the given position. It expects an exclusive
	// (forked) position and returns a PV channel for iteratively deeper
	// searches. If the search is exhausted, the channel is closed. The
	// search can be stopped at any time.
	Launch(ctx context.Context, pos *board.Position, opt Options) (Handle, <-chan search.PV)
}

// Handle is an interface for the engine to manage searches. The engine is
// expected to spin off searches with forked positions and close/abandon
// them when no longer needed. This design keeps stopping conditions and
// re-synchronization trivial.
type Handle interface {
	// Halt halts the search, if running. Idempotent.
	Halt() search.PV
}
