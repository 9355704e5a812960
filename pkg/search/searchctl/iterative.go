package searchctl

import (
	"context"
	"sync"
	"time"

	"github.com/kestrelchess/engine/pkg/board"
	"github.com/kestrelchess/engine/pkg/search"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/util/contextx"
	"github.com/seekerror/stdlib/pkg/util/iox"
)

// Iterative is a single-worker search harness: it repeatedly calls Root at
// depth 1, 2, 3, ... reporting a PV after each completed depth, until
// halted, a depth or time limit is hit, or a forced mate is found within
// the depth just searched.
type Iterative struct {
	Root search.Search
	TT   search.TranspositionTable
}

func (i *Iterative) Launch(ctx context.Context, pos *board.Position, opt Options) (Handle, <-chan search.PV) {
	out := make(chan search.PV, 1)
	h := &handle{
		init: iox.NewAsyncCloser(),
		quit: iox.NewAsyncCloser(),
	}
	go h.process(ctx, i.Root, i.TT, pos, opt, out)

	return h, out
}

type handle struct {
	init, quit iox.AsyncCloser

	pv search.PV
	mu sync.Mutex
}

func (h *handle) process(ctx context.Context, root search.Search, tt search.TranspositionTable, pos *board.Position, opt Options, out chan search.PV) {
	defer h.init.Close()
	defer close(out)

	soft, useSoft := EnforceTimeControl(ctx, h, opt.TimeControl, pos.Turn())

	wctx, cancel := contextx.WithQuitCancel(ctx, h.quit.Closed())
	defer cancel()

	depth := 1
	for !h.quit.IsClosed() {
		start := time.Now()

		nodes, score, moves, err := root(wctx, pos, depth)
		if err != nil {
			if err == search.ErrHalted {
				return // Halt was called.
			}
			logw.Errorf(ctx, "search failed on %v at depth=%v: %v", pos, depth, err)
			return
		}

		pv := search.PV{
			Depth: depth,
			Nodes: nodes,
			Score: score,
			Moves: moves,
			Time:  time.Since(start),
		}

		logw.Debugf(ctx, "searched %v: %v (tt size=%v)", pos, pv, tt.Size())

		h.mu.Lock()
		h.pv = pv
		h.mu.Unlock()

		select {
		case <-out:
		default:
		}
		out <- pv

		h.init.Close()
		if limit, ok := opt.DepthLimit.V(); ok && uint(depth) == limit {
			return // halt: reached max depth
		}
		if isForcedMate(score) && int(search.Mate-absScore(score)) <= depth {
			return // halt: forced mate found within full-width search. Exact result.
		}
		if useSoft && soft < time.Since(start) {
			return // halt: exceeded soft time limit. Do not start new search.
		}
		depth++
	}
}

func (h *handle) Halt() search.PV {
	<-h.init.Closed()
	h.quit.Close()

	h.mu.Lock()
	defer h.mu.Unlock()

	return h.pv
}

func isForcedMate(s board.Score) bool {
	return absScore(s) > search.Mate-1000
}

func absScore(s board.Score) board.Score {
	if s < 0 {
		return -s
	}
	return s
}
