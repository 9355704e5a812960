package searchctl

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/kestrelchess/engine/pkg/board"
	"github.com/kestrelchess/engine/pkg/eval"
	"github.com/kestrelchess/engine/pkg/search"
	"github.com/seekerror/logw"
	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"
)

// defaultWorkers is used when Options.Workers is unset.
const defaultWorkers = 4

// Driver is a Lazy-SMP launcher: N worker goroutines search the same root
// position concurrently, sharing a transposition table and a PV map but
// never aliasing each other's position state. Workers pull depths off a
// shared descending queue {max, max-1, ..., 2}; one worker is additionally
// pinned to the "PV search" (current PV length + 1) so the principal
// variation is always being deepened by someone.
type Driver struct {
	TT   search.TranspositionTable
	Eval eval.Evaluator
}

func (d *Driver) Launch(ctx context.Context, pos *board.Position, opt Options) (Handle, <-chan search.PV) {
	workers := opt.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}

	ctx, cancel := context.WithCancel(ctx)
	out := make(chan search.PV, 1)
	h := &smpHandle{
		stop:         atomic.NewBool(false),
		stopNewDepth: atomic.NewBool(false),
		cancel:       cancel,
	}
	go d.run(ctx, pos, opt, workers, h, out)

	return h, out
}

type smpHandle struct {
	stop, stopNewDepth *atomic.Bool
	cancel             context.CancelFunc // aborts in-flight searches

	mu   sync.Mutex
	best search.PV
	init sync.Once
	done chan struct{}
}

func (h *smpHandle) Halt() search.PV {
	h.stop.Store(true)
	h.stopNewDepth.Store(true)
	h.cancel()
	if h.done != nil {
		<-h.done
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	return h.best
}

func (d *Driver) run(ctx context.Context, root *board.Position, opt Options, workers int, h *smpHandle, out chan search.PV) {
	h.mu.Lock()
	h.done = make(chan struct{})
	h.mu.Unlock()
	defer close(h.done)
	defer close(out)
	defer h.cancel()

	maxDepth := 64
	if v, ok := opt.DepthLimit.V(); ok {
		maxDepth = int(v)
	}

	soft, hard, hasTimer := timeControlOf(opt, root.Turn())
	if hasTimer {
		time.AfterFunc(soft, func() { h.stopNewDepth.Store(true) })
		time.AfterFunc(hard, func() { h.stop.Store(true); h.cancel() })
	}

	queue := newDepthQueue(maxDepth)
	progress := newProgress()
	pvMap := search.NewPVMap() // shared hash -> move cache, per spec.md's "PV map".

	var mu sync.Mutex
	var results []search.PV

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < workers; i++ {
		pvWorker := i == 0 // worker 0 is pinned to the PV search.
		g.Go(func() error {
			pos := root.Clone()
			ab := search.NewAlphaBeta(d.TT, d.Eval, pvMap)

			for !h.stop.Load() {
				if gctx.Err() != nil {
					return nil
				}

				var depth int
				var ok bool
				if pvWorker {
					depth = progress.depth() + 1
					ok = depth <= maxDepth
				} else {
					depth, ok = queue.pop()
				}
				if !ok {
					return nil
				}
				if h.stopNewDepth.Load() {
					return nil
				}

				start := time.Now()
				nodes, score, moves, err := ab(gctx, pos, depth)
				if err != nil {
					continue
				}

				pv := search.PV{Depth: depth, Nodes: nodes, Score: score, Moves: moves, Time: time.Since(start)}
				progress.publish(depth, pv)

				mu.Lock()
				results = append(results, pv)
				mu.Unlock()

				select {
				case out <- pv:
				default:
				}
			}
			return nil
		})
	}
	_ = g.Wait()

	best := deepest(results)
	h.mu.Lock()
	h.best = best
	h.mu.Unlock()

	logw.Debugf(ctx, "lazy-smp search of %v complete: %v", root, best)
}

// deepest picks the completed result with the greatest depth; ties broken by
// most nodes searched (a proxy for "most thorough").
func deepest(results []search.PV) search.PV {
	if len(results) == 0 {
		return search.PV{}
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].Depth != results[j].Depth {
			return results[i].Depth > results[j].Depth
		}
		return results[i].Nodes > results[j].Nodes
	})
	return results[0]
}

// depthQueue hands out a descending sequence of depths {max, max-1, ..., 2}
// to free workers.
type depthQueue struct {
	mu   sync.Mutex
	next int
}

func newDepthQueue(maxDepth int) *depthQueue {
	return &depthQueue{next: maxDepth}
}

func (q *depthQueue) pop() (int, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.next < 2 {
		return 0, false
	}
	d := q.next
	q.next--
	return d, true
}

// progress tracks the deepest PV published so far, so the pinned PV worker
// always deepens from current-PV-length + 1. This is distinct from
// search.PVMap: progress is worker-coordination bookkeeping local to one
// Driver.run invocation, not the shared hash->move cache used for ordering.
type progress struct {
	mu sync.Mutex
	pv search.PV
}

func newProgress() *progress {
	return &progress{}
}

func (m *progress) publish(depth int, pv search.PV) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if depth > m.pv.Depth {
		m.pv = pv
	}
}

func (m *progress) depth() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pv.Depth
}

func timeControlOf(opt Options, turn board.Color) (soft, hard time.Duration, ok bool) {
	tc, present := opt.TimeControl.V()
	if !present {
		return 0, 0, false
	}
	return tc.Limits(turn)
}
