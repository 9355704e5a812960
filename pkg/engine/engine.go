// Package engine ties together the board, evaluator and Lazy-SMP search
// driver into the single stateful object a protocol driver (UCI, console)
// talks to.
package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/kestrelchess/engine/pkg/board"
	"github.com/kestrelchess/engine/pkg/board/fen"
	"github.com/kestrelchess/engine/pkg/eval"
	"github.com/kestrelchess/engine/pkg/search"
	"github.com/kestrelchess/engine/pkg/search/searchctl"
	"github.com/seekerror/build"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
)

var version = build.NewVersion(0, 1, 0)

// entriesPerHashMB is a rough sizing constant translating a UCI "Hash"
// option, given in MB, into a transposition table entry capacity.
const entriesPerHashMB = 1 << 16

// Options are search creation options, changeable at runtime via the UCI
// "setoption" command or the console driver.
type Options struct {
	// Depth is the search depth limit. Zero means no limit, deferring
	// entirely to time control. Overridden by per-search options if given.
	Depth uint
	// Hash is the transposition table size in MB. Zero disables the table.
	Hash uint
	// Noise adds centipawn randomness to leaf evaluations, to avoid playing
	// a deterministic game against itself.
	Noise uint
	// Workers is the number of Lazy-SMP search workers.
	Workers int
}

func (o Options) String() string {
	return fmt.Sprintf("{depth=%v, hash=%vMB, noise=%vcp, workers=%v}", o.Depth, o.Hash, o.Noise, o.Workers)
}

// Engine encapsulates game-playing logic: the current board, transposition
// table and the Lazy-SMP driver used to analyze it.
type Engine struct {
	name, author string

	zt   *board.ZobristTable
	seed int64
	opts Options

	b      *board.Board
	tt     search.TranspositionTable
	active searchctl.Handle
	mu     sync.Mutex
}

// Option is an engine creation option.
type Option func(*Engine)

// WithOptions sets the engine's initial runtime options.
func WithOptions(opts Options) Option {
	return func(e *Engine) {
		e.opts = opts
	}
}

// WithZobrist configures the Zobrist table seed instead of the default of
// zero. Distinct engine instances must share a seed to produce comparable
// hashes (e.g. across a distributed transposition table), but need not for
// standalone play.
func WithZobrist(seed int64) Option {
	return func(e *Engine) {
		e.seed = seed
	}
}

func New(ctx context.Context, name, author string, opts ...Option) *Engine {
	e := &Engine{name: name, author: author}
	for _, fn := range opts {
		fn(e)
	}
	e.zt = board.NewZobristTable(e.seed)

	_ = e.Reset(ctx, fen.Initial)

	logw.Infof(ctx, "initialized engine: %v, options=%v", e.Name(), e.opts)
	return e
}

// Name returns the engine name and version.
func (e *Engine) Name() string {
	return fmt.Sprintf("%v %v", e.name, version)
}

// Author returns the author.
func (e *Engine) Author() string {
	return e.author
}

func (e *Engine) Options() Options {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.opts
}

func (e *Engine) SetDepth(depth uint) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.opts.Depth = depth
}

func (e *Engine) SetHash(sizeMB uint) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.opts.Hash = sizeMB
	e.tt = e.newTranspositionTable(context.Background())
}

func (e *Engine) SetNoise(centipawns uint) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.opts.Noise = centipawns
}

func (e *Engine) SetWorkers(n int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.opts.Workers = n
}

// Board returns the current board. Callers that need an exclusive working
// copy (e.g. to launch a search) should clone its position.
func (e *Engine) Board() *board.Board {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.b
}

// Position returns the current position in FEN format.
func (e *Engine) Position() string {
	e.mu.Lock()
	defer e.mu.Unlock()

	return fen.Encode(e.b.Position())
}

// Reset resets the engine to the position described by a FEN string.
func (e *Engine) Reset(ctx context.Context, position string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	logw.Infof(ctx, "reset %v, opts=%v", position, e.opts)

	_, _ = e.haltSearchIfActive(ctx)

	pos, err := fen.Decode(e.zt, position)
	if err != nil {
		return err
	}
	e.b = board.NewBoard(pos)
	e.tt = e.newTranspositionTable(ctx)

	logw.Infof(ctx, "new board: %v", e.b.Position())
	return nil
}

func (e *Engine) newTranspositionTable(ctx context.Context) search.TranspositionTable {
	if e.opts.Hash == 0 {
		return search.NoTranspositionTable{}
	}
	return search.NewTranspositionTable(ctx, int(e.opts.Hash)*entriesPerHashMB)
}

// Move plays move, typically an opponent move relayed by the protocol driver.
func (e *Engine) Move(ctx context.Context, move string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	logw.Infof(ctx, "move %v", move)

	candidate, err := board.ParseMove(move)
	if err != nil {
		return fmt.Errorf("invalid move: %w", err)
	}

	_, _ = e.haltSearchIfActive(ctx)

	if !e.b.PushMove(candidate) {
		return fmt.Errorf("illegal move: %v", candidate)
	}

	logw.Infof(ctx, "move %v: %v", candidate, e.b.Position())
	return nil
}

// TakeBack undoes the latest move.
func (e *Engine) TakeBack(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	_, _ = e.haltSearchIfActive(ctx)

	m, ok := e.b.PopMove()
	if !ok {
		return fmt.Errorf("no move to take back")
	}

	logw.Infof(ctx, "takeback %v", m)
	return nil
}

// Analyze launches a Lazy-SMP search on the current position.
func (e *Engine) Analyze(ctx context.Context, opt searchctl.Options) (<-chan search.PV, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := opt.DepthLimit.V(); !ok && e.opts.Depth > 0 {
		opt.DepthLimit = lang.Some(e.opts.Depth)
	}
	if opt.Workers <= 0 {
		opt.Workers = e.opts.Workers
	}

	logw.Infof(ctx, "analyze %v, opt=%v", e.b.Position(), opt)

	if e.active != nil {
		return nil, fmt.Errorf("search already active")
	}

	evaluator := eval.Evaluator(eval.Tapered{})
	if e.opts.Noise > 0 {
		evaluator = eval.NewRandom(evaluator, int(e.opts.Noise), e.seed)
	}

	driver := &searchctl.Driver{TT: e.tt, Eval: evaluator}
	handle, out := driver.Launch(ctx, e.b.Position().Clone(), opt)
	e.active = handle
	return out, nil
}

// Halt halts the active search and returns the principal variation, if any.
func (e *Engine) Halt(ctx context.Context) (search.PV, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	pv, ok := e.haltSearchIfActive(ctx)
	if !ok {
		return search.PV{}, fmt.Errorf("no active search")
	}
	return pv, nil
}

func (e *Engine) haltSearchIfActive(ctx context.Context) (search.PV, bool) {
	if e.active != nil {
		pv := e.active.Halt()
		logw.Infof(ctx, "search on %v halted: %v", e.b.Position(), pv)

		e.active = nil
		return pv, true
	}
	return search.PV{}, false
}
