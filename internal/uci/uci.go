// Package uci contains a driver for using the engine under the UCI protocol.
//
// See: http://wbec-ridderkerk.nl/html/UCIProtocol.html
// See: https://en.wikipedia.org/wiki/Universal_Chess_Interface
package uci

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/kestrelchess/engine/internal/book"
	"github.com/kestrelchess/engine/internal/logging"
	"github.com/kestrelchess/engine/pkg/board"
	"github.com/kestrelchess/engine/pkg/board/fen"
	"github.com/kestrelchess/engine/pkg/engine"
	"github.com/kestrelchess/engine/pkg/search"
	"github.com/kestrelchess/engine/pkg/search/searchctl"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
	"go.uber.org/atomic"
)

const ProtocolName = "uci"

// Option is a UCI driver option.
type Option func(*options)

type options struct {
	useBook bool
	book    book.Book
	rand    *rand.Rand
}

// UseBook instructs the driver to use the given opening book by default.
func UseBook(b book.Book, seed int64) Option {
	return func(opt *options) {
		opt.useBook = true
		opt.book = b
		opt.rand = rand.New(rand.NewSource(seed))
	}
}

// Driver implements a UCI driver for an engine. It is activated once "uci"
// is sent on stdin.
type Driver struct {
	e   *engine.Engine
	opt options

	out chan<- string

	active       atomic.Bool    // true while waiting on the engine for a move
	ponder       chan search.PV // intermediate search information
	lastPosition string         // last "position" line (empty if none yet)

	quit   chan struct{}
	closed atomic.Bool
}

func NewDriver(ctx context.Context, e *engine.Engine, in <-chan string, opts ...Option) (*Driver, <-chan string) {
	var opt options
	for _, fn := range opts {
		fn(&opt)
	}

	out := make(chan string, 100)
	d := &Driver{
		e:      e,
		opt:    opt,
		out:    out,
		ponder: make(chan search.PV, 400),
		quit:   make(chan struct{}),
	}
	go d.process(ctx, in)

	return d, out
}

func (d *Driver) Close() {
	if d.closed.CompareAndSwap(false, true) {
		close(d.quit)
	}
}

func (d *Driver) Closed() <-chan struct{} {
	return d.quit
}

func (d *Driver) process(ctx context.Context, in <-chan string) {
	defer d.Close()
	defer close(d.out)

	logw.Infof(ctx, "UCI protocol initialized")

	d.out <- fmt.Sprintf("id name %v", d.e.Name())
	d.out <- fmt.Sprintf("id author %v", d.e.Author())

	d.out <- "option name Hash type spin default 0 min 0 max 4096"
	d.out <- "option name Threads type spin default 1 min 1 max 64"
	if d.opt.book != nil {
		d.out <- fmt.Sprintf("option name OwnBook type check default %v", d.opt.useBook)
	}

	d.out <- "uciok"

	for {
		select {
		case line, ok := <-in:
			if !ok {
				logw.Infof(ctx, "Input stream broken. Exiting")
				return
			}

			parts := strings.Split(strings.TrimSpace(line), " ")
			if len(parts) == 0 {
				break
			}

			cmd := parts[0]
			args := parts[1:]

			switch strings.ToLower(cmd) {
			case "isready":
				d.out <- "readyok"

			case "debug":
				// debug [on|off]: raises protocol-traffic logging to Info.
				if len(args) > 0 {
					logging.SetDebug(strings.EqualFold(args[0], "on"))
				}

			case "setoption":
				// setoption name <id> [value <x>]
				var name, value string
				if len(args) > 1 {
					name = args[1]
				}
				if len(args) > 3 {
					value = args[3]
				}

				switch name {
				case "OwnBook":
					d.opt.useBook, _ = strconv.ParseBool(value)
				case "Hash":
					if n, err := strconv.Atoi(value); err == nil {
						d.e.SetHash(uint(n))
					}
				case "Threads":
					if n, err := strconv.Atoi(value); err == nil {
						d.e.SetWorkers(n)
					}
				}

			case "register":
				// Not a registered/licensed engine; nothing to do.

			case "ucinewgame":
				d.ensureInactive(ctx)
				d.lastPosition = ""

			case "position":
				// position [fen <fenstring> | startpos] moves <move1> ... <movei>

				d.ensureInactive(ctx)

				if d.lastPosition != "" && strings.HasPrefix(line, d.lastPosition) {
					// Continuation of the current game: replay only the new moves.

					moves := strings.TrimSpace(strings.TrimPrefix(line, d.lastPosition))
					for _, arg := range strings.Split(moves, " ") {
						if arg == "moves" || arg == "" {
							continue
						}
						if err := d.e.Move(ctx, arg); err != nil {
							logw.Errorf(ctx, "invalid position move '%v': %v: %v", arg, line, err)
							return
						}
					}
					d.lastPosition = line
					break
				}

				position := fen.Initial
				if len(args) >= 7 && args[0] == "fen" {
					position = strings.Join(args[1:7], " ")
				}

				if err := d.e.Reset(ctx, position); err != nil {
					logw.Errorf(ctx, "invalid position: %v", line)
					return
				}

				move := false
				for _, arg := range args {
					if arg == "moves" {
						move = true
						continue
					}
					if !move {
						continue
					}
					if err := d.e.Move(ctx, arg); err != nil {
						logw.Errorf(ctx, "invalid position move '%v': %v: %v", arg, line, err)
						return
					}
				}
				d.lastPosition = line

			case "go":
				d.ensureInactive(ctx)
				d.handleGo(ctx, args)

			case "stop":
				pv, err := d.e.Halt(ctx)
				if err == nil {
					d.searchCompleted(ctx, pv)
				}

			case "ponderhit":
				// Pondering is not implemented: the engine never starts a
				// search before being asked to.

			case "quit":
				return

			default:
				logw.Warningf(ctx, "unknown command '%v': %v", cmd, args)
			}

		case pv := <-d.ponder:
			if d.active.Load() {
				d.out <- printPV(pv)
			}

		case <-d.quit:
			d.ensureInactive(ctx)
			logw.Infof(ctx, "Driver closed")
			return
		}
	}
}

func (d *Driver) handleGo(ctx context.Context, args []string) {
	var opt searchctl.Options
	var tc searchctl.TimeControl
	hasWhite, hasBlack, hasMovesToGo, hasMoveTime, hasDepth, infinite := false, false, false, false, false, false

	for i := 0; i < len(args); i++ {
		cmd := args[i]
		switch cmd {
		case "wtime", "btime", "winc", "binc", "movestogo", "depth", "movetime":
			i++
			if i == len(args) {
				logw.Errorf(ctx, "no argument for %v", cmd)
				return
			}
			n, err := strconv.Atoi(args[i])
			if err != nil {
				logw.Errorf(ctx, "invalid argument for %v: %v", cmd, err)
				return
			}

			switch cmd {
			case "depth":
				opt.DepthLimit = lang.Some(uint(n))
				hasDepth = true
			case "wtime":
				tc.White = time.Millisecond * time.Duration(n)
				hasWhite = true
			case "btime":
				tc.Black = time.Millisecond * time.Duration(n)
				hasBlack = true
			case "winc":
				tc.WhiteInc = time.Millisecond * time.Duration(n)
			case "binc":
				tc.BlackInc = time.Millisecond * time.Duration(n)
			case "movestogo":
				tc.MovesToGo = n
				hasMovesToGo = true
			case "movetime":
				tc.MoveTime = time.Millisecond * time.Duration(n)
				hasMoveTime = true
			}

		case "infinite":
			infinite = true

		default:
			// searchmoves, ponder, nodes, mate: not modeled.
		}
	}

	switch {
	case infinite:
		tc.Mode = searchctl.ModeInfinite
	case hasMoveTime:
		tc.Mode = searchctl.ModeMoveTime
	case hasMovesToGo:
		tc.Mode = searchctl.ModeMovesToGo
	case hasWhite || hasBlack:
		tc.Mode = searchctl.ModeSuddenDeath
		tc.MovesPlayed = d.e.Board().Position().FullMove()
	case hasDepth:
		tc.Mode = searchctl.ModeFixedDepth
	default:
		tc.Mode = searchctl.ModeNone
	}
	opt.TimeControl = lang.Some(tc)

	if d.opt.useBook && d.opt.book != nil {
		moves, err := d.opt.book.Find(ctx, d.e.Position())
		if err != nil {
			logw.Errorf(ctx, "book lookup failed for %v: %v", d.e.Position(), err)
			return
		}
		if len(moves) > 0 {
			winner, err := board.ParseMove(moves[d.opt.rand.Intn(len(moves))])
			if err != nil {
				logw.Errorf(ctx, "invalid book move: %v", err)
				return
			}
			pv := search.PV{Moves: []board.Move{winner}}

			d.active.Store(true)
			d.searchCompleted(ctx, pv)
			return
		} // else: no book move, fall through to search.
	}

	out, err := d.e.Analyze(ctx, opt)
	if err != nil {
		logw.Errorf(ctx, "analyze failed: %v", err)
		return
	}
	d.active.Store(true)

	go func() {
		var last search.PV
		for pv := range out {
			last = pv
			d.ponder <- pv
		}
		if !infinite {
			d.searchCompleted(ctx, last)
		}
	}()
}

func (d *Driver) ensureInactive(ctx context.Context) {
	d.active.Store(false)
	_, _ = d.e.Halt(ctx)
}

func (d *Driver) searchCompleted(ctx context.Context, pv search.PV) {
	if d.active.CompareAndSwap(true, false) {
		if len(pv.Moves) > 0 {
			d.out <- printPV(pv)
			d.out <- fmt.Sprintf("bestmove %v", pv.Moves[0])
		} else {
			// No PV: position is checkmate or stalemate.
			d.out <- "bestmove 0000"
		}
	} // else: stale or duplicate result
}

func printPV(pv search.PV) string {
	// "info depth 2 score cp 214 nodes 2124 time 1242 nps 1710 pv e2e4 e7e5 g1f3"

	parts := []string{"info"}
	parts = append(parts, fmt.Sprintf("depth %v", pv.Depth))

	abs := pv.Score
	if abs < 0 {
		abs = -abs
	}
	if abs > search.Mate-1000 {
		pliesToMate := search.Mate - abs
		movesToMate := (int(pliesToMate) + 1) / 2
		if pv.Score < 0 {
			movesToMate = -movesToMate
		}
		parts = append(parts, fmt.Sprintf("score mate %v", movesToMate))
	} else {
		parts = append(parts, fmt.Sprintf("score cp %v", int(pv.Score)))
	}

	if pv.Nodes > 0 {
		parts = append(parts, fmt.Sprintf("nodes %v", pv.Nodes))
	}
	if pv.Time > 0 {
		parts = append(parts, fmt.Sprintf("time %v", pv.Time.Milliseconds()))
	}
	if pv.Nodes > 0 && pv.Time > 0 {
		parts = append(parts, fmt.Sprintf("nps %v", uint64(time.Second)*pv.Nodes/uint64(pv.Time)))
	}
	if len(pv.Moves) > 0 {
		parts = append(parts, "pv")
		parts = append(parts, formatMoves(pv.Moves))
	}

	return strings.Join(parts, " ")
}

func formatMoves(moves []board.Move) string {
	strs := make([]string, len(moves))
	for i, m := range moves {
		strs[i] = m.String()
	}
	return strings.Join(strs, " ")
}
