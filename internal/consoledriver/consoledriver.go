// Package consoledriver implements a plain-text console protocol for
// debugging the engine interactively, outside of a UCI-speaking GUI.
package consoledriver

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/kestrelchess/engine/pkg/board"
	"github.com/kestrelchess/engine/pkg/board/fen"
	"github.com/kestrelchess/engine/pkg/engine"
	"github.com/kestrelchess/engine/pkg/eval"
	"github.com/kestrelchess/engine/pkg/search"
	"github.com/kestrelchess/engine/pkg/search/searchctl"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
	"github.com/seekerror/stdlib/pkg/util/iox"
)

const ProtocolName = "console"

// Driver implements a console driver for debugging.
type Driver struct {
	iox.AsyncCloser

	e *engine.Engine

	out chan<- string

	active atomic.Bool // user is waiting for the engine to move
}

func NewDriver(ctx context.Context, e *engine.Engine, in <-chan string) (*Driver, <-chan string) {
	out := make(chan string, 100)
	d := &Driver{
		AsyncCloser: iox.NewAsyncCloser(),
		e:           e,
		out:         out,
	}
	go d.process(ctx, in)

	return d, out
}

func (d *Driver) process(ctx context.Context, in <-chan string) {
	defer d.Close()
	defer close(d.out)

	logw.Infof(ctx, "Console protocol initialized")

	d.out <- fmt.Sprintf("engine %v (%v)", d.e.Name(), d.e.Author())
	d.printBoard(ctx)

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
			case "reset", "r":
				// reset [<fenstring>] moves ...

				d.ensureInactive(ctx)

				pos := fen.Initial
				if len(args) >= 6 && args[0] != "moves" {
					pos = strings.Join(args[0:6], " ")
				}
				if err := d.e.Reset(ctx, pos); err != nil {
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
				d.printBoard(ctx)

			case "undo", "u":
				d.ensureInactive(ctx)

				_ = d.e.TakeBack(ctx)
				d.printBoard(ctx)

			case "print", "p":
				d.printBoard(ctx)

			case "analyze", "a":
				d.ensureInactive(ctx)

				var opt searchctl.Options
				if len(args) > 0 {
					depth, _ := strconv.Atoi(args[0])
					opt.DepthLimit = lang.Some(uint(depth))
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
						d.out <- pv.String()
					}
					d.searchCompleted(ctx, last)
				}()

			case "depth", "d":
				if len(args) > 0 {
					depth, _ := strconv.Atoi(args[0])
					d.e.SetDepth(uint(depth))
				}

			case "hash": // size in MB
				if len(args) > 0 {
					hash, _ := strconv.Atoi(args[0])
					d.e.SetHash(uint(hash))
				}

			case "nohash":
				d.e.SetHash(0)

			case "noise": // evaluation randomness in centipawns
				if len(args) > 0 {
					noise, _ := strconv.Atoi(args[0])
					d.e.SetNoise(uint(noise))
				}

			case "nonoise":
				d.e.SetNoise(0)

			case "workers", "w":
				if len(args) > 0 {
					n, _ := strconv.Atoi(args[0])
					d.e.SetWorkers(n)
				}

			case "halt", "stop":
				pv, err := d.e.Halt(ctx)
				if err == nil {
					d.searchCompleted(ctx, pv)
				}

			case "quit", "exit", "q":
				d.ensureInactive(ctx)
				return

			case "":
				// ignore empty command

			default:
				// Assume a move if the command isn't recognized.

				d.ensureInactive(ctx)
				if err := d.e.Move(ctx, cmd); err != nil {
					d.out <- fmt.Sprintf("invalid move: '%v'", cmd)
				} else {
					d.printBoard(ctx)
				}
			}

		case <-d.Closed():
			d.ensureInactive(ctx)

			logw.Infof(ctx, "Driver closed")
			return
		}
	}
}

func (d *Driver) ensureInactive(ctx context.Context) {
	d.active.Store(false)
	_, _ = d.e.Halt(ctx)
}

func (d *Driver) searchCompleted(ctx context.Context, pv search.PV) {
	if d.active.CompareAndSwap(true, false) {
		if len(pv.Moves) > 0 {
			d.out <- fmt.Sprintf("bestmove %v", pv.Moves[0])
		}

		// Ponder each legal move for a score breakdown, using no transposition
		// table and no evaluation noise so the numbers are reproducible.

		pos := d.e.Board().Position().Clone()
		tt := search.NoTranspositionTable{}
		ab := search.NewAlphaBeta(tt, eval.Tapered{}, search.NewPVMap())

		var sub []moveResult
		for _, m := range board.LegalMoves(pos) {
			u, err := pos.Apply(m)
			if err != nil {
				continue
			}
			nodes, score, moves, _ := ab(ctx, pos, max(pv.Depth-1, 0))
			pos.Undo(m, u)

			sub = append(sub, moveResult{m: m, s: score, n: nodes, pv: moves})
		}
		sort.Sort(byScore(sub))

		d.out <- fmt.Sprintf("Search, depth=%v", pv.Depth)
		for i, r := range sub {
			d.out <- fmt.Sprintf(" %2d. %v\t%v\t\t(%v nodes\tpv %v)", i+1, r.m, r.s, r.n, formatMoves(r.pv))
		}
	} // else: stale or duplicate result
}

const (
	files      = "    a   b   c   d   e   f   g   h"
	horizontal = "  ---------------------------------"
	vertical   = " | "
)

func (d *Driver) printBoard(ctx context.Context) {
	pos := d.e.Board().Position()

	d.out <- ""
	d.out <- files
	d.out <- horizontal
	for r := board.Rank8; r >= board.Rank1; r-- {
		var sb strings.Builder
		sb.WriteString(r.String() + vertical)
		for f := board.FileA; f <= board.FileH; f++ {
			p := pos.At(board.NewSquare(f, r))
			if p.IsEmpty() {
				sb.WriteString(" ")
			} else {
				sb.WriteString(printPiece(p))
			}
			sb.WriteString(vertical)
		}
		d.out <- sb.String()
		d.out <- horizontal
	}
	d.out <- files
	d.out <- ""
	d.out <- fmt.Sprintf("fen:    %v", fen.Encode(pos))
	d.out <- fmt.Sprintf("result: %v, hash: 0x%x", pos.Status(), pos.Hash())
	d.out <- ""
}

func printPiece(p board.Piece) string {
	if p.Color() == board.White {
		return strings.ToUpper(p.Type().String())
	}
	return strings.ToLower(p.Type().String())
}

func formatMoves(moves []board.Move) string {
	strs := make([]string, len(moves))
	for i, m := range moves {
		strs[i] = m.String()
	}
	return strings.Join(strs, " ")
}

type moveResult struct {
	m  board.Move
	s  board.Score
	n  uint64
	pv []board.Move
}

// byScore sorts best-for-white first.
type byScore []moveResult

func (b byScore) Len() int      { return len(b) }
func (b byScore) Swap(i, j int) { b[i], b[j] = b[j], b[i] }
func (b byScore) Less(i, j int) bool {
	return b[i].s > b[j].s
}
