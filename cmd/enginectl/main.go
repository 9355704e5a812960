// enginectl is a UCI chess engine: mailbox board representation, tapered
// static evaluation and a Lazy-SMP alpha-beta search with a shared
// transposition table.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/kestrelchess/engine/internal/consoledriver"
	"github.com/kestrelchess/engine/internal/logging"
	"github.com/kestrelchess/engine/internal/uci"
	"github.com/kestrelchess/engine/pkg/engine"
	"github.com/seekerror/logw"
)

var (
	depth   = flag.Uint("depth", 0, "Search depth limit (zero for no limit)")
	hash    = flag.Uint("hash", 64, "Transposition table size in MB (zero to disable)")
	noise   = flag.Uint("noise", 10, "Evaluation noise in centipawns (zero if deterministic)")
	workers = flag.Int("workers", 4, "Number of Lazy-SMP search workers")
)

func init() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: enginectl [options]

enginectl is a UCI chess engine.
Options:
`)
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	ctx := context.Background()

	e := engine.New(ctx, "kestrel", "kestrelchess", engine.WithOptions(engine.Options{
		Depth:   *depth,
		Hash:    *hash,
		Noise:   *noise,
		Workers: *workers,
	}), engine.WithZobrist(time.Now().UnixNano()))

	in := logging.ReadStdinLines(ctx)
	switch <-in {
	case uci.ProtocolName:
		driver, out := uci.NewDriver(ctx, e, in)
		go logging.WriteStdoutLines(ctx, out)

		<-driver.Closed()

	case consoledriver.ProtocolName:
		driver, out := consoledriver.NewDriver(ctx, e, in)
		go logging.WriteStdoutLines(ctx, out)

		<-driver.Closed()

	default:
		flag.Usage()
		logw.Exitf(ctx, "Protocol not supported")
	}
}
