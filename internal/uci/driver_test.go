package uci_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/kestrelchess/engine/internal/uci"
	"github.com/kestrelchess/engine/pkg/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(t *testing.T, out <-chan string, want string, timeout time.Duration) string {
	t.Helper()

	deadline := time.After(timeout)
	for {
		select {
		case line, ok := <-out:
			if !ok {
				t.Fatalf("output closed before %q was seen", want)
			}
			if strings.HasPrefix(line, want) {
				return line
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %q", want)
		}
	}
}

func TestDriverHandshakeAndBestMove(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx, "test", "tester", engine.WithOptions(engine.Options{Depth: 1}))

	in := make(chan string, 10)
	d, out := uci.NewDriver(ctx, e, in)
	defer d.Close()

	drain(t, out, "id name", time.Second)
	drain(t, out, "uciok", time.Second)

	in <- "isready"
	drain(t, out, "readyok", time.Second)

	in <- "position startpos"
	in <- "go depth 1"
	drain(t, out, "bestmove", 5*time.Second)
}

func TestDriverStopReturnsBestMove(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx, "test", "tester", engine.WithOptions(engine.Options{Depth: 0}))
	require.NoError(t, e.Reset(ctx, "6k1/5ppp/8/8/8/8/8/4R1K1 w - - 0 1"))

	in := make(chan string, 10)
	d, out := uci.NewDriver(ctx, e, in)
	defer d.Close()

	drain(t, out, "uciok", time.Second)

	in <- "position fen 6k1/5ppp/8/8/8/8/8/4R1K1 w - - 0 1"
	in <- "go infinite"

	time.Sleep(50 * time.Millisecond)
	in <- "stop"

	line := drain(t, out, "bestmove", 5*time.Second)
	assert.NotEqual(t, "bestmove 0000", line)
}

func TestDriverQuitClosesOutput(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx, "test", "tester")

	in := make(chan string, 10)
	_, out := uci.NewDriver(ctx, e, in)

	drain(t, out, "uciok", time.Second)
	in <- "quit"

	for range out {
		// drain until closed
	}
}
