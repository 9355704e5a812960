package consoledriver_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/kestrelchess/engine/internal/consoledriver"
	"github.com/kestrelchess/engine/pkg/engine"
	"github.com/stretchr/testify/assert"
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
			if strings.Contains(line, want) {
				return line
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %q", want)
		}
	}
}

func TestDriverPrintsBoardOnStart(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx, "test", "tester")

	in := make(chan string, 10)
	d, out := consoledriver.NewDriver(ctx, e, in)
	defer d.Close()

	drain(t, out, "fen:", time.Second)
}

func TestDriverAppliesMoveCommand(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx, "test", "tester")

	in := make(chan string, 10)
	d, out := consoledriver.NewDriver(ctx, e, in)
	defer d.Close()

	drain(t, out, "fen:", time.Second)

	in <- "e2e4"
	line := drain(t, out, "fen:", time.Second)
	assert.Contains(t, line, "4P3")
}

func TestDriverRejectsInvalidMove(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx, "test", "tester")

	in := make(chan string, 10)
	d, out := consoledriver.NewDriver(ctx, e, in)
	defer d.Close()

	drain(t, out, "fen:", time.Second)

	in <- "e2e5"
	drain(t, out, "invalid move", time.Second)
}

func TestDriverQuitClosesOutput(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx, "test", "tester")

	in := make(chan string, 10)
	_, out := consoledriver.NewDriver(ctx, e, in)

	drain(t, out, "fen:", time.Second)
	in <- "quit"

	for range out {
		// drain until closed
	}
}
