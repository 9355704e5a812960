// Package logging wires the engine's protocol drivers to stdin/stdout,
// logging every line that crosses the boundary. Verbosity is gated by the
// debug flag (see SetDebug), which the UCI driver flips on the wire protocol's
// own "debug [on|off]" command.
package logging

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/seekerror/logw"
	"go.uber.org/atomic"
)

var debug atomic.Bool

// SetDebug turns protocol-traffic logging up to Info (visible under default
// verbosity) or back down to Debug (typically filtered).
func SetDebug(enabled bool) {
	debug.Store(enabled)
}

// Debug reports the current debug flag.
func Debug() bool {
	return debug.Load()
}

func logLine(ctx context.Context, format string, args ...any) {
	if debug.Load() {
		logw.Infof(ctx, format, args...)
	} else {
		logw.Debugf(ctx, format, args...)
	}
}

// ReadStdinLines reads stdin lines onto a channel, closing it when stdin is
// exhausted or closed. Async.
func ReadStdinLines(ctx context.Context) <-chan string {
	ret := make(chan string, 1)
	go func() {
		defer close(ret)

		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			logLine(ctx, "<< %v", scanner.Text())
			ret <- scanner.Text()
		}
	}()
	return ret
}

// WriteStdoutLines writes every line received on out to stdout, until the
// channel is closed.
func WriteStdoutLines(ctx context.Context, out <-chan string) {
	for line := range out {
		logLine(ctx, ">> %v", line)
		_, _ = fmt.Fprintln(os.Stdout, line)
	}
}
