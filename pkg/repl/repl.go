// Package repl implements the read-dispatch loop mapping user input to
// command execution.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"thoreinstein.com/tally/pkg/audit"
	"thoreinstein.com/tally/pkg/command"
)

// exitToken is the reserved input that ends the session, matched
// case-insensitively.
const exitToken = "exit"

// Options configures a REPL.
type Options struct {
	// Prompt controls whether ">>>" is printed before each read. The
	// caller disables it when stdin is not a terminal so piped input
	// produces clean output.
	Prompt bool
	// Audit, when set, records every dispatched input.
	Audit *audit.Log
}

// REPL reads one line at a time and dispatches it through the registry. A
// failing command never stops the loop; only the exit token or the end of
// input terminates it.
type REPL struct {
	registry *command.Registry
	in       *bufio.Reader
	out      io.Writer
	logger   *slog.Logger
	opts     Options
}

// New builds a REPL. The reader must be the same buffered reader handed to
// prompting commands, so their reads and the loop's reads interleave
// correctly.
func New(reg *command.Registry, in *bufio.Reader, out io.Writer, logger *slog.Logger, opts Options) *REPL {
	if logger == nil {
		logger = slog.Default()
	}
	return &REPL{
		registry: reg,
		in:       in,
		out:      out,
		logger:   logger,
		opts:     opts,
	}
}

// Run executes the loop until the exit token or end of input. It always
// returns nil: every per-iteration failure is contained.
func (r *REPL) Run() error {
	fmt.Fprintln(r.out, "Type 'exit' to quit the program")

	for {
		if r.opts.Prompt {
			fmt.Fprint(r.out, ">>>")
		}

		line, readErr := r.in.ReadString('\n')
		input := strings.TrimSpace(line)

		if input == "" {
			if readErr != nil {
				r.logger.Info("input closed, exiting")
				fmt.Fprintln(r.out, "Exiting the program....")
				return nil
			}
			continue
		}

		if strings.EqualFold(input, exitToken) {
			r.logger.Info("exit command entered, exiting the program")
			fmt.Fprintln(r.out, "Exiting the program....")
			return nil
		}

		r.dispatch(input)

		if readErr != nil {
			// The stream ended on the line just handled.
			r.logger.Info("input closed, exiting")
			fmt.Fprintln(r.out, "Exiting the program....")
			return nil
		}
	}
}

// dispatch resolves and executes one input line, containing any failure.
func (r *REPL) dispatch(input string) {
	r.logger.Debug("executing command", "input", input)

	started := time.Now()
	err := r.registry.Execute(input)
	if r.opts.Audit != nil {
		r.opts.Audit.Record(input, started, time.Since(started), err == nil)
	}
	if err == nil {
		return
	}

	if errors.Is(err, command.ErrUnknownCommand) {
		r.logger.Warn("unknown command", "input", input)
		fmt.Fprintf(r.out, "Unknown command: %s\n", input)
		return
	}

	logged := input
	if logged == "" {
		logged = "<unknown>"
	}
	r.logger.Error("an error occurred while executing command", "input", logged, "error", err)
}
