package plugins

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"thoreinstein.com/tally/pkg/history"
)

// ArithmeticCommand prompts for two operands, prints the result, and
// records the calculation in the history store.
type ArithmeticCommand struct {
	name   string
	symbol string
	apply  func(a, b float64) float64
	store  *history.Store
	in     *bufio.Reader
	out    io.Writer
	logger *slog.Logger
}

// NewArithmeticCommand builds a two-operand command. name is the history
// operation label, symbol the character printed in the result line.
func NewArithmeticCommand(name, symbol string, apply func(a, b float64) float64, deps Deps) *ArithmeticCommand {
	return &ArithmeticCommand{
		name:   name,
		symbol: symbol,
		apply:  apply,
		store:  deps.Store,
		in:     deps.In,
		out:    deps.Out,
		logger: deps.Logger,
	}
}

// Execute runs one calculation. Non-numeric input re-prompts; only a closed
// input stream aborts the command.
func (c *ArithmeticCommand) Execute() error {
	c.logger.Info("executing command", "name", c.name)

	a, err := promptFloat(c.in, c.out, "Enter first number: ", c.logger)
	if err != nil {
		return err
	}
	b, err := promptFloat(c.in, c.out, "Enter second number: ", c.logger)
	if err != nil {
		return err
	}

	result := c.apply(a, b)
	c.logger.Info("calculation performed",
		"operation", c.name, "a", a, "b", b, "result", result)
	fmt.Fprintf(c.out, "Result: %s %s %s = %s\n",
		history.FormatNumber(a), c.symbol, history.FormatNumber(b), history.FormatNumber(result))

	c.store.AddCalculation(c.name, []float64{a, b}, result)
	c.store.Save()
	return nil
}

// promptFloat reads a number, re-prompting until the input parses. It only
// fails when the input stream ends.
func promptFloat(in *bufio.Reader, out io.Writer, prompt string, logger *slog.Logger) (float64, error) {
	for {
		fmt.Fprint(out, prompt)
		line, err := in.ReadString('\n')
		if err != nil && line == "" {
			return 0, errors.Wrap(err, "input closed while reading number")
		}
		line = strings.TrimSpace(line)

		value, perr := strconv.ParseFloat(line, 64)
		if perr != nil {
			logger.Warn("invalid numeric input", "input", line)
			fmt.Fprintln(out, "Invalid Value. Please Try Again.")
			if err != nil {
				// Stream ended on a bad value; nothing more to read.
				return 0, errors.Wrap(err, "input closed while reading number")
			}
			continue
		}

		logger.Debug("value entered", "value", value)
		return value, nil
	}
}
