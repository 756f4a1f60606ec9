package plugins

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"thoreinstein.com/tally/pkg/history"
)

// defaultShowLimit is how many entries the bare history command shows.
const defaultShowLimit = 10

// HistoryCommand manages the calculation history interactively. It reads
// one subcommand line:
//
//	show [limit] | clear | delete <index> | save | search <term>
//
// An empty line shows recent history. Malformed subcommands print a usage
// message and return; they never abort the session.
type HistoryCommand struct {
	store  *history.Store
	in     *bufio.Reader
	out    io.Writer
	logger *slog.Logger
}

// NewHistoryCommand builds the history management command.
func NewHistoryCommand(deps Deps) *HistoryCommand {
	return &HistoryCommand{
		store:  deps.Store,
		in:     deps.In,
		out:    deps.Out,
		logger: deps.Logger,
	}
}

// Execute reads and runs one history subcommand.
func (c *HistoryCommand) Execute() error {
	fmt.Fprint(c.out, "Enter history subcommand (show, clear, delete, save, search) or press Enter for recent history: ")
	line, err := c.in.ReadString('\n')
	if err != nil && line == "" {
		// Input closed: fall back to the default view, same as an empty line.
		c.showHistory(defaultShowLimit)
		return nil
	}

	args := strings.Fields(line)
	if len(args) == 0 {
		c.showHistory(defaultShowLimit)
		return nil
	}

	action := strings.ToLower(args[0])
	c.logger.Debug("history subcommand", "action", action, "args", args[1:])

	switch action {
	case "show":
		limit := 0
		if len(args) > 1 {
			n, err := strconv.Atoi(args[1])
			if err != nil {
				fmt.Fprintln(c.out, "Invalid limit number. Usage: show [limit]")
				return nil
			}
			limit = n
		}
		c.showHistory(limit)

	case "clear":
		if c.store.Clear() && c.store.Save() {
			fmt.Fprintln(c.out, "History cleared successfully.")
		} else {
			fmt.Fprintln(c.out, "Failed to clear history.")
		}

	case "delete":
		if len(args) < 2 {
			fmt.Fprintln(c.out, "Index required for delete operation. Usage: delete [index]")
			return nil
		}
		index, err := strconv.Atoi(args[1])
		if err != nil {
			fmt.Fprintln(c.out, "Invalid index number. Usage: delete [index]")
			return nil
		}
		if c.store.Delete(index) {
			c.store.Save()
			fmt.Fprintf(c.out, "Deleted entry at index %d.\n", index)
		} else {
			fmt.Fprintf(c.out, "Failed to delete entry at index %d. Index may be out of range.\n", index)
		}

	case "save":
		if c.store.Save() {
			fmt.Fprintln(c.out, "History saved successfully.")
		} else {
			fmt.Fprintln(c.out, "Failed to save history.")
		}

	case "search":
		if len(args) < 2 {
			fmt.Fprintln(c.out, "Search term required. Usage: search [term]")
			return nil
		}
		c.searchHistory(args[1])

	default:
		fmt.Fprintf(c.out, "Unknown history action: %s. Available actions: show, clear, delete, save, search\n", action)
	}

	return nil
}

func (c *HistoryCommand) showHistory(limit int) {
	entries := c.store.Get(limit)
	if len(entries) == 0 {
		fmt.Fprintln(c.out, "No calculation history found.")
		return
	}

	offset := c.store.Len() - len(entries)
	fmt.Fprintf(c.out, "Calculation History (showing %d records):\n", len(entries))
	fmt.Fprintln(c.out, "-------------------------------------------")
	fmt.Fprint(c.out, history.FormatEntries(entries, offset))
}

func (c *HistoryCommand) searchHistory(term string) {
	// Walk the full history rather than Search so the printed indexes are
	// the entries' real positions, usable with delete.
	var count int
	var b strings.Builder
	for i, e := range c.store.Get(0) {
		if e.Matches(term) {
			fmt.Fprintf(&b, "%d. [%s] %s %s = %s\n", i, e.Timestamp, e.Operation, e.Inputs, e.Result)
			count++
		}
	}

	if count == 0 {
		fmt.Fprintf(c.out, "No matches found for '%s'.\n", term)
		return
	}

	fmt.Fprintf(c.out, "Search Results for '%s' (%d matches):\n", term, count)
	fmt.Fprintln(c.out, "-------------------------------------------")
	fmt.Fprint(c.out, b.String())
}
