// Package history implements the persisted calculation history.
//
// The store holds an append-only sequence of entries backed by a CSV file.
// Every fallible operation reports success as a boolean and logs the
// failure instead of returning an error: the history file is advisory, not
// critical, and a history problem must never take down the interactive
// loop. The store is not safe for concurrent use; the application runs it
// on a single goroutine.
package history

import (
	"encoding/csv"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
)

// nowFunc is swapped out by tests that need deterministic timestamps.
var nowFunc = time.Now

// Store owns the ordered calculation history and its backing CSV file.
// Exactly one Store is constructed per process (in cmd/root.go) and passed
// to every consumer.
type Store struct {
	path    string
	entries []Entry
	logger  *slog.Logger
}

// Open creates a Store bound to path and performs the initial load. A
// missing file means a fresh empty history; a corrupt or unreadable file is
// logged and treated the same way. Open never fails.
func Open(path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{path: path, logger: logger}
	s.Load()
	return s
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Len returns the number of entries currently held.
func (s *Store) Len() int {
	return len(s.entries)
}

// Load replaces the in-memory entries with the contents of the backing
// file. Read or parse errors leave the store empty and are logged; the
// caller always gets a usable store.
func (s *Store) Load() {
	s.entries = nil

	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Info("history file not found, starting empty", "path", s.path)
		} else {
			s.logger.Error("failed to open history file", "path", s.path, "error", err)
		}
		return
	}
	defer f.Close()

	entries, err := readEntries(f)
	if err != nil {
		s.logger.Error("failed to load history file", "path", s.path, "error", err)
		s.entries = nil
		return
	}

	s.entries = entries
	s.logger.Info("history loaded", "path", s.path, "entries", len(entries))
}

func readEntries(r io.Reader) ([]Entry, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(Columns)

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse history CSV")
	}
	if len(records) == 0 {
		return nil, nil
	}

	// First row is the header; tolerate files written with the canonical
	// columns only.
	header := records[0]
	for i, col := range Columns {
		if !strings.EqualFold(header[i], col) {
			return nil, errors.Newf("unexpected history column %q, want %q", header[i], col)
		}
	}

	entries := make([]Entry, 0, len(records)-1)
	for _, rec := range records[1:] {
		entries = append(entries, Entry{
			Timestamp: rec[0],
			Operation: rec[1],
			Inputs:    rec[2],
			Result:    rec[3],
		})
	}
	return entries, nil
}

// AddCalculation appends one entry with a freshly captured timestamp and
// the textual rendering of inputs. Returns false (and logs) on failure.
func (s *Store) AddCalculation(operation string, inputs []float64, result float64) bool {
	entry := Entry{
		Timestamp: nowFunc().Format(TimestampLayout),
		Operation: operation,
		Inputs:    FormatInputs(inputs),
		Result:    FormatNumber(result),
	}
	s.entries = append(s.entries, entry)
	s.logger.Info("calculation added to history",
		"operation", entry.Operation, "inputs", entry.Inputs, "result", entry.Result)
	return true
}

// Save serializes all entries to the backing file in the canonical column
// order, creating the parent directory if necessary. Returns false (and
// logs) on failure.
func (s *Store) Save() bool {
	dir := filepath.Dir(s.path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			s.logger.Error("failed to create history directory", "dir", dir, "error", err)
			return false
		}
	}

	f, err := os.Create(s.path)
	if err != nil {
		s.logger.Error("failed to write history file", "path", s.path, "error", err)
		return false
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(Columns); err != nil {
		s.logger.Error("failed to write history header", "path", s.path, "error", err)
		return false
	}
	for _, e := range s.entries {
		if err := w.Write([]string{e.Timestamp, e.Operation, e.Inputs, e.Result}); err != nil {
			s.logger.Error("failed to write history row", "path", s.path, "error", err)
			return false
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		s.logger.Error("failed to flush history file", "path", s.path, "error", err)
		return false
	}

	s.logger.Info("history saved", "path", s.path, "entries", len(s.entries))
	return true
}

// Get returns all entries, or only the last limit entries when limit is
// positive (chronological, most-recent-last). The returned slice is a copy.
func (s *Store) Get(limit int) []Entry {
	start := 0
	if limit > 0 && limit < len(s.entries) {
		start = len(s.entries) - limit
	}
	out := make([]Entry, len(s.entries)-start)
	copy(out, s.entries[start:])
	return out
}

// Clear replaces the entries with an empty sequence. The canonical columns
// are preserved on the next save.
func (s *Store) Clear() bool {
	s.entries = nil
	s.logger.Info("history cleared")
	return true
}

// Delete removes the entry at the zero-based index, shifting later entries
// down one position. Out-of-range indexes leave the sequence unchanged and
// return false with a warning.
func (s *Store) Delete(index int) bool {
	if index < 0 || index >= len(s.entries) {
		s.logger.Warn("history delete index out of range", "index", index, "size", len(s.entries))
		return false
	}
	s.entries = append(s.entries[:index], s.entries[index+1:]...)
	s.logger.Info("history entry deleted", "index", index)
	return true
}

// Search returns every entry where term appears case-insensitively in the
// string rendering of at least one field, in original order.
func (s *Store) Search(term string) []Entry {
	var out []Entry
	for _, e := range s.entries {
		if e.Matches(term) {
			out = append(out, e)
		}
	}
	s.logger.Info("history searched", "term", term, "matches", len(out))
	return out
}

// Matches reports whether term appears case-insensitively in any field of
// the entry.
func (e Entry) Matches(term string) bool {
	needle := strings.ToLower(term)
	for _, field := range []string{e.Timestamp, e.Operation, e.Inputs, e.Result} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// FormatInputs renders a slice of operands as the bracketed list stored in
// the inputs column, e.g. "[10.0, 15.0]".
func FormatInputs(inputs []float64) string {
	parts := make([]string, len(inputs))
	for i, v := range inputs {
		parts[i] = FormatNumber(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// FormatNumber renders a float the way history entries store it: integral
// values keep one decimal place ("3.0"), everything else uses the shortest
// exact form.
func FormatNumber(v float64) string {
	if v == math.Trunc(v) && !math.IsInf(v, 0) && math.Abs(v) < 1e15 {
		return strconv.FormatFloat(v, 'f', 1, 64)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
