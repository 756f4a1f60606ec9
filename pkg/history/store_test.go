package history

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "calculation_history.csv")
	return Open(path, testLogger())
}

func TestOpen_MissingFileStartsEmpty(t *testing.T) {
	s := newTestStore(t)
	if got := s.Get(0); len(got) != 0 {
		t.Errorf("Get(0) = %d entries, want 0", len(got))
	}
}

func TestOpen_CorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calculation_history.csv")
	if err := os.WriteFile(path, []byte("not,a,history\n\"broken"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := Open(path, testLogger())
	if got := s.Get(0); len(got) != 0 {
		t.Errorf("Get(0) = %d entries, want 0 after corrupt load", len(got))
	}
}

func TestAddCalculation(t *testing.T) {
	s := newTestStore(t)

	if ok := s.AddCalculation("add", []float64{1, 2}, 3); !ok {
		t.Fatal("AddCalculation returned false")
	}

	entries := s.Get(0)
	require.Len(t, entries, 1)
	e := entries[0]
	assert.Equal(t, "add", e.Operation)
	assert.Equal(t, "[1.0, 2.0]", e.Inputs)
	assert.Equal(t, "3.0", e.Result)
	if e.Timestamp == "" {
		t.Error("timestamp not captured")
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calculation_history.csv")
	s := Open(path, testLogger())

	s.AddCalculation("add", []float64{10, 15}, 25)
	s.AddCalculation("multiply", []float64{4, 5}, 20)
	s.AddCalculation("sub", []float64{2.5, 0.25}, 2.25)
	require.True(t, s.Save())

	fresh := Open(path, testLogger())
	assert.Equal(t, s.Get(0), fresh.Get(0))
}

func TestSave_WritesCanonicalHeaderWhenEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "calculation_history.csv")
	s := Open(path, testLogger())

	require.True(t, s.Save())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "timestamp,operation,inputs,result\n", string(data))
}

func TestGet_Limit(t *testing.T) {
	s := newTestStore(t)
	s.AddCalculation("add", []float64{1, 1}, 2)
	s.AddCalculation("add", []float64{2, 2}, 4)
	s.AddCalculation("add", []float64{3, 3}, 6)

	tests := []struct {
		limit int
		want  int
		first string
	}{
		{limit: 0, want: 3, first: "[1.0, 1.0]"},
		{limit: -5, want: 3, first: "[1.0, 1.0]"},
		{limit: 2, want: 2, first: "[2.0, 2.0]"},
		{limit: 10, want: 3, first: "[1.0, 1.0]"},
	}
	for _, tt := range tests {
		got := s.Get(tt.limit)
		if len(got) != tt.want {
			t.Errorf("Get(%d) = %d entries, want %d", tt.limit, len(got), tt.want)
			continue
		}
		if got[0].Inputs != tt.first {
			t.Errorf("Get(%d)[0].Inputs = %q, want %q", tt.limit, got[0].Inputs, tt.first)
		}
	}
}

func TestGet_Idempotent(t *testing.T) {
	s := newTestStore(t)
	s.AddCalculation("add", []float64{1, 2}, 3)

	first := s.Get(0)
	second := s.Get(0)
	assert.Equal(t, first, second)

	// The returned slice is a copy; mutating it must not touch the store.
	first[0].Operation = "mutated"
	assert.Equal(t, "add", s.Get(0)[0].Operation)
}

func TestDelete_OutOfRange(t *testing.T) {
	s := newTestStore(t)
	s.AddCalculation("add", []float64{1, 2}, 3)
	s.AddCalculation("sub", []float64{5, 2}, 3)

	before := s.Get(0)
	for _, index := range []int{-1, -100, 2, 3} {
		if s.Delete(index) {
			t.Errorf("Delete(%d) = true, want false", index)
		}
	}
	assert.Equal(t, before, s.Get(0))
}

func TestDelete_ShiftsLaterEntries(t *testing.T) {
	s := newTestStore(t)
	s.AddCalculation("add", []float64{1, 2}, 3)
	s.AddCalculation("multiply", []float64{4, 5}, 20)

	require.True(t, s.Delete(0))

	entries := s.Get(0)
	require.Len(t, entries, 1)
	assert.Equal(t, "multiply", entries[0].Operation)
}

func TestClear(t *testing.T) {
	s := newTestStore(t)
	s.AddCalculation("add", []float64{1, 2}, 3)

	require.True(t, s.Clear())
	assert.Empty(t, s.Get(0))

	// Canonical columns survive a clear-then-save.
	require.True(t, s.Save())
	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "timestamp,operation,inputs,result"))
}

func TestSearch(t *testing.T) {
	s := newTestStore(t)
	s.AddCalculation("add", []float64{1, 2}, 3)
	s.AddCalculation("multiply", []float64{4, 5}, 20)

	tests := []struct {
		term string
		want int
	}{
		{term: "multiply", want: 1},
		{term: "MULTIPLY", want: 1},
		{term: "20", want: 2}, // matches the timestamp year too
		{term: "4.0", want: 1},
		{term: "definitely-absent", want: 0},
	}
	for _, tt := range tests {
		got := s.Search(tt.term)
		if len(got) != tt.want {
			t.Errorf("Search(%q) = %d entries, want %d", tt.term, len(got), tt.want)
		}
	}

	results := s.Search("multiply")
	require.Len(t, results, 1)
	assert.Equal(t, "[4.0, 5.0]", results[0].Inputs)
}

func TestStore_Scenario(t *testing.T) {
	s := newTestStore(t)

	require.True(t, s.AddCalculation("add", []float64{1, 2}, 3))
	require.True(t, s.AddCalculation("multiply", []float64{4, 5}, 20))

	entries := s.Get(0)
	require.Len(t, entries, 2)
	assert.Equal(t, "add", entries[0].Operation)
	assert.Equal(t, "multiply", entries[1].Operation)

	matches := s.Search("multiply")
	require.Len(t, matches, 1)
	assert.Equal(t, entries[1], matches[0])

	require.True(t, s.Delete(0))
	entries = s.Get(0)
	require.Len(t, entries, 1)
	assert.Equal(t, "multiply", entries[0].Operation)

	require.True(t, s.Clear())
	assert.Empty(t, s.Get(0))
}
