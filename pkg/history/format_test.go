package history

import "testing"

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{in: 3, want: "3.0"},
		{in: -7, want: "-7.0"},
		{in: 0, want: "0.0"},
		{in: 2.5, want: "2.5"},
		{in: 0.125, want: "0.125"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.in); got != tt.want {
			t.Errorf("FormatNumber(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatInputs(t *testing.T) {
	if got := FormatInputs([]float64{10, 15}); got != "[10.0, 15.0]" {
		t.Errorf("FormatInputs = %q, want %q", got, "[10.0, 15.0]")
	}
	if got := FormatInputs(nil); got != "[]" {
		t.Errorf("FormatInputs(nil) = %q, want %q", got, "[]")
	}
}

func TestFormatEntries(t *testing.T) {
	entries := []Entry{
		{Timestamp: "2025-01-02 15:04:05", Operation: "add", Inputs: "[1.0, 2.0]", Result: "3.0"},
		{Timestamp: "2025-01-02 15:04:06", Operation: "sub", Inputs: "[5.0, 2.0]", Result: "3.0"},
	}

	got := FormatEntries(entries, 3)
	want := "3. [2025-01-02 15:04:05] add [1.0, 2.0] = 3.0\n" +
		"4. [2025-01-02 15:04:06] sub [5.0, 2.0] = 3.0\n"
	if got != want {
		t.Errorf("FormatEntries =\n%q\nwant\n%q", got, want)
	}
}
