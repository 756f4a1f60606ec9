package history

// Entry represents one recorded calculation.
//
// All fields are stored as their string rendering: the CSV backing file
// round-trips entries verbatim, so the store never re-parses numbers it
// wrote earlier.
type Entry struct {
	Timestamp string
	Operation string
	Inputs    string
	Result    string
}

// Columns is the canonical CSV column set, in order. The header is written
// even when the store is empty.
var Columns = []string{"timestamp", "operation", "inputs", "result"}

// TimestampLayout is the wall-clock format recorded for each calculation.
const TimestampLayout = "2006-01-02 15:04:05"
