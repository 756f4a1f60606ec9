package history

import (
	"fmt"
	"strings"
)

// FormatEntries renders entries for console display, one line per entry:
//
//	0. [2025-01-02 15:04:05] add [1.0, 2.0] = 3.0
//
// offset is the position of the first entry within the full history, so a
// tail view keeps the real zero-based indexes users pass to delete.
func FormatEntries(entries []Entry, offset int) string {
	var b strings.Builder
	for i, e := range entries {
		fmt.Fprintf(&b, "%d. [%s] %s %s = %s\n", offset+i, e.Timestamp, e.Operation, e.Inputs, e.Result)
	}
	return b.String()
}
