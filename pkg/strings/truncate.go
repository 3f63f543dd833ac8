package strings

import (
	"strings"
)

// DefaultCellMaxLen is the default maximum length for values in formatted
// table output. Shared so every command truncates consistently.
const DefaultCellMaxLen = 100

// MinTruncateLen is the minimum maxLen value for TruncateCell.
// Values smaller than this would not leave room for meaningful content plus "...".
const MinTruncateLen = 4

// TruncateCell truncates a string to maxLen characters and ensures
// single-line output. It replaces newlines with spaces, collapses runs of
// whitespace into single spaces, and adds "..." if truncated.
//
// The function operates on runes rather than bytes, preventing truncation in
// the middle of multi-byte characters.
//
// If maxLen is less than MinTruncateLen (4), it is clamped to MinTruncateLen
// to ensure there is room for at least one character plus "...".
func TruncateCell(s string, maxLen int) string {
	if maxLen < MinTruncateLen {
		maxLen = MinTruncateLen
	}

	s = strings.Join(strings.Fields(s), " ")

	runes := []rune(s)
	if len(runes) > maxLen {
		return string(runes[:maxLen-3]) + "..."
	}
	return s
}
