package questiongen

import (
	"fmt"
	"strings"
)

// buildAvoid formats recently asked questions for the prompt, keeping the
// most recent max entries. Returns "" if there are none.
func buildAvoid(recent []string, max int) string {
	if len(recent) == 0 {
		return ""
	}
	if max > 0 && len(recent) > max {
		recent = recent[len(recent)-max:]
	}

	var b strings.Builder
	for i, q := range recent {
		fmt.Fprintf(&b, "%d. %s\n", i+1, q)
	}
	return strings.TrimRight(b.String(), "\n")
}

// questionKey normalises question text for duplicate detection.
func questionKey(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}
