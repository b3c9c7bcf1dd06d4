package trajwatch

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// ObservationDiff returns a unified diff from the text observation of prev to
// that of cur. It returns "" when either state is nil or the texts are equal.
func ObservationDiff(prev, cur *State) string {
	if prev == nil || cur == nil {
		return ""
	}
	if prev.Observation.Text == cur.Observation.Text {
		return ""
	}

	diff := difflib.UnifiedDiff{
		A:        splitLines(prev.Observation.Text),
		B:        splitLines(cur.Observation.Text),
		FromFile: prev.URL,
		ToFile:   cur.URL,
		Context:  1,
	}
	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		// GetUnifiedDiffString only fails on writer errors, which a
		// strings.Builder never returns.
		return ""
	}
	return text
}

// splitLines is difflib.SplitLines without the empty last line a trailing
// newline would produce.
func splitLines(s string) []string {
	return difflib.SplitLines(strings.TrimSuffix(s, "\n"))
}
