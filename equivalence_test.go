package trajwatch_test

import (
	"testing"

	"github.com/rickchristie/trajwatch"
	"github.com/stretchr/testify/assert"
)

func TestDefaultEquivalence(t *testing.T) {
	type input struct {
		a, b *trajwatch.Action
	}

	tests := []struct {
		name     string
		input    input
		expected bool
	}{
		{
			name: "different kinds",
			input: input{
				a: &trajwatch.Action{Type: trajwatch.KindClick, ElementID: "1"},
				b: &trajwatch.Action{Type: trajwatch.KindHover, ElementID: "1"},
			},
			expected: false,
		},
		{
			name: "click same id",
			input: input{
				a: &trajwatch.Action{Type: trajwatch.KindClick, ElementID: "1", RawPrediction: "a"},
				b: &trajwatch.Action{Type: trajwatch.KindClick, ElementID: "1", RawPrediction: "b"},
			},
			expected: true,
		},
		{
			name: "click different id",
			input: input{
				a: &trajwatch.Action{Type: trajwatch.KindClick, ElementID: "1"},
				b: &trajwatch.Action{Type: trajwatch.KindClick, ElementID: "2"},
			},
			expected: false,
		},
		{
			name: "type ignores text",
			input: input{
				a: &trajwatch.Action{Type: trajwatch.KindType, ElementID: "5", Text: "shoes"},
				b: &trajwatch.Action{Type: trajwatch.KindType, ElementID: "5", Text: "boots"},
			},
			expected: true,
		},
		{
			name: "click by role and name",
			input: input{
				a: &trajwatch.Action{Type: trajwatch.KindClick, ElementRole: "link", ElementName: "Home"},
				b: &trajwatch.Action{Type: trajwatch.KindClick, ElementRole: "link", ElementName: "Home"},
			},
			expected: true,
		},
		{
			name: "click without any target",
			input: input{
				a: &trajwatch.Action{Type: trajwatch.KindClick},
				b: &trajwatch.Action{Type: trajwatch.KindClick},
			},
			expected: false,
		},
		{
			name: "scroll direction normalized",
			input: input{
				a: &trajwatch.Action{Type: trajwatch.KindScroll, Direction: "UP"},
				b: &trajwatch.Action{Type: trajwatch.KindScroll, Direction: "scroll up"},
			},
			expected: true,
		},
		{
			name: "scroll opposite directions",
			input: input{
				a: &trajwatch.Action{Type: trajwatch.KindScroll, Direction: "up"},
				b: &trajwatch.Action{Type: trajwatch.KindScroll, Direction: "down"},
			},
			expected: false,
		},
		{
			name: "key press combos",
			input: input{
				a: &trajwatch.Action{Type: trajwatch.KindKeyPress, KeyComb: "Enter"},
				b: &trajwatch.Action{Type: trajwatch.KindKeyPress, KeyComb: "Control+a"},
			},
			expected: false,
		},
		{
			name: "parse failures",
			input: input{
				a: &trajwatch.Action{Type: trajwatch.KindNone, RawPrediction: "x"},
				b: &trajwatch.Action{Type: trajwatch.KindNone, RawPrediction: "y"},
			},
			expected: true,
		},
		{
			name: "go back",
			input: input{
				a: &trajwatch.Action{Type: trajwatch.KindGoBack},
				b: &trajwatch.Action{Type: trajwatch.KindGoBack},
			},
			expected: true,
		},
		{
			name: "goto different url",
			input: input{
				a: &trajwatch.Action{Type: trajwatch.KindGotoURL, URL: "http://a"},
				b: &trajwatch.Action{Type: trajwatch.KindGotoURL, URL: "http://b"},
			},
			expected: false,
		},
		{
			name: "page focus same page",
			input: input{
				a: &trajwatch.Action{Type: trajwatch.KindPageFocus, PageNumber: 1},
				b: &trajwatch.Action{Type: trajwatch.KindPageFocus, PageNumber: 1},
			},
			expected: true,
		},
		{
			name: "stop different answers",
			input: input{
				a: trajwatch.NewStopAction("42"),
				b: trajwatch.NewStopAction("43"),
			},
			expected: false,
		},
		{
			name:     "both nil",
			input:    input{},
			expected: true,
		},
		{
			name: "one nil",
			input: input{
				a: &trajwatch.Action{Type: trajwatch.KindGoBack},
			},
			expected: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, trajwatch.DefaultEquivalence(tc.input.a, tc.input.b))
			assert.Equal(t, tc.expected, trajwatch.DefaultEquivalence(tc.input.b, tc.input.a),
				"must be symmetric")
		})
	}
}
