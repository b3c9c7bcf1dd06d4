package format

import (
	"fmt"
	"strings"

	"github.com/rickchristie/trajwatch"
)

// ParsingErrorLabel is the history label used when an action could not be
// described.
const ParsingErrorLabel = "[PARSING ERROR]"

// PromptContext exposes the parts of the agent's prompt needed to coach it
// after a malformed prediction.
type PromptContext interface {
	// ActionSplitter is the delimiter the agent must wrap its action in,
	// e.g. "```".
	ActionSplitter() string

	// ExtractAction pulls the action text out of a raw prediction.
	ExtractAction(response string) (string, error)
}

// DescribeAction produces the history label for a and, when the agent made a
// recoverable mistake, a reminder to show it on the next step.
//
// The label is never empty: when nothing could be described it is
// [ParsingErrorLabel]. The reminder is empty unless the action targets an
// element missing from metadata or failed to parse while pctx is available.
// pctx may be nil.
//
// Returns trajwatch.ErrUnknownMode for a mode outside the declared set.
func DescribeAction(
	a *trajwatch.Action,
	metadata map[string]trajwatch.NodeInfo,
	mode trajwatch.Mode,
	pctx PromptContext,
) (label, reminder string, err error) {
	switch mode {
	case trajwatch.ModeAccessibilityTree:
		label, reminder = describeAccessibilityTree(a, metadata, pctx)
	case trajwatch.ModeSetOfMark:
		label, reminder = describeSetOfMark(a, pctx)
	case trajwatch.ModePlaywright:
		label = a.PlaywrightCode
	default:
		return "", "", mode.Validate()
	}

	if label == "" {
		label = ParsingErrorLabel
	}
	return label, reminder, nil
}

func describeAccessibilityTree(
	a *trajwatch.Action,
	metadata map[string]trajwatch.NodeInfo,
	pctx PromptContext,
) (string, string) {
	switch {
	case a.Type == trajwatch.KindClick,
		a.Type == trajwatch.KindHover,
		a.Type == trajwatch.KindType:
		node, ok := metadata[a.ElementID]
		if !ok {
			return "", fmt.Sprintf(
				"In the last action, you attempt to perform %q on element \"[%s]\" "+
					"but no matching element found. When you issue the next action, "+
					"please check the observation more carefully.",
				a.Type.String(), a.ElementID)
		}
		// Drop the leading "[id]" token of the node text.
		fields := strings.Fields(node.Text)
		if len(fields) > 0 {
			fields = fields[1:]
		}
		return idActionString(a, strings.Join(fields, " ")), ""

	case a.Type == trajwatch.KindNone && pctx != nil:
		s := pctx.ActionSplitter()
		return "", fmt.Sprintf(
			"The previous action you issued was \"%s\". However, the format was incorrect. "+
				"When you issue the next action, ensure 1. the action is wrapped inside a pair of %s\n"+
				" 2. enclose arguments within [] as follows: %saction [arg] ...%s.\n"+
				" 3. The action, e.g. click, is in the provided action space\n",
			a.RawPrediction, s, s, s)

	default:
		return idActionString(a, ""), ""
	}
}

func describeSetOfMark(a *trajwatch.Action, pctx PromptContext) (string, string) {
	if pctx == nil {
		return "None", ""
	}
	if a.Type == trajwatch.KindNone {
		s := pctx.ActionSplitter()
		return "", fmt.Sprintf(
			"The previous prediction you issued was \"%s\". However, the format was incorrect. "+
				"Ensure that the action is wrapped inside a pair of %s and enclose each "+
				"argument within [] as follows: %saction [arg1] [arg2] ...%s. "+
				"e.g. %stype [1234] [abcd] [1]%s.",
			a.RawPrediction, s, s, s, s, s)
	}
	extracted, err := pctx.ExtractAction(a.RawPrediction)
	if err != nil {
		return "None", ""
	}
	return extracted, ""
}
