package tt

import (
	"fmt"

	"github.com/rickchristie/trajwatch"
)

// -----------------------------------------------------------------------------
// Action builders
// -----------------------------------------------------------------------------

// Click returns a CLICK action on element id.
func Click(id string) *trajwatch.Action {
	return &trajwatch.Action{
		Type:          trajwatch.KindClick,
		ElementID:     id,
		RawPrediction: fmt.Sprintf("```click [%s]```", id),
	}
}

// Hover returns a HOVER action on element id.
func Hover(id string) *trajwatch.Action {
	return &trajwatch.Action{
		Type:          trajwatch.KindHover,
		ElementID:     id,
		RawPrediction: fmt.Sprintf("```hover [%s]```", id),
	}
}

// Type returns a TYPE action writing text into element id.
func Type(id, text string) *trajwatch.Action {
	return &trajwatch.Action{
		Type:          trajwatch.KindType,
		ElementID:     id,
		Text:          text,
		RawPrediction: fmt.Sprintf("```type [%s] [%s] [1]```", id, text),
	}
}

// Scroll returns a SCROLL action.
func Scroll(direction string) *trajwatch.Action {
	return &trajwatch.Action{
		Type:          trajwatch.KindScroll,
		Direction:     direction,
		RawPrediction: fmt.Sprintf("```scroll [%s]```", direction),
	}
}

// None returns an action whose raw prediction failed to parse.
func None(raw string) *trajwatch.Action {
	return &trajwatch.Action{Type: trajwatch.KindNone, RawPrediction: raw}
}

// -----------------------------------------------------------------------------
// State builders
// -----------------------------------------------------------------------------

// PageState returns a state for url whose metadata describes the given
// element ids as "[id] button 'Element id'".
func PageState(url string, ids ...string) *trajwatch.State {
	s := &trajwatch.State{
		URL:         url,
		Observation: trajwatch.Observation{Text: "Tab 0 (current): " + url},
		Metadata:    make(map[string]trajwatch.NodeInfo, len(ids)),
	}
	for _, id := range ids {
		s.Metadata[id] = trajwatch.NodeInfo{
			Text: fmt.Sprintf("[%s] button 'Element %s'", id, id),
		}
	}
	return s
}

// -----------------------------------------------------------------------------
// Trajectory builder
// -----------------------------------------------------------------------------

// Trajectory builds a well formed trajectory from a list of actions. Every
// action is followed by a fresh state, so the result has length 2k+1.
func Trajectory(actions ...*trajwatch.Action) trajwatch.Trajectory {
	traj := trajwatch.Trajectory{PageState("http://localhost/0")}
	for i, a := range actions {
		traj = traj.AppendAction(a)
		traj = traj.AppendState(PageState(fmt.Sprintf("http://localhost/%d", i+1)))
	}
	return traj
}

// Repeat returns n copies of the action produced by build.
func Repeat(n int, build func() *trajwatch.Action) []*trajwatch.Action {
	actions := make([]*trajwatch.Action, n)
	for i := range actions {
		actions[i] = build()
	}
	return actions
}

// Concat joins action lists.
func Concat(lists ...[]*trajwatch.Action) []*trajwatch.Action {
	var out []*trajwatch.Action
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}

// AlwaysEquivalent treats every pair of actions as the same action.
func AlwaysEquivalent(a, b *trajwatch.Action) bool { return true }

// NeverEquivalent treats every pair of actions as different.
func NeverEquivalent(a, b *trajwatch.Action) bool { return false }
