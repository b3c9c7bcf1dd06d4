package monitor

import "github.com/rickchristie/trajwatch"

type repeatKind int

const (
	repeatNone repeatKind = iota

	// repeatWindow: the last k actions are all equivalent to the last one.
	repeatWindow

	// repeatTyping: at least k actions of the whole history are equivalent
	// to the last one, which is a TYPE action.
	repeatTyping
)

// repetition reports whether the most recent action repeats k times.
//
// TYPE actions are counted over the whole history while every other kind uses
// a sliding window of the last k actions. The asymmetry is observable in stop
// behavior and must be kept.
func (m *Monitor) repetition(actions []*trajwatch.Action, k int) repeatKind {
	if k < 1 || len(actions) == 0 {
		return repeatNone
	}
	last := actions[len(actions)-1]

	if last.Type == trajwatch.KindType {
		count := 0
		for _, a := range actions {
			if m.equivalent(a, last) {
				count++
			}
		}
		if count >= k {
			return repeatTyping
		}
		return repeatNone
	}

	if len(actions) < k {
		return repeatNone
	}
	for _, a := range actions[len(actions)-k:] {
		if !m.equivalent(a, last) {
			return repeatNone
		}
	}
	return repeatWindow
}
