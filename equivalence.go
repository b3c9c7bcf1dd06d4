package trajwatch

import "strings"

// Equivalence decides whether two actions count as the same action for loop
// detection. Implementations must be pure and symmetric; they need not agree
// with ==.
type Equivalence func(a, b *Action) bool

// DefaultEquivalence is the reference predicate for browser actions.
//
// Actions of different kinds are never equivalent. Element actions compare
// their target: element id first, then accessibility role and name, then
// Playwright code. Typed text is deliberately ignored, so typing different
// strings into the same field counts as the same action.
func DefaultEquivalence(a, b *Action) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Type != b.Type {
		return false
	}

	switch a.Type {
	case KindNone, KindNewTab, KindGoBack, KindGoForward, KindPageClose:
		return true
	case KindScroll:
		return scrollDirection(a.Direction) == scrollDirection(b.Direction)
	case KindKeyPress:
		return a.KeyComb == b.KeyComb
	case KindClick, KindHover, KindType:
		return sameTarget(a, b)
	case KindPageFocus:
		return a.PageNumber == b.PageNumber
	case KindGotoURL:
		return a.URL == b.URL
	case KindCheck, KindSelectOption:
		return a.PlaywrightCode == b.PlaywrightCode
	case KindStop:
		return a.Answer == b.Answer
	default:
		return false
	}
}

func sameTarget(a, b *Action) bool {
	switch {
	case a.ElementID != "" && b.ElementID != "":
		return a.ElementID == b.ElementID
	case a.ElementRole != "" && b.ElementRole != "":
		return a.ElementRole == b.ElementRole && a.ElementName == b.ElementName
	case a.PlaywrightCode != "" && b.PlaywrightCode != "":
		return a.PlaywrightCode == b.PlaywrightCode
	default:
		return false
	}
}

func scrollDirection(d string) string {
	if strings.Contains(strings.ToLower(d), "up") {
		return "up"
	}
	return "down"
}
