package trajwatch

import (
	"fmt"
	"strings"
)

// Mode is the action space the agent uses, which also decides how actions are
// rendered and described.
type Mode string

const (
	// ModeAccessibilityTree addresses elements by the ids of an accessibility
	// tree observation.
	ModeAccessibilityTree Mode = "id_accessibility_tree"

	// ModeSetOfMark addresses elements by marks drawn over a screenshot.
	ModeSetOfMark Mode = "set_of_mark"

	// ModePlaywright predicts raw Playwright code.
	ModePlaywright Mode = "playwright"
)

// Modes lists every declared mode.
var Modes = []Mode{ModeAccessibilityTree, ModeSetOfMark, ModePlaywright}

// Validate returns ErrUnknownMode if m is not a declared mode.
func (m Mode) Validate() error {
	switch m {
	case ModeAccessibilityTree, ModeSetOfMark, ModePlaywright:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMode, string(m))
	}
}

// ParseMode converts a configuration string into a Mode.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.TrimSpace(s))
	if err := m.Validate(); err != nil {
		return "", err
	}
	return m, nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
