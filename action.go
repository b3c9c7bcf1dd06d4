package trajwatch

import (
	"fmt"
	"strings"
)

// ActionKind is the kind of an [Action].
//
// The set is closed. Code that branches on ActionKind should use an exhaustive
// switch so that adding a kind surfaces every place that needs updating.
type ActionKind int

const (
	// KindNone marks a prediction that could not be parsed into a valid action.
	KindNone ActionKind = iota
	KindScroll
	KindKeyPress
	KindClick
	KindType
	KindHover
	KindPageFocus
	KindNewTab
	KindGoBack
	KindGoForward
	KindGotoURL
	KindPageClose
	KindCheck
	KindSelectOption
	KindStop
)

var actionKindNames = [...]string{
	KindNone:         "none",
	KindScroll:       "scroll",
	KindKeyPress:     "key_press",
	KindClick:        "click",
	KindType:         "type",
	KindHover:        "hover",
	KindPageFocus:    "page_focus",
	KindNewTab:       "new_tab",
	KindGoBack:       "go_back",
	KindGoForward:    "go_forward",
	KindGotoURL:      "goto_url",
	KindPageClose:    "page_close",
	KindCheck:        "check",
	KindSelectOption: "select_option",
	KindStop:         "stop",
}

// String returns the lower snake name of the action kind.
func (t ActionKind) String() string {
	if t < 0 || int(t) >= len(actionKindNames) {
		return fmt.Sprintf("ActionKind(%d)", int(t))
	}
	return actionKindNames[t]
}

// Valid reports whether t is one of the declared action kinds.
func (t ActionKind) Valid() bool {
	return t >= 0 && int(t) < len(actionKindNames)
}

// ParseActionKind maps a name produced by [ActionKind.String] back to its kind.
// Matching is case-insensitive.
func ParseActionKind(name string) (ActionKind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range actionKindNames {
		if n == name {
			return ActionKind(i), nil
		}
	}
	return KindNone, fmt.Errorf("%w: %q", ErrUnknownActionKind, name)
}

// MarshalText implements encoding.TextMarshaler.
func (t ActionKind) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownActionKind, int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *ActionKind) UnmarshalText(text []byte) error {
	parsed, err := ParseActionKind(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Action is one predicted step of the agent.
//
// Only Type, ElementID and RawPrediction are consulted by loop detection. The
// remaining fields carry the kind-specific payload and are empty when they do
// not apply to Type.
type Action struct {
	Type ActionKind `yaml:"action_type"`

	// ElementID is the target identifier from the observation, e.g. "12".
	ElementID string `yaml:"element_id,omitempty"`

	// ElementRole and ElementName address a target by accessibility role when
	// no ElementID is available.
	ElementRole string `yaml:"element_role,omitempty"`
	ElementName string `yaml:"element_name,omitempty"`

	// RawPrediction is the unparsed text the agent produced for this step.
	RawPrediction string `yaml:"raw_prediction,omitempty"`

	Text           string `yaml:"text,omitempty"`
	Direction      string `yaml:"direction,omitempty"`
	KeyComb        string `yaml:"key_comb,omitempty"`
	URL            string `yaml:"url,omitempty"`
	PageNumber     int    `yaml:"page_number,omitempty"`
	Answer         string `yaml:"answer,omitempty"`
	PlaywrightCode string `yaml:"pw_code,omitempty"`
}

// NewStopAction creates a STOP action carrying answer.
func NewStopAction(answer string) *Action {
	return &Action{Type: KindStop, Answer: answer}
}

// IsParseFailure reports whether the agent output could not be mapped to an action.
func (a *Action) IsParseFailure() bool {
	return a.Type == KindNone
}

func (*Action) trajectoryElement() {}
