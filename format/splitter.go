package format

import (
	"errors"
	"regexp"
	"strings"
)

// ErrNoAction is returned when a prediction holds no delimited action.
var ErrNoAction = errors.New("no action found in prediction")

// SplitterPrompt is a [PromptContext] for prompts that ask the agent to wrap
// its action in a pair of splitter strings.
type SplitterPrompt struct {
	splitter string
	pattern  *regexp.Regexp
}

// NewSplitterPrompt creates a SplitterPrompt for splitter, e.g. "```".
// Panics if splitter is empty.
func NewSplitterPrompt(splitter string) *SplitterPrompt {
	if splitter == "" {
		panic("trajwatch: splitter must not be empty")
	}
	q := regexp.QuoteMeta(splitter)
	return &SplitterPrompt{
		splitter: splitter,
		pattern:  regexp.MustCompile(`(?s)` + q + `(.*?)` + q),
	}
}

// ActionSplitter implements PromptContext.
func (p *SplitterPrompt) ActionSplitter() string {
	return p.splitter
}

// ExtractAction returns the trimmed text between the first pair of splitters.
func (p *SplitterPrompt) ExtractAction(response string) (string, error) {
	m := p.pattern.FindStringSubmatch(response)
	if m == nil {
		return "", ErrNoAction
	}
	return strings.TrimSpace(m[1]), nil
}

var _ PromptContext = (*SplitterPrompt)(nil)
