package format

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/rickchristie/trajwatch"
	"github.com/yuin/goldmark"
	"gopkg.in/yaml.v3"
)

// NoMatchFound replaces the description of a target element that is missing
// from the observation metadata.
const NoMatchFound = "No match found"

type markupConfig struct {
	markdown goldmark.Markdown
}

// MarkupOption configures [RenderActionMarkup].
type MarkupOption func(*markupConfig)

// WithMarkdownPrediction renders the raw prediction as Markdown instead of
// preformatted text. Raw HTML inside the prediction is not passed through.
func WithMarkdownPrediction() MarkupOption {
	return func(c *markupConfig) {
		c.markdown = goldmark.New()
	}
}

// RenderActionMarkup returns an HTML fragment describing one predicted action
// for the trajectory report.
//
// For the element-addressing modes the fragment holds the raw prediction, a
// dump of the parsed action and its action string. The target element is
// looked up in metadata; a missing entry renders as [NoMatchFound].
//
// Returns trajwatch.ErrUnknownMode for a mode outside the declared set.
func RenderActionMarkup(
	a *trajwatch.Action,
	metadata map[string]trajwatch.NodeInfo,
	mode trajwatch.Mode,
	opts ...MarkupOption,
) (string, error) {
	cfg := &markupConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	switch mode {
	case trajwatch.ModeAccessibilityTree:
		nodeContent := NoMatchFound
		if node, ok := metadata[a.ElementID]; ok {
			nodeContent = node.Text
		}
		actionStr, _ := ActionString(a, mode, nodeContent)
		return elementActionMarkup(cfg, a, actionStr), nil

	case trajwatch.ModeSetOfMark:
		actionStr, _ := ActionString(a, mode, "")
		return elementActionMarkup(cfg, a, actionStr), nil

	case trajwatch.ModePlaywright:
		return fmt.Sprintf(
			"<div class=\"parsed_action\"><pre>%s</pre></div>",
			html.EscapeString(a.PlaywrightCode),
		), nil

	default:
		return "", mode.Validate()
	}
}

func elementActionMarkup(cfg *markupConfig, a *trajwatch.Action, actionStr string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb,
		"<div class=\"raw_parsed_prediction\" style=\"background-color:grey\">%s</div>",
		predictionMarkup(cfg, a.RawPrediction))
	fmt.Fprintf(&sb,
		"<div class=\"action_object\" style=\"background-color:grey\"><pre>%s</pre></div>",
		html.EscapeString(dumpAction(a)))
	fmt.Fprintf(&sb,
		"<div class=\"parsed_action\" style=\"background-color:yellow\"><pre>%s</pre></div>",
		html.EscapeString(actionStr))
	return sb.String()
}

func predictionMarkup(cfg *markupConfig, raw string) string {
	if cfg.markdown != nil {
		var buf bytes.Buffer
		if err := cfg.markdown.Convert([]byte(raw), &buf); err == nil {
			return buf.String()
		}
	}
	return "<pre>" + html.EscapeString(raw) + "</pre>"
}

// dumpAction renders every populated field of a as YAML.
func dumpAction(a *trajwatch.Action) string {
	data, err := yaml.Marshal(a)
	if err != nil {
		return fmt.Sprintf("%+v", *a)
	}
	return strings.TrimRight(string(data), "\n")
}
