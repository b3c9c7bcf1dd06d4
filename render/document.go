package render

import (
	"errors"
	"html"
	"strings"

	"github.com/rickchristie/trajwatch/config"
)

// ErrCorruptDocument is returned when the report no longer holds the body
// written by the Renderer, e.g. because another writer touched the file.
var ErrCorruptDocument = errors.New("render: document body not found")

const (
	bodyOpen = "<body>\n"
	bodyEnd  = "</body>"

	documentHead = "<!DOCTYPE html>\n" +
		"<html>\n" +
		"<head>\n" +
		"<meta charset=\"utf-8\">\n" +
		"<style>\n" +
		"pre {\n" +
		"    white-space: pre-wrap;\n" +
		"    word-wrap: break-word;\n" +
		"}\n" +
		"</style>\n" +
		"</head>\n" +
		bodyOpen

	documentTail = bodyEnd + "\n</html>\n"
)

// buildDocument wraps body in the static shell.
func buildDocument(body string) string {
	return documentHead + body + documentTail
}

// extractBody returns the content between the body tags of doc. Every text
// written into the body is escaped, so the last closing tag is the shell's.
func extractBody(doc string) (string, error) {
	start := strings.Index(doc, bodyOpen)
	end := strings.LastIndex(doc, bodyEnd)
	if start < 0 || end < start+len(bodyOpen) {
		return "", ErrCorruptDocument
	}
	return doc[start+len(bodyOpen) : end], nil
}

// runHeader renders the run configuration as "key: value" lines.
func runHeader(run *config.RunConfig) string {
	var sb strings.Builder
	sb.WriteString("<pre class=\"run_config\">")
	for _, p := range run.Params {
		sb.WriteString(html.EscapeString(p.Key))
		sb.WriteString(": ")
		sb.WriteString(html.EscapeString(p.Value))
		sb.WriteString("\n")
	}
	sb.WriteString("</pre>\n")
	return sb.String()
}
