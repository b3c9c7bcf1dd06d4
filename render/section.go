package render

import (
	"encoding/base64"
	"fmt"
	"html"
	"strings"

	"github.com/rickchristie/trajwatch"
)

type sectionInput struct {
	step         int
	state        *trajwatch.State
	prevState    *trajwatch.State
	prevAction   string
	actionMarkup string
	includeImage bool
	includeDiff  bool
}

// renderSection builds the markup of one step.
func renderSection(in sectionInput) string {
	var sb strings.Builder
	url := html.EscapeString(in.state.URL)

	fmt.Fprintf(&sb, "<section class=\"step\" data-step=\"%d\">\n", in.step)
	sb.WriteString("<h2>New Page</h2>\n")
	fmt.Fprintf(&sb, "<h3 class=\"url\"><a href=\"%s\">URL: %s</a></h3>\n", url, url)
	fmt.Fprintf(&sb, "<div class=\"state_obv\"><pre>%s</pre></div>\n",
		html.EscapeString(in.state.Observation.Text))

	if in.includeDiff {
		if diff := trajwatch.ObservationDiff(in.prevState, in.state); diff != "" {
			fmt.Fprintf(&sb, "<div class=\"observation_diff\"><pre>%s</pre></div>\n",
				html.EscapeString(diff))
		}
	}

	if img := in.state.Observation.Image; in.includeImage && img != nil && len(img.Data) > 0 {
		mime := img.MIMEType
		if mime == "" {
			mime = "image/png"
		}
		fmt.Fprintf(&sb, "<img src=\"data:%s;base64,%s\" style=\"width:50vw; height:auto;\"/>\n",
			html.EscapeString(mime), base64.StdEncoding.EncodeToString(img.Data))
	}

	fmt.Fprintf(&sb, "<div class=\"prev_action\" style=\"background-color:pink\">%s</div>\n",
		html.EscapeString(in.prevAction))
	fmt.Fprintf(&sb, "<div class=\"predict_action\">%s</div>\n", in.actionMarkup)
	sb.WriteString("</section>\n")
	return sb.String()
}
