package format

import (
	"fmt"
	"strings"

	"github.com/rickchristie/trajwatch"
)

// ActionString renders a in the action grammar of mode. nodeContent describes
// the target element and is appended as a "where [id] is ..." clause for
// element actions when non-empty.
//
// Returns trajwatch.ErrUnknownMode for a mode outside the declared set.
func ActionString(a *trajwatch.Action, mode trajwatch.Mode, nodeContent string) (string, error) {
	switch mode {
	case trajwatch.ModeAccessibilityTree, trajwatch.ModeSetOfMark:
		return idActionString(a, nodeContent), nil
	case trajwatch.ModePlaywright:
		return a.PlaywrightCode, nil
	default:
		return "", mode.Validate()
	}
}

func idActionString(a *trajwatch.Action, nodeContent string) string {
	id := a.ElementID
	where := ""
	if nodeContent != "" {
		where = fmt.Sprintf(" where [%s] is %s", id, nodeContent)
	}

	switch a.Type {
	case trajwatch.KindClick:
		return fmt.Sprintf("click [%s]%s", id, where)
	case trajwatch.KindType:
		text := strings.ReplaceAll(a.Text, "\n", " ")
		return fmt.Sprintf("type [%s] [%s]%s", id, text, where)
	case trajwatch.KindHover:
		return fmt.Sprintf("hover [%s]%s", id, where)
	case trajwatch.KindScroll:
		return fmt.Sprintf("scroll [%s]", a.Direction)
	case trajwatch.KindKeyPress:
		return fmt.Sprintf("press [%s]", a.KeyComb)
	case trajwatch.KindGotoURL:
		return fmt.Sprintf("goto [%s]", a.URL)
	case trajwatch.KindNewTab:
		return "new_tab"
	case trajwatch.KindPageClose:
		return "close_tab"
	case trajwatch.KindGoBack:
		return "go_back"
	case trajwatch.KindGoForward:
		return "go_forward"
	case trajwatch.KindPageFocus:
		return fmt.Sprintf("page_focus [%d]", a.PageNumber)
	case trajwatch.KindCheck, trajwatch.KindSelectOption:
		return fmt.Sprintf("%s [%s]", a.Type, a.PlaywrightCode)
	case trajwatch.KindStop:
		return fmt.Sprintf("stop [%s]", a.Answer)
	case trajwatch.KindNone:
		return "none"
	default:
		return a.Type.String()
	}
}
