package core

import (
	"regexp"
	"strings"
)

// Section headings expected in a summarizer reply. The parser matches them
// loosely: any "## " heading containing the distinguishing phrase counts.
const (
	FocusHeading = "## 🌟 Focus Tasks"
	NudgeHeading = "## 🐝 Nudge"
	QuoteHeading = "## 🔒 Lock Screen Quote"
)

// SelectedTask is one task the summarizer chose for today.
type SelectedTask struct {
	Text   string
	Path   string
	ID     string
	Reason string
}

// BriefingReply is the structured form of a summarizer reply. Any section
// the reply lacks is simply empty; the parser never fails.
type BriefingReply struct {
	Selected []SelectedTask
	Nudge    string
	Quote    string
}

// Ordered alternatives for a focus-task line. The first form carries an
// identifier and an optional trailing reason; the fallback has no
// identifier. Lines matching neither are ignored.
var (
	focusLineRe = regexp.MustCompile(`^\s*\d+[.)]\s*"(.+)"\s+in\s+(\S+)\s+\(ID:\s*([0-9A-Za-z]{6})\)\s*(?:[—–-]+\s*(.*))?$`)
	focusBareRe = regexp.MustCompile(`^\s*\d+[.)]\s*"(.+)"\s+in\s+(\S+)\s*(?:[—–-]+\s*(.*))?$`)
)

// ParseBriefingReply extracts the selected-task block, nudge and lock-screen
// quote from a loosely structured summarizer reply. The reply format is
// requested in the prompt but not guaranteed: sections may be missing or
// reordered, the reason field may be absent, and the selection count is
// whatever the summarizer chose.
func ParseBriefingReply(reply string) BriefingReply {
	var parsed BriefingReply

	section := ""
	var nudge, quote []string
	for _, line := range strings.Split(reply, "\n") {
		if strings.HasPrefix(line, "## ") {
			switch {
			case strings.Contains(line, "Focus Tasks"):
				section = "focus"
			case strings.Contains(line, "Nudge"):
				section = "nudge"
			case strings.Contains(line, "Lock Screen"):
				section = "quote"
			default:
				section = ""
			}
			continue
		}

		switch section {
		case "focus":
			if sel, ok := parseFocusLine(line); ok {
				parsed.Selected = append(parsed.Selected, sel)
			}
		case "nudge":
			nudge = append(nudge, line)
		case "quote":
			quote = append(quote, line)
		}
	}

	parsed.Nudge = strings.TrimSpace(strings.Join(nudge, "\n"))
	parsed.Quote = strings.TrimSpace(strings.Join(quote, "\n"))
	return parsed
}

func parseFocusLine(line string) (SelectedTask, bool) {
	if m := focusLineRe.FindStringSubmatch(line); m != nil {
		return SelectedTask{Text: m[1], Path: m[2], ID: m[3], Reason: strings.TrimSpace(m[4])}, true
	}
	if m := focusBareRe.FindStringSubmatch(line); m != nil {
		return SelectedTask{Text: m[1], Path: m[2], Reason: strings.TrimSpace(m[3])}, true
	}
	return SelectedTask{}, false
}
