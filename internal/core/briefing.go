package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/drapaimern/msbee/pkg/models"
)

// ChatCompleter is the external summarizer collaborator: an opaque function
// from a prompt to loosely structured text. This interface is defined
// locally in core to avoid importing integration.
type ChatCompleter interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Briefer turns eligible tasks and the roadmap into the daily briefing
// section: it prompts the summarizer, parses the reply, and composes the
// final markdown including the Obsidian Tasks query for the selected tasks.
type Briefer struct {
	completer ChatCompleter
}

// NewBriefer creates a Briefer backed by the given summarizer.
func NewBriefer(completer ChatCompleter) *Briefer {
	return &Briefer{completer: completer}
}

// BuildBriefingPrompt renders the summarizer prompt: the eligible tasks with
// their vault-relative locations and identifiers, the roadmap, and the reply
// format the parser expects.
func BuildBriefingPrompt(tasks []*models.Task, roadmap string) string {
	var lines []string
	for _, t := range tasks {
		desc := fmt.Sprintf("- [ ] %s (in %s)", t.RawText, t.Location)
		if t.ID != "" {
			desc += fmt.Sprintf(" (ID: %s)", t.ID)
		}
		lines = append(lines, desc)
	}

	return fmt.Sprintf(`You are MsBee, a gentle but clever assistant.
Here are some open tasks:
%s

And here's the user's high-level roadmap:
%s

Pick up to three tasks to focus on today, then write a motivational nudge
and a fun one-liner that could go on a lock screen.
Respond in Markdown like this:

## 🌟 Focus Tasks
1. "<task text>" in <path> (ID: <id>) — why you picked it

## 🐝 Nudge
Your message here

## 🔒 Lock Screen Quote
"Your one-liner here"
`, strings.Join(lines, "\n"), roadmap)
}

// GenerateBriefing runs the full summarizer round trip and returns the
// markdown destined for the daily note's marked section. A reply missing
// sections yields a briefing with the corresponding parts empty; only the
// summarizer call itself can fail.
func (b *Briefer) GenerateBriefing(ctx context.Context, tasks []*models.Task, roadmap string) (string, error) {
	prompt := BuildBriefingPrompt(tasks, roadmap)
	reply, err := b.completer.Complete(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("asking summarizer: %w", err)
	}
	return ComposeBriefing(ParseBriefingReply(reply)), nil
}

// ComposeBriefing renders the parsed reply into the generated section:
// the selected tasks, a tasks query block matching their identifiers,
// the nudge, and the lock-screen quote. Sections the reply lacked come out
// empty rather than being dropped, keeping the layout stable.
func ComposeBriefing(reply BriefingReply) string {
	var sb strings.Builder

	sb.WriteString(FocusHeading + "\n")
	var ids []string
	for i, sel := range reply.Selected {
		line := fmt.Sprintf("%d. \"%s\" in %s", i+1, sel.Text, sel.Path)
		if sel.ID != "" {
			line += fmt.Sprintf(" (ID: %s)", sel.ID)
			ids = append(ids, sel.ID)
		}
		if sel.Reason != "" {
			line += " — " + sel.Reason
		}
		sb.WriteString(line + "\n")
	}

	if query := BuildTasksQuery(ids); query != "" {
		sb.WriteString("\n```tasks\n" + query + "\n```\n")
	}

	sb.WriteString("\n" + NudgeHeading + "\n" + reply.Nudge + "\n")
	sb.WriteString("\n" + QuoteHeading + "\n" + reply.Quote + "\n")

	return sb.String()
}
