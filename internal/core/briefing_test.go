package core

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/drapaimern/msbee/pkg/models"
)

// fakeCompleter returns a canned reply and records the prompt it was given.
type fakeCompleter struct {
	reply  string
	err    error
	prompt string
}

func (f *fakeCompleter) Complete(_ context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.reply, f.err
}

func briefingTasks() []*models.Task {
	return []*models.Task{
		{RawText: "Do the thing 🆔 abc123", Location: "folder1/file1.md", ID: "abc123"},
		{RawText: "Write report 🆔 def456", Location: "folder2/file2.md", ID: "def456"},
		{RawText: "Plan project 🆔 ghi789", Location: "folder3/file3.md", ID: "ghi789"},
	}
}

func TestBuildBriefingPrompt(t *testing.T) {
	prompt := BuildBriefingPrompt(briefingTasks(), "- Ship the quarter")

	for _, want := range []string{
		"- [ ] Do the thing 🆔 abc123 (in folder1/file1.md) (ID: abc123)",
		"- [ ] Write report 🆔 def456 (in folder2/file2.md) (ID: def456)",
		"- Ship the quarter",
		FocusHeading,
		NudgeHeading,
		QuoteHeading,
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestBuildBriefingPrompt_TaskWithoutID(t *testing.T) {
	tasks := []*models.Task{{RawText: "Unstamped", Location: "inbox.md"}}
	prompt := BuildBriefingPrompt(tasks, "roadmap")
	if !strings.Contains(prompt, "- [ ] Unstamped (in inbox.md)\n") {
		t.Errorf("prompt = %q", prompt)
	}
	if strings.Contains(prompt, "(ID: )") {
		t.Error("prompt contains an empty ID clause")
	}
}

func TestGenerateBriefing_AllSelected(t *testing.T) {
	completer := &fakeCompleter{reply: fullReply}
	briefing, err := NewBriefer(completer).GenerateBriefing(context.Background(), briefingTasks(), "roadmap")
	if err != nil {
		t.Fatalf("GenerateBriefing failed: %v", err)
	}

	for _, id := range []string{"abc123", "def456", "ghi789"} {
		if !strings.Contains(briefing, "id includes "+id) {
			t.Errorf("briefing missing query fragment for %s", id)
		}
	}
	if got := strings.Count(briefing, "```tasks"); got != 1 {
		t.Errorf("briefing has %d tasks blocks, want 1", got)
	}
	if got := strings.Count(briefing, "(ID: "); got != 3 {
		t.Errorf("briefing lists %d IDs, want 3", got)
	}
	if !strings.Contains(briefing, "Keep going!") {
		t.Error("briefing missing nudge")
	}
	if !strings.Contains(briefing, `"You got this!"`) {
		t.Error("briefing missing lock screen quote")
	}
}

func TestGenerateBriefing_PartialSelection(t *testing.T) {
	reply := `
## 🌟 Focus Tasks
1. "Do the thing 🆔 abc123" in folder1/file1.md (ID: abc123) — Most urgent
2. "Plan project 🆔 ghi789" in folder3/file3.md (ID: ghi789) — Important for roadmap

## 🐝 Nudge
Keep going!

## 🔒 Lock Screen Quote
"You got this!"
`
	completer := &fakeCompleter{reply: reply}
	briefing, err := NewBriefer(completer).GenerateBriefing(context.Background(), briefingTasks(), "roadmap")
	if err != nil {
		t.Fatalf("GenerateBriefing failed: %v", err)
	}

	if !strings.Contains(briefing, "id includes abc123") || !strings.Contains(briefing, "id includes ghi789") {
		t.Error("briefing missing selected query fragments")
	}
	if strings.Contains(briefing, "id includes def456") {
		t.Error("briefing contains a fragment for an unselected task")
	}
	if got := strings.Count(briefing, "(ID: "); got != 2 {
		t.Errorf("briefing lists %d IDs, want 2", got)
	}
	if got := strings.Count(briefing, "in folder"); got != 2 {
		t.Errorf("briefing lists %d task locations, want 2", got)
	}
}

func TestGenerateBriefing_EmptyReply(t *testing.T) {
	completer := &fakeCompleter{reply: "I could not pick anything today."}
	briefing, err := NewBriefer(completer).GenerateBriefing(context.Background(), briefingTasks(), "roadmap")
	if err != nil {
		t.Fatalf("GenerateBriefing failed: %v", err)
	}

	// Layout stays stable: all three headings present, no query block.
	for _, heading := range []string{FocusHeading, NudgeHeading, QuoteHeading} {
		if !strings.Contains(briefing, heading) {
			t.Errorf("briefing missing heading %q", heading)
		}
	}
	if strings.Contains(briefing, "```tasks") {
		t.Error("briefing contains a query block with no selections")
	}
}

func TestGenerateBriefing_SummarizerError(t *testing.T) {
	callErr := errors.New("boom")
	completer := &fakeCompleter{err: callErr}
	_, err := NewBriefer(completer).GenerateBriefing(context.Background(), briefingTasks(), "roadmap")
	if !errors.Is(err, callErr) {
		t.Errorf("expected the summarizer error to surface, got %v", err)
	}
}

func TestComposeBriefing_SingleSelectionBareQuery(t *testing.T) {
	briefing := ComposeBriefing(BriefingReply{
		Selected: []SelectedTask{{Text: "Do the thing", Path: "a.md", ID: "abc123"}},
		Nudge:    "Go",
	})
	if !strings.Contains(briefing, "```tasks\nid includes abc123\n```") {
		t.Errorf("briefing = %q", briefing)
	}
}
