package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

var jul4 = time.Date(2025, 7, 4, 0, 0, 0, 0, time.UTC)

func TestNotePath(t *testing.T) {
	cfg := testConfig("/vault")
	got := NewDailyNoteStore(cfg).NotePath(jul4)
	want := filepath.Join("/vault", "daily", "2025-07-04.md")
	if got != want {
		t.Errorf("NotePath = %q, want %q", got, want)
	}
}

func TestUpdateNote_MissingNote(t *testing.T) {
	cfg := testConfig(t.TempDir())
	err := NewDailyNoteStore(cfg).UpdateNote("## 🌟 Focus Tasks\n", jul4)
	if !errors.Is(err, ErrDailyNoteNotFound) {
		t.Errorf("expected ErrDailyNoteNotFound, got %v", err)
	}
}

func TestUpdateNote_AppendsSectionWhenMarkersAbsent(t *testing.T) {
	vault := t.TempDir()
	path := writeNote(t, vault, "daily/2025-07-04.md", "# Friday\n\nSome journaling.\n\n\n")

	store := NewDailyNoteStore(testConfig(vault))
	if err := store.UpdateNote("## 🌟 Focus Tasks\nContent here\n", jul4); err != nil {
		t.Fatalf("UpdateNote failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading note back: %v", err)
	}
	want := "# Friday\n\nSome journaling.\n\n" +
		SectionBegin + "\n## 🌟 Focus Tasks\nContent here\n" + SectionEnd + "\n"
	if string(data) != want {
		t.Errorf("note = %q, want %q", data, want)
	}
}

func TestUpdateNote_ReplacesBetweenMarkers(t *testing.T) {
	vault := t.TempDir()
	before := "# Friday\n\n" +
		SectionBegin + "\nold briefing\n" + SectionEnd + "\n" +
		"\nNotes taken after the briefing stay put.\n"
	path := writeNote(t, vault, "daily/2025-07-04.md", before)

	store := NewDailyNoteStore(testConfig(vault))
	if err := store.UpdateNote("new briefing", jul4); err != nil {
		t.Fatalf("UpdateNote failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading note back: %v", err)
	}
	got := string(data)
	if !strings.Contains(got, SectionBegin+"\nnew briefing\n"+SectionEnd) {
		t.Errorf("section not replaced: %q", got)
	}
	if strings.Contains(got, "old briefing") {
		t.Error("old section content survived")
	}
	if !strings.HasPrefix(got, "# Friday\n\n") {
		t.Errorf("content before the section changed: %q", got)
	}
	if !strings.HasSuffix(got, "\nNotes taken after the briefing stay put.\n") {
		t.Errorf("content after the section changed: %q", got)
	}
}

func TestUpdateNote_SecondWriteIsStable(t *testing.T) {
	vault := t.TempDir()
	path := writeNote(t, vault, "daily/2025-07-04.md", "# Friday\n")
	store := NewDailyNoteStore(testConfig(vault))

	if err := store.UpdateNote("briefing\n", jul4); err != nil {
		t.Fatalf("first write failed: %v", err)
	}
	first, _ := os.ReadFile(path)

	if err := store.UpdateNote("briefing\n", jul4); err != nil {
		t.Fatalf("second write failed: %v", err)
	}
	second, _ := os.ReadFile(path)

	if string(first) != string(second) {
		t.Errorf("repeated write changed the note:\nfirst:  %q\nsecond: %q", first, second)
	}
}

func TestReplaceSection_BeginWithoutEndAppends(t *testing.T) {
	text := "# Note\n" + SectionBegin + " stray marker in prose\n"
	got := ReplaceSection(text, "content")
	if !strings.HasSuffix(got, SectionBegin+"\ncontent\n"+SectionEnd+"\n") {
		t.Errorf("unpaired marker not treated as absent: %q", got)
	}
	if !strings.HasPrefix(got, text[:len(text)-1]) {
		t.Errorf("original text not preserved: %q", got)
	}
}
