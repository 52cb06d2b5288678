package core

import (
	"errors"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/drapaimern/msbee/pkg/models"
)

// memNotes is an in-memory NoteSource for extraction tests. Files are
// walked in path order, matching the deterministic on-disk walk.
type memNotes struct {
	files map[string]string
	err   error
}

func (m *memNotes) WalkNotes(fn func(path string, lines []string) error) error {
	if m.err != nil {
		return m.err
	}
	paths := make([]string, 0, len(m.files))
	for p := range m.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	for _, p := range paths {
		if err := fn(p, strings.Split(m.files[p], "\n")); err != nil {
			return err
		}
	}
	return nil
}

func extractFrom(t *testing.T, files map[string]string, today time.Time) []*models.Task {
	t.Helper()
	tasks, err := NewExtractor(&memNotes{files: files}).ExtractTasks(today)
	if err != nil {
		t.Fatalf("ExtractTasks failed: %v", err)
	}
	return tasks
}

func rawTexts(tasks []*models.Task) []string {
	texts := make([]string, len(tasks))
	for i, task := range tasks {
		texts[i] = task.RawText
	}
	return texts
}

var jan1 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestExtractTasks_BasicExtraction(t *testing.T) {
	files := map[string]string{
		"notes.md": "- [ ] A\n- [ ] B 📅 2099-01-01\n- [x] C",
	}
	tasks := extractFrom(t, files, jan1)

	if got := rawTexts(tasks); len(got) != 1 || got[0] != "A" {
		t.Errorf("eligible set = %v, want [A]", got)
	}
}

func TestExtractTasks_DependencyChain(t *testing.T) {
	files := map[string]string{
		"chain.md": "- [ ] X ⏭️ Y\n- [ ] Y ⏭️ Z\n- [ ] Z",
	}
	tasks := extractFrom(t, files, jan1)

	if got := rawTexts(tasks); len(got) != 1 || got[0] != "Z" {
		t.Errorf("eligible set = %v, want [Z]", got)
	}
}

func TestExtractTasks_CompletedDependencyStillBlocks(t *testing.T) {
	files := map[string]string{
		"a.md": "- [x] Y\n- [ ] X ⏭️ Y",
	}
	tasks := extractFrom(t, files, jan1)

	// Y matched a completed line, so X's reference survives resolution
	// and its non-empty dependency set disqualifies it.
	if len(tasks) != 0 {
		t.Errorf("eligible set = %v, want empty", rawTexts(tasks))
	}
}

func TestExtractTasks_OpenAndCompletedDuplicate(t *testing.T) {
	files := map[string]string{
		"a.md": "- [x] Y\n- [ ] Y\n- [ ] X ⏭️ Y",
	}
	tasks := extractFrom(t, files, jan1)

	// Y's open record is marked completed by propagation, and X still
	// holds its reference, so nothing is eligible.
	if len(tasks) != 0 {
		t.Errorf("eligible set = %v, want empty", rawTexts(tasks))
	}
}

func TestExtractTasks_DanglingDependencyDropped(t *testing.T) {
	files := map[string]string{
		"notes.md": "- [ ] X ⏭️ Nothing matches this",
	}
	tasks := extractFrom(t, files, jan1)

	// The reference never resolved, so it is dropped and X is eligible.
	if got := rawTexts(tasks); len(got) != 1 || got[0] != "X ⏭️ Nothing matches this" {
		t.Errorf("eligible set = %v, want the dangling-ref task", got)
	}
	if len(tasks[0].Dependencies) != 0 {
		t.Errorf("dependencies = %v, want empty", tasks[0].Dependencies)
	}
}

func TestExtractTasks_CompletionPropagatesAcrossFiles(t *testing.T) {
	files := map[string]string{
		"open.md": "- [ ] Stale duplicate 🆔 abc123",
		"done.md": "- [x] Stale duplicate 🆔 abc123",
	}
	tasks := extractFrom(t, files, jan1)

	if len(tasks) != 0 {
		t.Errorf("expected the open duplicate to be marked completed, got %v", rawTexts(tasks))
	}
}

func TestExtractTasks_DuplicateCleanKeyLastWins(t *testing.T) {
	files := map[string]string{
		"a.md": "- [ ] Same task 📅 2099-01-01",
		"b.md": "- [ ] Same task",
	}
	tasks := extractFrom(t, files, jan1)

	// b.md is scanned after a.md, so its record (no date) survives.
	if got := rawTexts(tasks); len(got) != 1 || got[0] != "Same task" {
		t.Errorf("eligible set = %v, want the later record", got)
	}
	if tasks[0].Location != "b.md" {
		t.Errorf("location = %q, want b.md", tasks[0].Location)
	}
}

func TestExtractTasks_ReportsLocationAndID(t *testing.T) {
	files := map[string]string{
		"projects/work.md": "- [ ] Write report 🆔 def456",
	}
	tasks := extractFrom(t, files, jan1)

	if len(tasks) != 1 {
		t.Fatalf("eligible set = %v", rawTexts(tasks))
	}
	if tasks[0].Location != "projects/work.md" {
		t.Errorf("location = %q", tasks[0].Location)
	}
	if tasks[0].ID != "def456" {
		t.Errorf("ID = %q", tasks[0].ID)
	}
}

func TestExtractTasks_WalkErrorIsFatal(t *testing.T) {
	walkErr := errors.New("unreadable note")
	_, err := NewExtractor(&memNotes{err: walkErr}).ExtractTasks(jan1)
	if !errors.Is(err, walkErr) {
		t.Errorf("expected the walk error to abort extraction, got %v", err)
	}
}

func TestExtractTasks_StableOrder(t *testing.T) {
	files := map[string]string{
		"b.md": "- [ ] Second file task",
		"a.md": "- [ ] Beta\n- [ ] Alpha",
	}
	tasks := extractFrom(t, files, jan1)

	want := []string{"Alpha", "Beta", "Second file task"}
	got := rawTexts(tasks)
	if len(got) != len(want) {
		t.Fatalf("eligible set = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("order[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestExtractTasks_SelfReferenceBlocks(t *testing.T) {
	// A task whose dependency text cleans to its own key resolves to
	// itself and stays blocked forever; cycles are never broken.
	files := map[string]string{
		"loop.md": "- [ ] Ouroboros ⏭️ Ouroboros",
	}
	tasks := extractFrom(t, files, jan1)
	if len(tasks) != 0 {
		t.Errorf("eligible set = %v, want empty", rawTexts(tasks))
	}
}
