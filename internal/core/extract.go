package core

import (
	"sort"
	"strings"
	"time"

	"github.com/drapaimern/msbee/pkg/models"
)

// NoteSource walks the note files of a vault. Implementations must exclude
// the templates subtree and return an error for any file that cannot be
// decoded as UTF-8 text; that error aborts the whole extraction, no partial
// results are produced. This interface is defined locally in core to avoid
// importing storage.
type NoteSource interface {
	WalkNotes(fn func(path string, lines []string) error) error
}

// Extractor builds the vault-wide task graph and filters it down to the
// tasks actionable on a given date.
type Extractor struct {
	notes NoteSource
}

// NewExtractor creates an Extractor over the given note source.
func NewExtractor(notes NoteSource) *Extractor {
	return &Extractor{notes: notes}
}

// ExtractTasks scans every note, builds task records keyed by clean key,
// resolves dependency references, propagates completion, and returns the
// tasks eligible for today, ordered by location then text.
//
// When two lines in the vault reduce to the same clean key, the most
// recently scanned one wins; this is deliberate, deterministic, scan-order
// dependent behavior (see DESIGN.md).
func (e *Extractor) ExtractTasks(today time.Time) ([]*models.Task, error) {
	arena := make(map[string]*models.Task)
	completed := make(map[string]struct{})

	// Pass 1: collect open tasks and completed clean keys.
	err := e.notes.WalkNotes(func(path string, lines []string) error {
		for _, line := range lines {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			if body, ok := strings.CutPrefix(line, CompletedTaskPrefix+" "); ok {
				completed[CleanTaskText(strings.TrimSpace(body))] = struct{}{}
				continue
			}
			if body, ok := strings.CutPrefix(line, OpenTaskPrefix+" "); ok {
				body = strings.TrimSpace(body)
				arena[CleanTaskText(body)] = ParseOpenTask(body, path)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Pass 2: resolve dependency keys, dropping any reference that never
	// matched anything. A key matching a completed line is kept: the
	// reference still exists and keeps blocking even though its target is
	// done, per the literal eligibility rule.
	for _, task := range arena {
		resolved := make(map[string]struct{}, len(task.Dependencies))
		for key := range task.Dependencies {
			if _, ok := arena[key]; ok {
				resolved[key] = struct{}{}
				continue
			}
			if _, ok := completed[key]; ok {
				resolved[key] = struct{}{}
			}
		}
		task.Dependencies = resolved
	}

	// Pass 3: propagate completion. A task that appears open in one file
	// and completed in another ends up completed.
	for key := range completed {
		if task, ok := arena[key]; ok {
			task.Completed = true
		}
	}

	// Pass 4: keep only eligible tasks, in a stable order.
	var eligible []*models.Task
	for _, task := range arena {
		if task.IsEligible(today) {
			eligible = append(eligible, task)
		}
	}
	sort.Slice(eligible, func(i, j int) bool {
		if eligible[i].Location != eligible[j].Location {
			return eligible[i].Location < eligible[j].Location
		}
		return eligible[i].RawText < eligible[j].RawText
	})
	return eligible, nil
}
