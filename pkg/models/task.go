package models

import "time"

// Task represents one open checklist line found somewhere in the vault.
// Tasks are keyed across the whole vault by their clean key (the line text
// with all metadata markers stripped); two lines that reduce to the same
// clean key are the same logical task.
type Task struct {
	// RawText is the original line body after the checkbox prefix,
	// including all inline metadata markers. Immutable once parsed.
	RawText string

	// Location is the path of the file containing the line.
	Location string

	// ID is the optional 6-character alphanumeric identifier stamped onto
	// the line (🆔 marker). Empty if the line carries none.
	ID string

	// StartDate is the earliest actionable date, taken from the 🛫 marker
	// or, when 🛫 is absent, the 📅 marker. Nil when neither is present
	// or the value is unparseable.
	StartDate *time.Time

	// Dependencies holds the clean keys of tasks this task waits on.
	// After graph resolution it contains only keys that matched an open
	// task record or a completed line; dangling references are dropped.
	Dependencies map[string]struct{}

	// Completed is set during completion propagation when the same clean
	// key also appears as a completed line anywhere in the vault.
	Completed bool
}

// IsEligible reports whether the task is actionable on the given date.
//
// A task with a non-empty dependency set is never eligible, even when every
// dependency is itself completed. Completion propagation only flips the
// Completed flag on task records, never prunes dependency sets, so the mere
// existence of a recorded dependency disqualifies the task. This matches the
// long-standing observed behavior; see DESIGN.md before changing it.
func (t *Task) IsEligible(today time.Time) bool {
	if t.Completed {
		return false
	}
	if t.StartDate != nil && t.StartDate.After(today) {
		return false
	}
	if len(t.Dependencies) > 0 {
		return false
	}
	return true
}
