// Package core contains the business logic for msbee: task-line parsing,
// identifier stamping, vault-wide task extraction with dependency
// resolution, and briefing generation from the summarizer reply.
package core

import (
	"regexp"
	"strings"
	"time"

	"github.com/drapaimern/msbee/pkg/models"
)

// Inline metadata markers recognized on task lines. Each marker is followed
// by a single space and a value running to the next marker or end of line.
const (
	MarkerCreated    = "➕" // creation/priority date
	MarkerDue        = "📅" // due date, YYYY-MM-DD
	MarkerDependency = "⏭️" // free-text reference to another task
	MarkerBlocked    = "⛔"
	MarkerID         = "🆔" // exactly 6 alphanumeric characters
	MarkerStart      = "🛫" // start date, YYYY-MM-DD
)

// cleanMarkers is the truncation set for CleanTaskText, in the order the
// cuts are applied. 🛫 is deliberately not part of this set: start dates
// survive into the clean key, matching how tasks have always been matched.
var cleanMarkers = []string{
	" " + MarkerCreated + " ",
	" " + MarkerDue + " ",
	" " + MarkerDependency + " ",
	" " + MarkerBlocked + " ",
	" " + MarkerID + " ",
}

// allMarkers bounds metadata values: a value runs until the next occurrence
// of any marker or the end of the line.
var allMarkers = []string{
	" " + MarkerCreated + " ",
	" " + MarkerDue + " ",
	" " + MarkerDependency + " ",
	" " + MarkerBlocked + " ",
	" " + MarkerID + " ",
	" " + MarkerStart + " ",
}

var (
	startDateRe = regexp.MustCompile(MarkerStart + ` (\d{4}-\d{2}-\d{2})`)
	dueDateRe   = regexp.MustCompile(MarkerDue + ` (\d{4}-\d{2}-\d{2})`)
	taskIDRe    = regexp.MustCompile(MarkerID + ` ([0-9A-Za-z]{6})`)
)

// CleanTaskText strips every recognized metadata marker and its trailing
// value from a task body, producing the clean key used to match tasks across
// the vault. Only the earliest marker in the text actually cuts; cleaning is
// idempotent.
func CleanTaskText(text string) string {
	clean := text
	for _, marker := range cleanMarkers {
		if before, _, found := strings.Cut(clean, marker); found {
			clean = before
		}
	}
	return clean
}

// TaskMetadata holds the structured fields parsed from one task-line body.
type TaskMetadata struct {
	CleanKey       string
	StartDate      *time.Time
	DependencyKeys map[string]struct{}
	ID             string
}

// ParseTaskLine extracts structured metadata from the body of an open task
// line (the text after the checkbox prefix). Parsing never fails: a
// malformed date is treated as absent, and an absent marker yields the zero
// value for its field.
func ParseTaskLine(body string) TaskMetadata {
	meta := TaskMetadata{
		CleanKey:       CleanTaskText(body),
		DependencyKeys: make(map[string]struct{}),
	}

	// The explicit start marker wins; otherwise the dated 📅 value marks
	// when the task becomes actionable. A malformed date is treated as an
	// absent marker, never an error.
	if d := parseMarkerDate(startDateRe, body); d != nil {
		meta.StartDate = d
	} else if d := parseMarkerDate(dueDateRe, body); d != nil {
		meta.StartDate = d
	}

	if m := taskIDRe.FindStringSubmatch(body); m != nil {
		meta.ID = m[1]
	}

	if dep := dependencyValue(body); dep != "" {
		// The dependency text may carry its own trailing metadata; clean
		// it again so it matches the referenced task's clean key.
		if key := CleanTaskText(dep); key != "" {
			meta.DependencyKeys[key] = struct{}{}
		}
	}

	return meta
}

// parseMarkerDate extracts an ISO date following a marker, or nil when the
// marker is absent or its value does not parse as a real date.
func parseMarkerDate(re *regexp.Regexp, body string) *time.Time {
	m := re.FindStringSubmatch(body)
	if m == nil {
		return nil
	}
	d, err := time.Parse("2006-01-02", m[1])
	if err != nil {
		return nil
	}
	return &d
}

// dependencyValue returns the raw value of the first dependency marker,
// truncated at the next marker or end of line.
func dependencyValue(body string) string {
	_, after, found := strings.Cut(body, " "+MarkerDependency+" ")
	if !found {
		// Also accept a dependency marker at the very start of the body.
		after, found = strings.CutPrefix(body, MarkerDependency+" ")
		if !found {
			return ""
		}
	}
	cut := len(after)
	for _, marker := range allMarkers {
		if i := strings.Index(after, marker); i >= 0 && i < cut {
			cut = i
		}
	}
	return strings.TrimSpace(after[:cut])
}

// ParseOpenTask builds a task record from an open task line body and its
// source location.
func ParseOpenTask(body, location string) *models.Task {
	meta := ParseTaskLine(body)
	return &models.Task{
		RawText:      body,
		Location:     location,
		ID:           meta.ID,
		StartDate:    meta.StartDate,
		Dependencies: meta.DependencyKeys,
	}
}
