package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/drapaimern/msbee/pkg/models"
)

// Sentinel lines bounding the region of a daily note owned by msbee.
// Content outside the markers is never touched.
const (
	SectionBegin = "<!-- msbee:begin -->"
	SectionEnd   = "<!-- msbee:end -->"
)

// ErrDailyNoteNotFound reports that the daily note for the requested date
// does not exist. Callers treat it as a diagnostic, not a failure.
var ErrDailyNoteNotFound = errors.New("daily note not found")

// DailyNoteStore rewrites the generated section of dated notes.
type DailyNoteStore interface {
	// NotePath returns the path of the daily note for the given date.
	NotePath(date time.Time) string

	// UpdateNote replaces the marked section of the daily note for the
	// given date with content, creating the markers at the end of the
	// file if absent. Returns ErrDailyNoteNotFound when the note does
	// not exist; nothing is written in that case.
	UpdateNote(content string, date time.Time) error
}

type fileDailyNoteStore struct {
	cfg *models.Config
}

// NewDailyNoteStore creates a DailyNoteStore for the vault described by cfg.
func NewDailyNoteStore(cfg *models.Config) DailyNoteStore {
	return &fileDailyNoteStore{cfg: cfg}
}

func (s *fileDailyNoteStore) NotePath(date time.Time) string {
	name := date.Format("2006-01-02") + noteExtension
	return filepath.Join(s.cfg.VaultPath, s.cfg.DailyDir, name)
}

func (s *fileDailyNoteStore) UpdateNote(content string, date time.Time) error {
	path := s.NotePath(date)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrDailyNoteNotFound, path)
		}
		return fmt.Errorf("reading daily note %s: %w", path, err)
	}

	updated := ReplaceSection(string(data), content)
	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		return fmt.Errorf("writing daily note %s: %w", path, err)
	}
	return nil
}

// ReplaceSection returns text with the region between the msbee sentinel
// lines replaced by content. Everything before the begin marker and after
// the end marker is preserved byte-for-byte. When no marker pair exists, a
// new marked block is appended after trimming trailing whitespace, separated
// by a blank line. Repeated calls with the same content converge: the
// markers anchor a stable replace region, so the section can be regenerated
// daily without accumulating duplicate blocks.
func ReplaceSection(text, content string) string {
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}

	begin := strings.Index(text, SectionBegin)
	if begin >= 0 {
		rest := text[begin+len(SectionBegin):]
		if end := strings.Index(rest, SectionEnd); end >= 0 {
			head := text[:begin+len(SectionBegin)]
			tail := rest[end:]
			return head + "\n" + content + tail
		}
	}

	trimmed := strings.TrimRight(text, " \t\n")
	block := SectionBegin + "\n" + content + SectionEnd + "\n"
	if trimmed == "" {
		return block
	}
	return trimmed + "\n\n" + block
}
