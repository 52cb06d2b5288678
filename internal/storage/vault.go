// Package storage implements the file-backed layer of msbee: vault walking,
// in-place note rewrites, the daily-note section rewrite, and roadmap
// reading. Each file is read, possibly rewritten, and closed before the next
// is opened; there is no shared mutable state across files.
package storage

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/drapaimern/msbee/pkg/models"
)

// noteExtension is the file extension recognized as a note.
const noteExtension = ".md"

// VaultStore provides read and rewrite access to the note files of a vault.
type VaultStore interface {
	// WalkNotes calls fn for every note file outside the templates
	// subtree, passing its vault-relative path and lines. Any error from
	// reading, decoding, or fn aborts the walk.
	WalkNotes(fn func(relPath string, lines []string) error) error

	// UpdateNotes applies transform to the lines of every note file in
	// the vault (templates included) and writes a file back only when
	// transform reports a change, leaving untouched files with their
	// original modification time. It returns the vault-relative paths of
	// the rewritten files.
	UpdateNotes(transform func(lines []string) ([]string, bool)) ([]string, error)
}

type fileVaultStore struct {
	cfg *models.Config
}

// NewVaultStore creates a VaultStore over the vault described by cfg.
func NewVaultStore(cfg *models.Config) VaultStore {
	return &fileVaultStore{cfg: cfg}
}

// readNoteLines reads a note file and splits it into lines without trailing
// newlines. A file that is not valid UTF-8 is an error; the vault is assumed
// consistently encoded and no partial recovery is attempted.
func readNoteLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading note %s: %w", path, err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("decoding note %s: not valid UTF-8", path)
	}
	text := strings.TrimSuffix(string(data), "\n")
	return strings.Split(text, "\n"), nil
}

func (s *fileVaultStore) walk(includeTemplates bool, fn func(relPath string, lines []string) error) error {
	root := s.cfg.VaultPath
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("walking vault: %w", err)
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return fmt.Errorf("relativizing %s: %w", path, relErr)
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if !includeTemplates && s.isTemplates(rel) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != noteExtension {
			return nil
		}

		lines, readErr := readNoteLines(path)
		if readErr != nil {
			return readErr
		}
		return fn(rel, lines)
	})
}

func (s *fileVaultStore) isTemplates(rel string) bool {
	if s.cfg.TemplatesDir == "" {
		return false
	}
	return rel == s.cfg.TemplatesDir || strings.HasPrefix(rel, s.cfg.TemplatesDir+"/")
}

func (s *fileVaultStore) WalkNotes(fn func(relPath string, lines []string) error) error {
	return s.walk(false, fn)
}

func (s *fileVaultStore) UpdateNotes(transform func(lines []string) ([]string, bool)) ([]string, error) {
	var updated []string
	err := s.walk(true, func(rel string, lines []string) error {
		newLines, changed := transform(lines)
		if !changed {
			return nil
		}
		path := filepath.Join(s.cfg.VaultPath, filepath.FromSlash(rel))
		content := strings.Join(newLines, "\n") + "\n"
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return fmt.Errorf("writing note %s: %w", path, err)
		}
		updated = append(updated, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
