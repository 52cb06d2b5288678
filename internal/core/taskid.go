package core

import (
	"math/rand/v2"
	"regexp"
	"strings"
)

// idAlphabet is the base62 alphabet used for short task identifiers.
const idAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// shortIDLength is the fixed length of a task identifier.
const shortIDLength = 6

// OpenTaskPrefix marks a line as an open (not yet completed) task.
const OpenTaskPrefix = "- [ ]"

// CompletedTaskPrefix marks a line as a completed task.
const CompletedTaskPrefix = "- [x]"

// ShortIDGenerator produces short identifiers for task lines.
type ShortIDGenerator interface {
	GenerateShortID() string
}

// randomIDGenerator draws uniformly random base62 identifiers. Collisions
// are not checked against existing identifiers; at 62^6 combinations this is
// an accepted gap.
type randomIDGenerator struct{}

// NewShortIDGenerator creates the default random ShortIDGenerator.
func NewShortIDGenerator() ShortIDGenerator {
	return randomIDGenerator{}
}

func (randomIDGenerator) GenerateShortID() string {
	b := make([]byte, shortIDLength)
	for i := range b {
		b[i] = idAlphabet[rand.IntN(len(idAlphabet))]
	}
	return string(b)
}

// firstMetadataRe locates the first inline metadata marker on a task line,
// which is where a freshly generated identifier gets spliced in.
var firstMetadataRe = regexp.MustCompile(`\s*[➕📅⏭️⛔🆔]\s+\S+`)

// StampTaskIDs returns a copy of lines where every open task line carries an
// identifier, plus a flag reporting whether anything changed. Lines already
// carrying the 🆔 marker are left byte-for-byte unchanged, so re-running
// over an already-stamped file is a no-op. A new identifier is inserted
// immediately before the line's first metadata marker, or appended at the
// end of the line when no metadata exists.
func StampTaskIDs(lines []string, gen ShortIDGenerator) ([]string, bool) {
	updated := make([]string, 0, len(lines))
	changed := false

	for _, line := range lines {
		if !strings.HasPrefix(line, OpenTaskPrefix) {
			updated = append(updated, line)
			continue
		}
		if strings.Contains(line, MarkerID+" ") {
			updated = append(updated, line)
			continue
		}

		idPart := " " + MarkerID + " " + gen.GenerateShortID()
		if loc := firstMetadataRe.FindStringIndex(line); loc != nil {
			line = line[:loc[0]] + idPart + line[loc[0]:]
		} else {
			line = strings.TrimRight(line, " \t") + idPart
		}
		updated = append(updated, line)
		changed = true
	}

	return updated, changed
}
