package cli

import (
	"time"

	"github.com/drapaimern/msbee/internal/core"
	"github.com/drapaimern/msbee/internal/observability"
	"github.com/drapaimern/msbee/internal/storage"
	"github.com/drapaimern/msbee/pkg/models"
)

// Service instances, set during app initialization in internal/app.go.
var (
	Cfg       *models.Config
	Vault     storage.VaultStore
	Notes     storage.DailyNoteStore
	Extractor *core.Extractor
	IDGen     core.ShortIDGenerator
	EventLog  observability.EventLog

	// Briefer is nil when no summarizer credential is configured; the run
	// command refuses to start in that case.
	Briefer *core.Briefer
)

// parseDateFlag interprets a --date value, defaulting to today's date at
// midnight when empty.
func parseDateFlag(s string) (time.Time, error) {
	if s == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Parse("2006-01-02", s)
}
