// Package internal provides the App struct that wires all components of
// msbee together and initializes the CLI layer.
package internal

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/drapaimern/msbee/internal/cli"
	"github.com/drapaimern/msbee/internal/core"
	"github.com/drapaimern/msbee/internal/integration"
	"github.com/drapaimern/msbee/internal/observability"
	"github.com/drapaimern/msbee/internal/storage"
	"github.com/drapaimern/msbee/pkg/models"
)

// App holds all service dependencies for msbee.
type App struct {
	Cfg *models.Config

	// Storage layer
	Vault storage.VaultStore
	Notes storage.DailyNoteStore

	// Core services
	Extractor *core.Extractor
	IDGen     core.ShortIDGenerator
	Briefer   *core.Briefer

	// Observability
	EventLog observability.EventLog
}

// NewApp loads configuration for the given vault and wires all components.
// The config struct built here is the only place environment state enters
// the system; every component receives it explicitly.
func NewApp(vaultPath string) (*App, error) {
	cfg, err := core.LoadConfig(vaultPath)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	app := &App{Cfg: cfg}

	// --- Storage layer ---
	app.Vault = storage.NewVaultStore(cfg)
	app.Notes = storage.NewDailyNoteStore(cfg)

	// --- Core services ---
	app.IDGen = core.NewShortIDGenerator()
	app.Extractor = core.NewExtractor(app.Vault)

	// The briefer exists only when a summarizer credential is configured;
	// commands that need it check for nil and abort before touching files.
	if cfg.OpenAIAPIKey != "" {
		completer := integration.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.Model, cfg.Temperature)
		app.Briefer = core.NewBriefer(completer)
	}

	// --- Observability ---
	runLogPath := filepath.Join(cfg.VaultPath, ".msbee_runs.jsonl")
	app.EventLog, err = observability.NewJSONLEventLog(runLogPath)
	if err != nil {
		// Non-fatal: run logging is best-effort.
		app.EventLog = nil
	}

	// --- Wire CLI package-level variables ---
	cli.Cfg = app.Cfg
	cli.Vault = app.Vault
	cli.Notes = app.Notes
	cli.Extractor = app.Extractor
	cli.IDGen = app.IDGen
	cli.Briefer = app.Briefer
	cli.EventLog = app.EventLog

	return app, nil
}

// ResolveVaultPath determines the vault root: the MSBEE_VAULT_PATH
// environment variable if set, otherwise the nearest ancestor of the
// working directory containing a .msbee.yaml, otherwise the working
// directory itself.
func ResolveVaultPath() string {
	if vault := os.Getenv("MSBEE_VAULT_PATH"); vault != "" {
		return vault
	}
	dir, err := os.Getwd()
	if err != nil {
		return "."
	}
	for probe := dir; ; {
		if _, err := os.Stat(filepath.Join(probe, ".msbee.yaml")); err == nil {
			return probe
		}
		parent := filepath.Dir(probe)
		if parent == probe {
			break
		}
		probe = parent
	}
	return dir
}
