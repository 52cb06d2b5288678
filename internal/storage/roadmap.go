package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/drapaimern/msbee/pkg/models"
)

// NoRoadmapPlaceholder is handed to the summarizer when the vault carries no
// roadmap note.
const NoRoadmapPlaceholder = "No roadmap found."

// ReadRoadmap returns the roadmap note's content, or NoRoadmapPlaceholder
// when the configured roadmap file does not exist.
func ReadRoadmap(cfg *models.Config) (string, error) {
	path := filepath.Join(cfg.VaultPath, cfg.RoadmapPath)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NoRoadmapPlaceholder, nil
		}
		return "", fmt.Errorf("reading roadmap %s: %w", path, err)
	}
	return string(data), nil
}
