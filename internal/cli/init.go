package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/drapaimern/msbee/internal/core"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default .msbee.yaml into the vault",
	Long: `Create a .msbee.yaml with the default layout settings in the vault root,
along with the daily-notes directory and a starter roadmap note. Existing
files are never overwritten.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfgPath := filepath.Join(Cfg.VaultPath, ".msbee.yaml")
		if _, err := os.Stat(cfgPath); err == nil {
			return fmt.Errorf("config already exists: %s", cfgPath)
		}

		defaults := core.DefaultConfig()
		data, err := yaml.Marshal(defaults)
		if err != nil {
			return fmt.Errorf("marshalling default config: %w", err)
		}
		if err := os.WriteFile(cfgPath, data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", cfgPath, err)
		}
		fmt.Printf("Wrote %s\n", cfgPath)

		dailyDir := filepath.Join(Cfg.VaultPath, defaults.DailyDir)
		if err := os.MkdirAll(dailyDir, 0o755); err != nil {
			return fmt.Errorf("creating daily-notes directory: %w", err)
		}

		roadmapPath := filepath.Join(Cfg.VaultPath, defaults.RoadmapPath)
		if _, err := os.Stat(roadmapPath); os.IsNotExist(err) {
			if err := os.MkdirAll(filepath.Dir(roadmapPath), 0o755); err != nil {
				return fmt.Errorf("creating roadmap directory: %w", err)
			}
			starter := "# Roadmap\n\n- What matters this quarter\n"
			if err := os.WriteFile(roadmapPath, []byte(starter), 0o644); err != nil {
				return fmt.Errorf("writing starter roadmap: %w", err)
			}
			fmt.Printf("Wrote %s\n", roadmapPath)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
