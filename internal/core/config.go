package core

import (
	"fmt"
	"os"

	"github.com/drapaimern/msbee/pkg/models"
	"github.com/spf13/viper"
)

// DefaultConfig returns a Config populated with the stock vault layout.
func DefaultConfig() *models.Config {
	return &models.Config{
		VaultPath:    ".",
		DailyDir:     "daily",
		RoadmapPath:  "msbee/roadmap.md",
		TemplatesDir: "Templates",
		Model:        "gpt-4",
		Temperature:  0.7,
	}
}

// LoadConfig reads the .msbee.yaml file from the vault root using Viper and
// returns the effective configuration. Missing config file means defaults.
// MSBEE_DAILY_PATH, MSBEE_ROADMAP_PATH and MSBEE_MODEL environment variables
// override individual keys, and the summarizer credential is taken from
// OPENAI_API_KEY. This is the only place environment state is read;
// everything downstream receives the resulting struct.
func LoadConfig(vaultPath string) (*models.Config, error) {
	cfg := DefaultConfig()
	cfg.VaultPath = vaultPath

	v := viper.New()
	v.SetConfigName(".msbee")
	v.SetConfigType("yaml")
	v.AddConfigPath(vaultPath)

	v.SetDefault("daily_dir", cfg.DailyDir)
	v.SetDefault("roadmap_path", cfg.RoadmapPath)
	v.SetDefault("templates_dir", cfg.TemplatesDir)
	v.SetDefault("model", cfg.Model)
	v.SetDefault("temperature", cfg.Temperature)

	_ = v.BindEnv("daily_dir", "MSBEE_DAILY_PATH")
	_ = v.BindEnv("roadmap_path", "MSBEE_ROADMAP_PATH")
	_ = v.BindEnv("model", "MSBEE_MODEL")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading .msbee.yaml: %w", err)
		}
		// No config file found, defaults and env overrides apply.
	}

	cfg.DailyDir = v.GetString("daily_dir")
	cfg.RoadmapPath = v.GetString("roadmap_path")
	cfg.TemplatesDir = v.GetString("templates_dir")
	cfg.Model = v.GetString("model")
	cfg.Temperature = v.GetFloat64("temperature")

	cfg.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")

	return cfg, nil
}
