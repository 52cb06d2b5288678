package models

// Config holds all settings for a single msbee run. It is constructed once
// at process start (see core.LoadConfig) and passed by reference into every
// component; nothing below the config layer reads environment state.
type Config struct {
	// VaultPath is the root directory of the note vault.
	VaultPath string `yaml:"vault_path" mapstructure:"vault_path"`

	// DailyDir is the daily-notes directory, relative to VaultPath.
	// One file per date, named YYYY-MM-DD.md.
	DailyDir string `yaml:"daily_dir" mapstructure:"daily_dir"`

	// RoadmapPath is the roadmap note, relative to VaultPath.
	RoadmapPath string `yaml:"roadmap_path" mapstructure:"roadmap_path"`

	// TemplatesDir is the subtree name excluded from task scans.
	// Template files contain placeholder tasks, never real ones.
	TemplatesDir string `yaml:"templates_dir" mapstructure:"templates_dir"`

	// Model is the chat-completion model used by the summarizer.
	Model string `yaml:"model" mapstructure:"model"`

	// Temperature is the sampling temperature for the summarizer call.
	Temperature float64 `yaml:"temperature" mapstructure:"temperature"`

	// OpenAIAPIKey is read from the OPENAI_API_KEY environment variable by
	// the config loader. Never serialized.
	OpenAIAPIKey string `yaml:"-" mapstructure:"-"`
}
