package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds settings loaded from ideate.yml.
type Config struct {
	// Provider selects the completion backend: "openai" (default, any
	// OpenAI-compatible endpoint) or "gemini".
	Provider   string `yaml:"provider,omitempty"`
	APIKey     string `yaml:"apiKey,omitempty"`
	BaseURL    string `yaml:"baseUrl,omitempty"`
	Model      string `yaml:"model,omitempty"`
	ImageModel string `yaml:"imageModel,omitempty"`

	// DataDir is where the SQLite database and step graph live.
	// Defaults to ~/.ideate.
	DataDir string `yaml:"dataDir,omitempty"`

	// ConsensusThreshold tunes collaborative merging; zero means the
	// orchestrator default.
	ConsensusThreshold float64 `yaml:"consensusThreshold,omitempty"`

	// DisableImages turns off concept-image generation even when the
	// provider supports it.
	DisableImages bool `yaml:"disableImages,omitempty"`

	Verbose bool `yaml:"verbose,omitempty"`
}

// Load attempts to read ideate.yml or ideate.yaml from the given
// directory. Returns a zero-value config (not an error) if no config
// file exists. API keys may also come from the environment:
// IDEATE_API_KEY wins over the file.
func Load(dir string) (*Config, error) {
	cfg := &Config{}
	for _, name := range []string{"ideate.yml", "ideate.yaml"} {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
		break
	}

	if key := os.Getenv("IDEATE_API_KEY"); key != "" {
		cfg.APIKey = key
	}
	return cfg, nil
}

// DataDirOrDefault returns the configured data directory or ~/.ideate.
func (c *Config) DataDirOrDefault() string {
	if c.DataDir != "" {
		return c.DataDir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".ideate"
	}
	return filepath.Join(home, ".ideate")
}
