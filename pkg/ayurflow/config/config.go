// Package config loads the YAML configuration for the CLI and pipeline
// wiring. Unknown fields are rejected so a typo never silently disables a
// safety-relevant setting.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Logging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type Guidance struct {
	// Provider selects the guidance collaborator: "rules" (default) or "gemma".
	Provider string `yaml:"provider"`
	Model    string `yaml:"model"`
	// APIKeyEnv names the environment variable holding the model API key;
	// the key itself never lives in the config file.
	APIKeyEnv string `yaml:"api_key_env"`
}

type Batch struct {
	Concurrency int `yaml:"concurrency"`
}

type Config struct {
	Logging    Logging  `yaml:"logging"`
	Guidance   Guidance `yaml:"guidance"`
	Batch      Batch    `yaml:"batch"`
	Disclaimer string   `yaml:"disclaimer"`
}

func Default() Config {
	return Config{
		Logging:  Logging{Level: "info", Format: "text"},
		Guidance: Guidance{Provider: "rules", APIKeyEnv: "GEMINI_API_KEY"},
		Batch:    Batch{Concurrency: 4},
	}
}

// Load reads a YAML config file over the defaults. An empty path returns
// the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown log level %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("config: unknown log format %q", c.Logging.Format)
	}
	switch c.Guidance.Provider {
	case "rules", "gemma":
	default:
		return fmt.Errorf("config: unknown guidance provider %q", c.Guidance.Provider)
	}
	if c.Batch.Concurrency < 1 {
		return fmt.Errorf("config: batch concurrency must be at least 1")
	}
	return nil
}
