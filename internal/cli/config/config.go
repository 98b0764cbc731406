// Package config loads the blueprint tool configuration.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config represents the blueprint configuration, read from blueprint.yml
// with environment-variable overrides.
type Config struct {
	Output    OutputConfig    `mapstructure:"output"`
	Providers ProvidersConfig `mapstructure:"providers"`
	Log       LogConfig       `mapstructure:"log"`
}

// OutputConfig controls where compiled blueprints are written.
type OutputConfig struct {
	Blueprint string `mapstructure:"blueprint"`
}

// ProvidersConfig controls backend ordering and invocation bounds.
type ProvidersConfig struct {
	// Order lists provider ids in priority order.
	Order []string `mapstructure:"order"`
	// TimeoutSeconds bounds one backend invocation.
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
	// Models overrides the default model per provider.
	Models ModelsConfig `mapstructure:"models"`
}

// ModelsConfig holds per-provider model overrides.
type ModelsConfig struct {
	Groq       string `mapstructure:"groq"`
	OpenRouter string `mapstructure:"openrouter"`
	Gemini     string `mapstructure:"gemini"`
	Ollama     string `mapstructure:"ollama"`
}

// LogConfig controls logger verbosity.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

var knownProviders = map[string]bool{
	"groq":       true,
	"openrouter": true,
	"gemini":     true,
	"ollama":     true,
}

// Load loads the configuration from blueprint.yml or blueprint.yaml
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("output.blueprint", "./blueprint.yaml")
	v.SetDefault("providers.order", []string{"groq", "openrouter", "gemini", "ollama"})
	v.SetDefault("providers.timeout_seconds", 60)
	v.SetDefault("log.level", "info")

	v.SetConfigName("blueprint")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("BLUEPRINT")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found - use defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// validateConfig validates the configuration
func validateConfig(cfg *Config) error {
	for _, id := range cfg.Providers.Order {
		if !knownProviders[id] {
			return fmt.Errorf("providers.order contains unknown provider %q", id)
		}
	}
	if cfg.Providers.TimeoutSeconds <= 0 {
		return fmt.Errorf("providers.timeout_seconds must be positive, got %d", cfg.Providers.TimeoutSeconds)
	}
	return nil
}
