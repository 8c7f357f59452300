// Package config provides configuration loading and structs for embedkit.
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v10"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug     bool            `yaml:"debug" env:"EMBEDKIT_DEBUG"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Search    SearchConfig    `yaml:"search"`
	Cluster   ClusterConfig   `yaml:"cluster"`
	Output    OutputConfig    `yaml:"output"`
}

// EmbeddingConfig holds vector generator settings.
type EmbeddingConfig struct {
	// Model is the generator model name recorded on indexed documents.
	Model string `yaml:"model" env:"EMBEDKIT_MODEL" validate:"required"`
	// Dimensions is used by the hash generator for texts without a precomputed vector.
	Dimensions int `yaml:"dimensions" env:"EMBEDKIT_DIMENSIONS" validate:"gt=0"`
	// CacheSize is the LRU capacity in front of the generator; 0 disables caching.
	// Unset means DefaultCacheSize.
	CacheSize *int `yaml:"cache_size" env:"EMBEDKIT_CACHE_SIZE" validate:"omitempty,gte=0"`
}

// SearchConfig holds semantic search defaults.
type SearchConfig struct {
	DefaultTopK         int     `yaml:"default_top_k" env:"EMBEDKIT_TOP_K" validate:"gt=0"`
	SimilarityThreshold float64 `yaml:"similarity_threshold" env:"EMBEDKIT_SIMILARITY_THRESHOLD" validate:"gte=-1,lte=1"`
}

// ClusterConfig holds k-means defaults.
type ClusterConfig struct {
	MaxIterations int `yaml:"max_iterations" env:"EMBEDKIT_MAX_ITERATIONS" validate:"gt=0"`
	// Seed makes cluster runs repeatable when set.
	Seed *int64 `yaml:"seed" env:"EMBEDKIT_SEED"`
}

// OutputConfig holds CLI output settings.
type OutputConfig struct {
	Format string `yaml:"format" env:"EMBEDKIT_OUTPUT" validate:"oneof=text json"`
}

// Load reads and parses the config file at path, applies defaults, then environment
// overrides, and validates the result. An empty path skips the file.
func Load(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	ApplyDefaults(&cfg)

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Save writes the config to path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
