package config

import (
	"github.com/hyperjump/embedkit/internal/cluster"
	"github.com/hyperjump/embedkit/internal/embedding"
	"github.com/hyperjump/embedkit/internal/models"
)

// DefaultCacheSize is the LRU capacity used when cache_size is not set.
const DefaultCacheSize = 10000

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Embedding.Model == "" {
		cfg.Embedding.Model = "hash-v1"
	}
	if cfg.Embedding.Dimensions == 0 {
		cfg.Embedding.Dimensions = embedding.DefaultHashDimensions
	}
	if cfg.Embedding.CacheSize == nil {
		size := DefaultCacheSize
		cfg.Embedding.CacheSize = &size
	}
	if cfg.Search.DefaultTopK == 0 {
		cfg.Search.DefaultTopK = models.DefaultTopK
	}
	if cfg.Cluster.MaxIterations == 0 {
		cfg.Cluster.MaxIterations = cluster.DefaultMaxIterations
	}
	if cfg.Output.Format == "" {
		cfg.Output.Format = "text"
	}
}
