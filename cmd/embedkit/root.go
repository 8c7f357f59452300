package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hyperjump/embedkit/internal/cli"
	"github.com/hyperjump/embedkit/internal/config"
	"github.com/hyperjump/embedkit/internal/dataset"
	"github.com/hyperjump/embedkit/internal/embedding"
	"github.com/hyperjump/embedkit/internal/vector"
	"github.com/hyperjump/embedkit/pkg/utils"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app holds what every subcommand needs once flags are parsed.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	format cli.OutputFormat
}

func NewRootCmd(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "embedkit",
		Short:         "Vector similarity, semantic search and k-means clustering",
		Long:          `Compare vectors, search a text corpus by embedding similarity, and cluster embeddings from dataset files.`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
	}

	rootCmd.PersistentFlags().String("config", "", "config file path")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().String("output", "", "output format (text|json)")

	rootCmd.AddCommand(
		NewSimilarityCmd(),
		NewSearchCmd(),
		NewClusterCmd(),
	)
	return rootCmd
}

// loadApp reads config and builds the logger. Flags override config values.
func loadApp(cmd *cobra.Command) (*app, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	debug, _ := cmd.Flags().GetBool("debug")
	debug = debug || cfg.Debug

	logger, err := utils.NewLogger(debug)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	formatName, _ := cmd.Flags().GetString("output")
	if formatName == "" {
		formatName = cfg.Output.Format
	}
	format, err := cli.ParseOutputFormat(formatName)
	if err != nil {
		return nil, err
	}

	logger.Debug("config loaded",
		zap.String("config_path", path),
		zap.Bool("debug", debug),
		zap.String("model", cfg.Embedding.Model),
	)
	return &app{cfg: cfg, logger: logger, format: format}, nil
}

// generatorFor serves the dataset's precomputed vectors, hashes any other text at the
// dataset's dimension, and caches the results when a cache size is configured.
func (a *app) generatorFor(ds *dataset.Dataset) embedding.Generator {
	dim := ds.Dimensions()
	if dim == 0 {
		dim = a.cfg.Embedding.Dimensions
	}
	var gen embedding.Generator = ds.Generator(embedding.NewHashGenerator(dim))
	if size := a.cfg.Embedding.CacheSize; size != nil && *size > 0 {
		gen = embedding.NewCachingGenerator(gen, *size)
	}
	return gen
}

// modelFor picks the model flag, then the dataset's model, then the configured one.
func (a *app) modelFor(cmd *cobra.Command, ds *dataset.Dataset) string {
	if m, _ := cmd.Flags().GetString("model"); m != "" {
		return m
	}
	if ds.Model != "" {
		return ds.Model
	}
	return a.cfg.Embedding.Model
}

// parseVector parses "1,0.5,-2" (brackets and spaces allowed) into a Vector.
func parseVector(s string) (vector.Vector, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "[")
	s = strings.TrimSuffix(s, "]")
	if strings.TrimSpace(s) == "" {
		return nil, fmt.Errorf("empty vector")
	}
	parts := strings.Split(s, ",")
	v := make(vector.Vector, len(parts))
	for i, p := range parts {
		x, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("vector component %d: %w", i, err)
		}
		v[i] = x
	}
	return v, nil
}
