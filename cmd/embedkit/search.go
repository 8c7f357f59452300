package main

import (
	"context"
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/hyperjump/embedkit/internal/cli"
	"github.com/hyperjump/embedkit/internal/dataset"
	"github.com/hyperjump/embedkit/internal/models"
	"github.com/hyperjump/embedkit/internal/search"
	"github.com/hyperjump/embedkit/internal/watcher"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func NewSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search a dataset by semantic similarity",
		Long: `Index every entry of a dataset file and rank them by cosine similarity to the query.
Texts without a precomputed vector, including the query, get a deterministic hash vector.
With --watch the search reruns whenever the dataset file changes.`,
		Example: `  embedkit search --dataset docs.yaml "getting started"
  embedkit search --dataset docs.yaml -k 3 --threshold 0.2 --output json install
  embedkit search --dataset docs.yaml --watch install`,
		Args: cobra.MinimumNArgs(1),
		RunE: runSearch,
	}
	cmd.Flags().StringP("dataset", "d", "", "dataset file (YAML or JSON)")
	cmd.Flags().IntP("top-k", "k", 0, "maximum results (default from config)")
	cmd.Flags().Float64("threshold", 0, "minimum similarity (default from config)")
	cmd.Flags().String("model", "", "generator model name")
	cmd.Flags().BoolP("watch", "w", false, "rerun the search when the dataset file changes")
	_ = cmd.MarkFlagRequired("dataset")
	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	defer a.logger.Sync()

	path, _ := cmd.Flags().GetString("dataset")
	query := strings.TrimSpace(strings.Join(args, " "))

	if err := a.searchOnce(cmd.Context(), cmd, path, query); err != nil {
		return err
	}
	if watch, _ := cmd.Flags().GetBool("watch"); !watch {
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return a.watchDataset(ctx, path, func(ctx context.Context) error {
		return a.searchOnce(ctx, cmd, path, query)
	})
}

// searchOnce loads the dataset fresh, indexes it and writes the results.
// ctx bounds the generator calls; cmd supplies flags and the output writer.
func (a *app) searchOnce(ctx context.Context, cmd *cobra.Command, path, query string) error {
	ds, err := dataset.Load(path)
	if err != nil {
		return err
	}
	gen := a.generatorFor(ds)
	model := a.modelFor(cmd, ds)

	idx := search.NewSemanticIndex(search.WithLogger(a.logger))
	if err := idx.AddDocuments(ctx, gen, ds.Texts(), model); err != nil {
		return fmt.Errorf("index dataset: %w", err)
	}

	q := &models.SearchQuery{
		Query:               query,
		Model:               model,
		TopK:                a.cfg.Search.DefaultTopK,
		SimilarityThreshold: a.cfg.Search.SimilarityThreshold,
	}
	if cmd.Flags().Changed("top-k") {
		q.TopK, _ = cmd.Flags().GetInt("top-k")
	}
	if cmd.Flags().Changed("threshold") {
		q.SimilarityThreshold, _ = cmd.Flags().GetFloat64("threshold")
	}

	results, err := idx.Search(ctx, gen, q)
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}
	a.logger.Debug("search done",
		zap.String("query", q.Query),
		zap.Int("indexed", idx.Len()),
		zap.Int("results", len(results)),
	)
	return cli.WriteSearchResults(cmd.OutOrStdout(), &cli.SearchOutput{Query: q.Query, Model: model, Results: results}, a.format)
}

// watchDataset calls rerun with ctx after each debounced change to path until ctx is done.
// Reruns never overlap, and cancelling ctx cancels the one in flight.
// Errors from rerun are logged so a half-written dataset does not end the session.
func (a *app) watchDataset(ctx context.Context, path string, rerun func(ctx context.Context) error) error {
	w := watcher.NewWatcher(path, func(string) {
		if ctx.Err() != nil {
			return
		}
		if err := rerun(ctx); err != nil {
			a.logger.Warn("rerun after dataset change failed", zap.String("path", path), zap.Error(err))
		}
	}, watcher.WithLogger(a.logger))
	if err := w.Start(ctx); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	defer w.Stop()
	a.logger.Info("watching dataset for changes", zap.String("path", path))
	<-ctx.Done()
	return nil
}
