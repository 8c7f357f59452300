package main

import (
	"fmt"

	"github.com/hyperjump/embedkit/internal/cli"
	"github.com/hyperjump/embedkit/internal/cluster"
	"github.com/hyperjump/embedkit/internal/dataset"
	"github.com/hyperjump/embedkit/internal/embedding"
	"github.com/spf13/cobra"
)

func NewClusterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cluster",
		Short: "Group dataset vectors with k-means",
		Long: `Partition the vectors of a dataset file into k clusters.
With k greater than or equal to the number of entries every entry is its own cluster.`,
		Example: `  embedkit cluster --dataset docs.yaml -k 4
  embedkit cluster --dataset docs.yaml -k 4 --seed 42 --output json`,
		Args: cobra.NoArgs,
		RunE: runCluster,
	}
	cmd.Flags().StringP("dataset", "d", "", "dataset file (YAML or JSON)")
	cmd.Flags().IntP("clusters", "k", 2, "number of clusters")
	cmd.Flags().Int("max-iterations", 0, "iteration limit (default from config)")
	cmd.Flags().Int64("seed", 0, "random seed for repeatable runs (default from config, else random)")
	cmd.Flags().String("model", "", "generator model name")
	_ = cmd.MarkFlagRequired("dataset")
	return cmd
}

func runCluster(cmd *cobra.Command, _ []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	defer a.logger.Sync()

	path, _ := cmd.Flags().GetString("dataset")
	ds, err := dataset.Load(path)
	if err != nil {
		return err
	}
	k, _ := cmd.Flags().GetInt("clusters")

	res, err := embedding.Embed(cmd.Context(), a.generatorFor(ds), ds.Texts(), a.modelFor(cmd, ds))
	if err != nil {
		return fmt.Errorf("generate vectors: %w", err)
	}

	opts := []cluster.Option{
		cluster.WithMaxIterations(a.cfg.Cluster.MaxIterations),
		cluster.WithLogger(a.logger),
	}
	if cmd.Flags().Changed("max-iterations") {
		n, _ := cmd.Flags().GetInt("max-iterations")
		opts = append(opts, cluster.WithMaxIterations(n))
	}
	switch {
	case cmd.Flags().Changed("seed"):
		seed, _ := cmd.Flags().GetInt64("seed")
		opts = append(opts, cluster.WithSeed(seed))
	case a.cfg.Cluster.Seed != nil:
		opts = append(opts, cluster.WithSeed(*a.cfg.Cluster.Seed))
	}

	assignments, err := cluster.KMeans(res.Vectors(), k, opts...)
	if err != nil {
		return err
	}
	out := cli.NewClusterOutput(k, ds.IDs(), ds.Texts(), assignments)
	return cli.WriteClusters(cmd.OutOrStdout(), out, a.format)
}
