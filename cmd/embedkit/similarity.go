package main

import (
	"fmt"

	"github.com/hyperjump/embedkit/internal/cli"
	"github.com/hyperjump/embedkit/internal/vector"
	"github.com/spf13/cobra"
)

func NewSimilarityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "similarity <vector-a> <vector-b>",
		Short: "Compare two vectors",
		Long:  `Compute cosine similarity, euclidean or manhattan distance, or the dot product of two comma-separated vectors.`,
		Example: `  embedkit similarity 1,0 0,1
  embedkit similarity --metric euclidean "0,0" "3,4"`,
		Args: cobra.ExactArgs(2),
		RunE: runSimilarity,
	}
	cmd.Flags().StringP("metric", "m", "cosine", "metric (cosine|euclidean|manhattan|dot)")
	return cmd
}

func runSimilarity(cmd *cobra.Command, args []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	defer a.logger.Sync()

	metricName, _ := cmd.Flags().GetString("metric")
	metric, err := vector.ParseMetric(metricName)
	if err != nil {
		return err
	}
	x, err := parseVector(args[0])
	if err != nil {
		return fmt.Errorf("first vector: %w", err)
	}
	y, err := parseVector(args[1])
	if err != nil {
		return fmt.Errorf("second vector: %w", err)
	}
	score, err := metric.Compare(x, y)
	if err != nil {
		return err
	}
	return cli.WriteScore(cmd.OutOrStdout(), &cli.ScoreOutput{Metric: metric, Score: score}, a.format)
}
