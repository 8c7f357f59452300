// Package cli provides output formatting for the embedkit commands.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/hyperjump/embedkit/internal/models"
	"github.com/hyperjump/embedkit/internal/vector"
	"github.com/hyperjump/embedkit/pkg/utils"
)

// OutputFormat is the format for command output.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

const previewLen = 120

// ParseOutputFormat resolves a format name. Empty defaults to text.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch OutputFormat(s) {
	case OutputText, "":
		return OutputText, nil
	case OutputJSON:
		return OutputJSON, nil
	default:
		return "", fmt.Errorf("unknown output format: %s (supported: text, json)", s)
	}
}

// SearchOutput is a ranked result list for one query.
type SearchOutput struct {
	Query   string                 `json:"query"`
	Model   string                 `json:"model"`
	Results []*models.SearchResult `json:"results"`
}

// WriteSearchResults writes search results to w in the given format.
func WriteSearchResults(w io.Writer, out *SearchOutput, format OutputFormat) error {
	if format == OutputJSON {
		return writeJSON(w, out)
	}
	fmt.Fprintf(w, "Found %d results for %q\n\n", len(out.Results), out.Query)
	for rank, r := range out.Results {
		fmt.Fprintf(w, "%2d. [%d] %.4f  %s\n", rank+1, r.Index, r.Similarity, utils.Truncate(r.Document, previewLen))
	}
	return nil
}

// ClusterMember is one clustered entry.
type ClusterMember struct {
	ID      string `json:"id"`
	Text    string `json:"text"`
	Cluster int    `json:"cluster"`
}

// ClusterOutput is the result of a clustering command.
type ClusterOutput struct {
	K       int             `json:"k"`
	Members []ClusterMember `json:"members"`
}

// NewClusterOutput pairs ids and texts with their assignments. All slices share one order.
func NewClusterOutput(k int, ids, texts []string, assignments []int) *ClusterOutput {
	out := &ClusterOutput{K: k, Members: make([]ClusterMember, len(assignments))}
	for i, c := range assignments {
		out.Members[i] = ClusterMember{ID: ids[i], Text: texts[i], Cluster: c}
	}
	return out
}

// WriteClusters writes members grouped by cluster id.
func WriteClusters(w io.Writer, out *ClusterOutput, format OutputFormat) error {
	if format == OutputJSON {
		return writeJSON(w, out)
	}
	groups := make(map[int][]ClusterMember)
	for _, m := range out.Members {
		groups[m.Cluster] = append(groups[m.Cluster], m)
	}
	ids := make([]int, 0, len(groups))
	for c := range groups {
		ids = append(ids, c)
	}
	sort.Ints(ids)
	fmt.Fprintf(w, "%d vectors in %d clusters (k=%d)\n", len(out.Members), len(groups), out.K)
	for _, c := range ids {
		fmt.Fprintf(w, "\n--- cluster %d (%d) ---\n", c, len(groups[c]))
		for _, m := range groups[c] {
			fmt.Fprintf(w, "%s  %s\n", m.ID, utils.Truncate(m.Text, previewLen))
		}
	}
	return nil
}

// ScoreOutput is the result of comparing two vectors.
type ScoreOutput struct {
	Metric vector.Metric `json:"metric"`
	Score  float64       `json:"score"`
}

// WriteScore writes a single metric value.
func WriteScore(w io.Writer, out *ScoreOutput, format OutputFormat) error {
	if format == OutputJSON {
		return writeJSON(w, out)
	}
	_, err := fmt.Fprintf(w, "%s: %.6f\n", out.Metric, out.Score)
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
