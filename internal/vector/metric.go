package vector

import (
	"fmt"
	"strings"
)

// Metric names a similarity or distance function between two vectors.
type Metric string

const (
	// MetricCosine is cosine similarity; higher is closer.
	MetricCosine Metric = "cosine"
	// MetricEuclidean is L2 distance; lower is closer.
	MetricEuclidean Metric = "euclidean"
	// MetricManhattan is L1 distance; lower is closer.
	MetricManhattan Metric = "manhattan"
	// MetricDot is the inner product; higher is closer.
	MetricDot Metric = "dot"
)

// MetricFunc compares two vectors of equal dimension.
type MetricFunc func(a, b Vector) (float64, error)

// ParseMetric resolves a metric by name. Empty defaults to cosine.
func ParseMetric(name string) (Metric, error) {
	switch m := Metric(strings.ToLower(strings.TrimSpace(name))); m {
	case MetricCosine, "":
		return MetricCosine, nil
	case MetricEuclidean, "l2":
		return MetricEuclidean, nil
	case MetricManhattan, "l1":
		return MetricManhattan, nil
	case MetricDot, "inner":
		return MetricDot, nil
	default:
		return "", fmt.Errorf("unknown metric: %s (supported: cosine, euclidean, manhattan, dot)", name)
	}
}

// Func returns the function implementing m.
func (m Metric) Func() MetricFunc {
	switch m {
	case MetricEuclidean:
		return EuclideanDistance
	case MetricManhattan:
		return ManhattanDistance
	case MetricDot:
		return DotProduct
	default:
		return CosineSimilarity
	}
}

// Compare applies m to a and b.
func (m Metric) Compare(a, b Vector) (float64, error) {
	return m.Func()(a, b)
}

// HigherIsBetter reports whether larger values of m mean more similar vectors.
func (m Metric) HigherIsBetter() bool {
	return m == MetricCosine || m == MetricDot || m == ""
}
