// Package cluster partitions vectors into groups with k-means.
package cluster

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/hyperjump/embedkit/internal/vector"
	"go.uber.org/zap"
)

// DefaultMaxIterations bounds the assign/update loop when no limit is given.
const DefaultMaxIterations = 100

// ErrInvalidClusterCount is returned when k is not positive.
var ErrInvalidClusterCount = errors.New("cluster count must be positive")

// Result is the outcome of a k-means run.
type Result struct {
	// Assignments holds one cluster id in [0, k) per input vector, in input order.
	Assignments []int
	// Centroids holds the final cluster centers, indexed by cluster id.
	Centroids []vector.Vector
	// Iterations is the number of assignment passes performed.
	Iterations int
}

// KMeans assigns each vector to one of k clusters and returns the cluster ids in input order.
//
// When k >= len(vectors) every vector gets its own cluster, [0, 1, ..., n-1], without
// running the algorithm. Canonical k-means has no such shortcut.
func KMeans(vectors []vector.Vector, k int, opts ...Option) ([]int, error) {
	res, err := Fit(vectors, k, opts...)
	if err != nil {
		return nil, err
	}
	return res.Assignments, nil
}

// Fit runs k-means and returns assignments together with the final centroids.
// Initial centroids are k distinct input vectors drawn without replacement from the
// configured random source. Each pass assigns vectors to the nearest centroid by
// Euclidean distance, ties going to the lowest centroid id, then moves every centroid
// to the mean of its members. A centroid that loses all members stays where it was.
// The loop ends when an assignment repeats or the iteration limit is hit; both end
// states return the current assignment.
func Fit(vectors []vector.Vector, k int, opts ...Option) (*Result, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidClusterCount, k)
	}
	n := len(vectors)
	if n == 0 {
		return &Result{Assignments: []int{}}, nil
	}
	dim, err := vector.CheckDimensions(vectors)
	if err != nil {
		return nil, err
	}
	if k >= n {
		return singletons(vectors), nil
	}

	o := newOptions(opts)
	state := StateInitialized
	centroids := initCentroids(vectors, k, o.rng)

	var assignments []int
	iterations := 0
	for iterations < o.maxIterations {
		iterations++
		state = StateAssigning
		next := assign(vectors, centroids)
		if assignments != nil && equalAssignments(next, assignments) {
			state = StateConverged
			break
		}
		assignments = next
		state = StateUpdating
		centroids = updateCentroids(vectors, assignments, centroids, dim)
	}
	if state != StateConverged {
		state = StateMaxIterReached
	}
	o.logger.Debug("kmeans finished",
		zap.Stringer("state", state),
		zap.Int("iterations", iterations),
		zap.Int("vectors", n),
		zap.Int("k", k),
	)
	return &Result{Assignments: assignments, Centroids: centroids, Iterations: iterations}, nil
}

func singletons(vectors []vector.Vector) *Result {
	res := &Result{
		Assignments: make([]int, len(vectors)),
		Centroids:   make([]vector.Vector, len(vectors)),
	}
	for i, v := range vectors {
		res.Assignments[i] = i
		res.Centroids[i] = v.Clone()
	}
	return res
}

func initCentroids(vectors []vector.Vector, k int, rng *rand.Rand) []vector.Vector {
	perm := rng.Perm(len(vectors))
	centroids := make([]vector.Vector, k)
	for i := 0; i < k; i++ {
		centroids[i] = vectors[perm[i]].Clone()
	}
	return centroids
}

// assign expects all dimensions to have been checked.
func assign(vectors, centroids []vector.Vector) []int {
	out := make([]int, len(vectors))
	for i, v := range vectors {
		best := 0
		bestDist, _ := vector.EuclideanDistance(v, centroids[0])
		for j := 1; j < len(centroids); j++ {
			d, _ := vector.EuclideanDistance(v, centroids[j])
			if d < bestDist {
				best, bestDist = j, d
			}
		}
		out[i] = best
	}
	return out
}

func updateCentroids(vectors []vector.Vector, assignments []int, prev []vector.Vector, dim int) []vector.Vector {
	sums := make([]vector.Vector, len(prev))
	counts := make([]int, len(prev))
	for i, c := range assignments {
		if sums[c] == nil {
			sums[c] = make(vector.Vector, dim)
		}
		for d, x := range vectors[i] {
			sums[c][d] += x
		}
		counts[c]++
	}
	next := make([]vector.Vector, len(prev))
	for c := range prev {
		if counts[c] == 0 {
			next[c] = prev[c]
			continue
		}
		for d := range sums[c] {
			sums[c][d] /= float64(counts[c])
		}
		next[c] = sums[c]
	}
	return next
}

func equalAssignments(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Option configures a k-means run.
type Option func(*options)

type options struct {
	maxIterations int
	rng           *rand.Rand
	logger        *zap.Logger
}

func newOptions(opts []Option) *options {
	o := &options{maxIterations: DefaultMaxIterations}
	for _, opt := range opts {
		opt(o)
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	return o
}

// WithMaxIterations caps the number of assignment passes. Non-positive values keep the default.
func WithMaxIterations(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxIterations = n
		}
	}
}

// WithRand sets the random source used to pick initial centroids.
// A *rand.Rand is not safe for concurrent use; give each concurrent run its own.
func WithRand(r *rand.Rand) Option {
	return func(o *options) { o.rng = r }
}

// WithSeed seeds a fresh random source so that runs over the same input repeat exactly.
func WithSeed(seed int64) Option {
	return func(o *options) { o.rng = rand.New(rand.NewSource(seed)) }
}

// WithLogger sets a logger for debug output.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}
