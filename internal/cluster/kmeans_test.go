package cluster

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/hyperjump/embedkit/internal/vector"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestKMeans_SeparatesTwoGroups(t *testing.T) {
	vecs := []vector.Vector{{0, 0}, {0, 1}, {10, 10}, {10, 11}}
	for seed := int64(0); seed < 20; seed++ {
		got, err := KMeans(vecs, 2, WithSeed(seed))
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		if got[0] != got[1] || got[2] != got[3] || got[0] == got[2] {
			t.Errorf("seed %d: assignments %v do not split the two groups", seed, got)
		}
	}
}

func TestKMeans_SingletonFallback(t *testing.T) {
	got, err := KMeans([]vector.Vector{{1, 1}}, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0] != 0 {
		t.Errorf("got %v, want [0]", got)
	}

	vecs := []vector.Vector{{1}, {1}, {2}}
	got, err = KMeans(vecs, 3)
	if err != nil {
		t.Fatal(err)
	}
	for i, c := range got {
		if c != i {
			t.Errorf("k == n: got %v, want [0 1 2]", got)
			break
		}
	}
}

func TestKMeans_InvalidClusterCount(t *testing.T) {
	for _, k := range []int{0, -1} {
		if _, err := KMeans([]vector.Vector{{1}}, k); !errors.Is(err, ErrInvalidClusterCount) {
			t.Errorf("k=%d: expected ErrInvalidClusterCount, got %v", k, err)
		}
	}
	if _, err := KMeans(nil, 0); !errors.Is(err, ErrInvalidClusterCount) {
		t.Errorf("k must be checked before the empty-input shortcut, got %v", err)
	}
}

func TestKMeans_Empty(t *testing.T) {
	got, err := KMeans(nil, 3)
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("got %v, want empty non-nil slice", got)
	}
}

func TestKMeans_DimensionMismatch(t *testing.T) {
	_, err := KMeans([]vector.Vector{{0, 0}, {1}, {2, 2}}, 2, WithSeed(1))
	if !errors.Is(err, vector.ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestKMeans_AssignmentShapeAndRange(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	vecs := make([]vector.Vector, 60)
	for i := range vecs {
		vecs[i] = vector.Vector{rng.Float64() * 10, rng.Float64() * 10, rng.Float64() * 10}
	}
	for _, k := range []int{1, 2, 5, 13} {
		got, err := KMeans(vecs, k, WithSeed(int64(k)))
		if err != nil {
			t.Fatalf("k=%d: %v", k, err)
		}
		if len(got) != len(vecs) {
			t.Fatalf("k=%d: len=%d, want %d", k, len(got), len(vecs))
		}
		for i, c := range got {
			if c < 0 || c >= k {
				t.Errorf("k=%d: assignment[%d]=%d out of range", k, i, c)
			}
		}
	}
}

func TestKMeans_DeterministicWithSeed(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	vecs := make([]vector.Vector, 40)
	for i := range vecs {
		vecs[i] = vector.Vector{rng.NormFloat64(), rng.NormFloat64()}
	}
	first, err := KMeans(vecs, 4, WithSeed(42))
	if err != nil {
		t.Fatal(err)
	}
	for run := 0; run < 5; run++ {
		again, _ := KMeans(vecs, 4, WithSeed(42))
		if !equalAssignments(first, again) {
			t.Fatalf("run %d: %v != %v", run, again, first)
		}
		viaRand, _ := KMeans(vecs, 4, WithRand(rand.New(rand.NewSource(42))))
		if !equalAssignments(first, viaRand) {
			t.Fatalf("WithRand run %d: %v != %v", run, viaRand, first)
		}
	}
}

func TestKMeans_DoesNotModifyInput(t *testing.T) {
	vecs := []vector.Vector{{0, 0}, {0, 1}, {10, 10}, {10, 11}}
	if _, err := KMeans(vecs, 2, WithSeed(3)); err != nil {
		t.Fatal(err)
	}
	want := []vector.Vector{{0, 0}, {0, 1}, {10, 10}, {10, 11}}
	for i := range vecs {
		if !vector.Equal(vecs[i], want[i]) {
			t.Errorf("input %d changed to %v", i, vecs[i])
		}
	}
}

func TestFit_Centroids(t *testing.T) {
	vecs := []vector.Vector{{0, 0}, {0, 2}, {10, 10}, {10, 12}}
	res, err := Fit(vecs, 2, WithSeed(5))
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Centroids) != 2 {
		t.Fatalf("got %d centroids", len(res.Centroids))
	}
	low := res.Centroids[res.Assignments[0]]
	high := res.Centroids[res.Assignments[2]]
	if !vector.Equal(low, vector.Vector{0, 1}) || !vector.Equal(high, vector.Vector{10, 11}) {
		t.Errorf("centroids = %v, %v", low, high)
	}
	if res.Iterations < 1 || res.Iterations > DefaultMaxIterations {
		t.Errorf("iterations = %d", res.Iterations)
	}
}

func TestFit_MaxIterations(t *testing.T) {
	vecs := []vector.Vector{{0, 0}, {0, 1}, {10, 10}, {10, 11}, {5, 5}}
	res, err := Fit(vecs, 2, WithSeed(1), WithMaxIterations(1))
	if err != nil {
		t.Fatal(err)
	}
	if res.Iterations != 1 {
		t.Errorf("iterations = %d, want 1", res.Iterations)
	}
	if len(res.Assignments) != len(vecs) {
		t.Errorf("assignments = %v", res.Assignments)
	}
}

func TestFit_LogsTerminalState(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	vecs := []vector.Vector{{0, 0}, {0, 1}, {10, 10}, {10, 11}}
	if _, err := Fit(vecs, 2, WithSeed(1), WithLogger(zap.New(core))); err != nil {
		t.Fatal(err)
	}
	entries := logs.FilterMessage("kmeans finished").All()
	if len(entries) != 1 {
		t.Fatalf("expected one log entry, got %d", len(entries))
	}
	if state := entries[0].ContextMap()["state"]; state != StateConverged.String() {
		t.Errorf("state = %v, want converged", state)
	}
}

func TestAssign_TieGoesToLowestCentroid(t *testing.T) {
	centroids := []vector.Vector{{1, 0}, {-1, 0}, {1, 0}}
	got := assign([]vector.Vector{{0, 0}, {2, 0}, {-3, 0}}, centroids)
	want := []int{0, 0, 1}
	if !equalAssignments(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestUpdateCentroids_EmptyClusterKeepsPosition(t *testing.T) {
	vecs := []vector.Vector{{0, 0}, {2, 2}}
	prev := []vector.Vector{{1, 1}, {7, 7}}
	next := updateCentroids(vecs, []int{0, 0}, prev, 2)
	if !vector.Equal(next[0], vector.Vector{1, 1}) {
		t.Errorf("centroid 0 = %v, want [1 1]", next[0])
	}
	if !vector.Equal(next[1], vector.Vector{7, 7}) {
		t.Errorf("empty centroid moved to %v", next[1])
	}
}

func TestState_String(t *testing.T) {
	if StateMaxIterReached.String() != "max_iter_reached" || State(42).String() != "unknown" {
		t.Error("unexpected state names")
	}
}

func BenchmarkKMeans(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	vecs := make([]vector.Vector, 500)
	for i := range vecs {
		v := make(vector.Vector, 64)
		for d := range v {
			v[d] = rng.NormFloat64()
		}
		vecs[i] = v
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := KMeans(vecs, 8, WithSeed(int64(i))); err != nil {
			b.Fatal(err)
		}
	}
}
