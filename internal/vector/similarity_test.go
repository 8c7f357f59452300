package vector

import (
	"errors"
	"math"
	"testing"
)

const eps = 1e-9

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b Vector
		want float64
	}{
		{"identical vectors", Vector{1, 0}, Vector{1, 0}, 1},
		{"orthogonal vectors", Vector{1, 0}, Vector{0, 1}, 0},
		{"opposite vectors", Vector{1, 0}, Vector{-1, 0}, -1},
		{"scaled copy", Vector{1, 2, 3}, Vector{2, 4, 6}, 1},
		{"45 degrees", Vector{1, 0}, Vector{1, 1}, math.Sqrt2 / 2},
		{"zero vector", Vector{0, 0}, Vector{1, 1}, 0},
		{"both zero", Vector{0, 0}, Vector{0, 0}, 0},
		{"empty vectors", Vector{}, Vector{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CosineSimilarity(tt.a, tt.b)
			if err != nil {
				t.Fatalf("CosineSimilarity: %v", err)
			}
			if math.Abs(got-tt.want) > eps {
				t.Errorf("got %f, want %f", got, tt.want)
			}
		})
	}
}

func TestCosineSimilarity_SelfAndSymmetry(t *testing.T) {
	vs := []Vector{
		{0.3, -1.2, 4.5},
		{1e-3, 2e-3, 3e-3},
		{-7, 0, 0.5},
		{100, 200, -300},
	}
	for i, a := range vs {
		self, err := CosineSimilarity(a, a)
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(self-1) > eps {
			t.Errorf("cos(v%d, v%d) = %f, want 1", i, i, self)
		}
		for j, b := range vs {
			ab, _ := CosineSimilarity(a, b)
			ba, _ := CosineSimilarity(b, a)
			if ab != ba {
				t.Errorf("cos(v%d, v%d)=%f != cos(v%d, v%d)=%f", i, j, ab, j, i, ba)
			}
			if ab < -1-eps || ab > 1+eps {
				t.Errorf("cos(v%d, v%d)=%f outside [-1, 1]", i, j, ab)
			}
		}
	}
}

func TestEuclideanDistance(t *testing.T) {
	d, err := EuclideanDistance(Vector{0, 0}, Vector{3, 4})
	if err != nil {
		t.Fatal(err)
	}
	if d != 5 {
		t.Errorf("got %f, want 5", d)
	}
	v := Vector{1.5, -2, 8}
	if d, _ := EuclideanDistance(v, v); d != 0 {
		t.Errorf("distance to self = %f, want 0", d)
	}
}

func TestManhattanDistance(t *testing.T) {
	d, err := ManhattanDistance(Vector{1, -1, 2}, Vector{4, 1, 2})
	if err != nil {
		t.Fatal(err)
	}
	if d != 5 {
		t.Errorf("got %f, want 5", d)
	}
}

func TestDotProduct(t *testing.T) {
	d, err := DotProduct(Vector{1, 2, 3}, Vector{4, -5, 6})
	if err != nil {
		t.Fatal(err)
	}
	if d != 12 {
		t.Errorf("got %f, want 12", d)
	}
}

func TestMetrics_DimensionMismatch(t *testing.T) {
	a, b := Vector{1, 2}, Vector{1, 2, 3}
	funcs := map[string]MetricFunc{
		"cosine":    CosineSimilarity,
		"euclidean": EuclideanDistance,
		"manhattan": ManhattanDistance,
		"dot":       DotProduct,
		"squared":   SquaredEuclideanDistance,
	}
	for name, fn := range funcs {
		if _, err := fn(a, b); !errors.Is(err, ErrDimensionMismatch) {
			t.Errorf("%s: expected ErrDimensionMismatch, got %v", name, err)
		}
	}
}

func TestNormalize(t *testing.T) {
	for _, v := range []Vector{{3, 4}, {0.01, 0, -0.02}, {-9, 12, 20, 1}} {
		n := Normalize(v)
		if math.Abs(Magnitude(n)-1) > eps {
			t.Errorf("|Normalize(%v)| = %f, want 1", v, Magnitude(n))
		}
	}
	orig := Vector{3, 4}
	_ = Normalize(orig)
	if orig[0] != 3 || orig[1] != 4 {
		t.Error("Normalize must not modify its input")
	}
	zero := Normalize(Vector{0, 0})
	if zero[0] != 0 || zero[1] != 0 {
		t.Errorf("zero vector should be unchanged, got %v", zero)
	}
}

func TestMean(t *testing.T) {
	m, err := Mean([]Vector{{0, 0}, {2, 4}, {4, 2}})
	if err != nil {
		t.Fatal(err)
	}
	if !Equal(m, Vector{2, 2}) {
		t.Errorf("got %v, want [2 2]", m)
	}
	if _, err := Mean(nil); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput, got %v", err)
	}
	if _, err := Mean([]Vector{{1}, {1, 2}}); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestCheckDimensions(t *testing.T) {
	dim, err := CheckDimensions([]Vector{{1, 2}, {3, 4}})
	if err != nil || dim != 2 {
		t.Errorf("got %d, %v", dim, err)
	}
	if dim, err := CheckDimensions(nil); err != nil || dim != 0 {
		t.Errorf("empty input: got %d, %v", dim, err)
	}
	if _, err := CheckDimensions([]Vector{{1, 2}, {3}}); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestFromFloat32(t *testing.T) {
	v := FromFloat32([]float32{0.5, -1, 2})
	if !Equal(v, Vector{0.5, -1, 2}) {
		t.Errorf("got %v", v)
	}
}

func BenchmarkCosineSimilarity(b *testing.B) {
	x := make(Vector, 384)
	y := make(Vector, 384)
	for i := range x {
		x[i] = float64(i%7) - 3
		y[i] = float64(i%5) - 2
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = CosineSimilarity(x, y)
	}
}
