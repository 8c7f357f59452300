package vector

import "math"

// CosineSimilarity returns dot(a,b) / (|a| * |b|), in [-1, 1].
// If either vector has zero magnitude the result is 0 rather than an error.
func CosineSimilarity(a, b Vector) (float64, error) {
	if len(a) != len(b) {
		return 0, mismatch(a, b)
	}
	var dot, na2, nb2 float64
	for i := range a {
		dot += a[i] * b[i]
		na2 += a[i] * a[i]
		nb2 += b[i] * b[i]
	}
	if na2 == 0 || nb2 == 0 {
		return 0, nil
	}
	return dot / (math.Sqrt(na2) * math.Sqrt(nb2)), nil
}

// EuclideanDistance returns the L2 distance between a and b.
func EuclideanDistance(a, b Vector) (float64, error) {
	if len(a) != len(b) {
		return 0, mismatch(a, b)
	}
	return math.Sqrt(squaredDistance(a, b)), nil
}

// ManhattanDistance returns the L1 distance between a and b.
func ManhattanDistance(a, b Vector) (float64, error) {
	if len(a) != len(b) {
		return 0, mismatch(a, b)
	}
	var sum float64
	for i := range a {
		sum += math.Abs(a[i] - b[i])
	}
	return sum, nil
}

// DotProduct returns the inner product of a and b.
func DotProduct(a, b Vector) (float64, error) {
	if len(a) != len(b) {
		return 0, mismatch(a, b)
	}
	var dot float64
	for i := range a {
		dot += a[i] * b[i]
	}
	return dot, nil
}

// Magnitude returns the L2 norm of v.
func Magnitude(v Vector) float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// Normalize returns v scaled to unit length.
// A zero vector is returned as an unchanged copy.
func Normalize(v Vector) Vector {
	out := v.Clone()
	norm := Magnitude(v)
	if norm == 0 {
		return out
	}
	for i := range out {
		out[i] /= norm
	}
	return out
}

// Mean returns the coordinate-wise arithmetic mean of vs.
func Mean(vs []Vector) (Vector, error) {
	if len(vs) == 0 {
		return nil, ErrEmptyInput
	}
	dim, err := CheckDimensions(vs)
	if err != nil {
		return nil, err
	}
	mean := make(Vector, dim)
	for _, v := range vs {
		for i, x := range v {
			mean[i] += x
		}
	}
	n := float64(len(vs))
	for i := range mean {
		mean[i] /= n
	}
	return mean, nil
}

// squaredDistance assumes equal lengths; callers check.
func squaredDistance(a, b Vector) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

// SquaredEuclideanDistance is EuclideanDistance without the final square root.
// It preserves ordering and is what nearest-centroid searches compare.
func SquaredEuclideanDistance(a, b Vector) (float64, error) {
	if len(a) != len(b) {
		return 0, mismatch(a, b)
	}
	return squaredDistance(a, b), nil
}
