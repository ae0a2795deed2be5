package textvec

import "math"

// Vector is a sparse row of fixed dimensionality
// Indices are strictly increasing and parallel to Values
type Vector struct {
	Dim     int
	Indices []int
	Values  []float64
}

// NNZ is the number of stored entries
func (v Vector) NNZ() int { return len(v.Indices) }

// Dot returns the inner product with a dense weight slice of length Dim
func (v Vector) Dot(w []float64) float64 {
	var s float64
	for k, i := range v.Indices {
		s += v.Values[k] * w[i]
	}
	return s
}

// Norm returns the euclidean length
func (v Vector) Norm() float64 {
	var s float64
	for _, x := range v.Values {
		s += x * x
	}
	return math.Sqrt(s)
}

// Dense expands the vector, mostly useful in tests
func (v Vector) Dense() []float64 {
	out := make([]float64, v.Dim)
	for k, i := range v.Indices {
		out[i] = v.Values[k]
	}
	return out
}
