package matching

import "math"

// CosineSimilarity returns the cosine similarity of two equal-length vectors:
// dot product divided by the product of the Euclidean norms. If either vector
// has zero norm the result is 0 (no information, not an error). Unequal
// lengths fail with *DimensionMismatchError.
//
// The result is not clamped: cosine similarity of arbitrary embeddings lies
// in [-1,1], though the embeddings used here are non-negative in practice.
func CosineSimilarity(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, &DimensionMismatchError{LenA: len(a), LenB: len(b)}
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0, nil
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}
