// Package vector implements the cosine similarity math used for
// nearest-neighbor retrieval over example embeddings.
package vector

import "math"

// MaxDistance is the ceiling of cosine distance (opposite directions).
// Degenerate zero-norm vectors are treated as maximally distant.
const MaxDistance = 2.0

// CosineSimilarity returns the cosine of the angle between a and b,
// clamped to [-1, 1] to absorb floating-point drift. Vectors of
// mismatched dimension or zero norm yield -1 (maximally dissimilar).
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return -1
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return -1
	}

	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	if sim > 1 {
		sim = 1
	} else if sim < -1 {
		sim = -1
	}
	return sim
}

// CosineDistance returns 1 - CosineSimilarity(a, b), in [0, MaxDistance].
func CosineDistance(a, b []float32) float64 {
	return 1 - CosineSimilarity(a, b)
}
