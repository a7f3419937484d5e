package retriever

import "math"

// CosineSimilarity returns (a·b)/(‖a‖·‖b‖). Vectors must have equal length.
// If either vector has zero norm the similarity is 0.
func CosineSimilarity(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	// rounding can push parallel vectors just past ±1
	return max(-1, min(1, sim))
}
