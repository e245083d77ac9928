// ABOUTME: Embedding dimension validation for stored vectors
// ABOUTME: Default dimension matches OpenAI text-embedding-3-small
package models

import "fmt"

// DefaultEmbeddingDimension is the dimension of text-embedding-3-small vectors
const DefaultEmbeddingDimension = 1536

// ValidateDimension checks that a vector is non-empty and has the expected length.
// Storage layers call this before persisting; the scoring engine itself never
// rejects vectors, it degrades per-item instead.
func ValidateDimension(vector []float64, expected int) error {
	if len(vector) == 0 {
		return fmt.Errorf("embedding vector cannot be empty")
	}
	if len(vector) != expected {
		return fmt.Errorf("embedding dimension mismatch: expected %d, got %d", expected, len(vector))
	}
	return nil
}
