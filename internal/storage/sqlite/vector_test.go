// ABOUTME: Tests for the embedding BLOB codec
// ABOUTME: Verifies round-trips, empty vectors, and special float values

package sqlite

import (
	"math"
	"testing"
)

func TestVectorBlobRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		vector []float64
	}{
		{"typical values", []float64{0.1, -0.2, 0.3}},
		{"single dimension", []float64{42.0}},
		{"zeros", []float64{0, 0, 0}},
		{"extremes", []float64{math.MaxFloat64, math.SmallestNonzeroFloat64, -math.MaxFloat64}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blob := vectorToBlob(tt.vector)
			if len(blob) != len(tt.vector)*8 {
				t.Fatalf("blob length = %d, want %d", len(blob), len(tt.vector)*8)
			}

			got := blobToVector(blob)
			if len(got) != len(tt.vector) {
				t.Fatalf("decoded length = %d, want %d", len(got), len(tt.vector))
			}
			for i := range tt.vector {
				if got[i] != tt.vector[i] {
					t.Errorf("dimension %d: got %v, want %v", i, got[i], tt.vector[i])
				}
			}
		})
	}
}

func TestVectorBlobEmpty(t *testing.T) {
	if blob := vectorToBlob(nil); blob != nil {
		t.Errorf("vectorToBlob(nil) = %v, want nil", blob)
	}
	if blob := vectorToBlob([]float64{}); blob != nil {
		t.Errorf("vectorToBlob(empty) = %v, want nil", blob)
	}
	if vector := blobToVector(nil); vector != nil {
		t.Errorf("blobToVector(nil) = %v, want nil", vector)
	}
}
