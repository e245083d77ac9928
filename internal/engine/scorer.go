// ABOUTME: Similarity scorer ranking posts against a reference vector
// ABOUTME: Cosine similarity with threshold, limit, and optional exclusion predicate
package engine

import (
	"math"
	"sort"

	"github.com/lumen-social/lumen/internal/models"
)

// DefaultThreshold is the minimum similarity required for a candidate to
// be retained in ranked results.
const DefaultThreshold = 0.4

// DefaultLimit is the maximum number of ranked results returned when the
// caller does not ask for a specific count.
const DefaultLimit = 10

// RankOptions control thresholding, truncation, and candidate exclusion.
type RankOptions struct {
	// Threshold is the minimum similarity score. Zero means DefaultThreshold;
	// candidates scoring below it are discarded.
	Threshold float64
	// Limit caps the result length. Zero means DefaultLimit.
	Limit int
	// Exclude, when non-nil, removes candidates before scoring. Used by
	// free-text search to drop posts whose tag text equals the query.
	Exclude func(models.Post) bool
}

func (o RankOptions) threshold() float64 {
	if o.Threshold == 0 {
		return DefaultThreshold
	}
	return o.Threshold
}

func (o RankOptions) limit() int {
	if o.Limit <= 0 {
		return DefaultLimit
	}
	return o.Limit
}

// Rank scores candidates against the reference vector by cosine similarity,
// discards scores below the threshold, and returns at most Limit results in
// descending score order. Ties keep their input order (stable sort).
//
// Rank is pure: it never mutates candidate embeddings. Candidates with a
// mismatched dimension or a zero-magnitude vector score 0 and fall below any
// positive threshold rather than aborting the pass. An empty reference
// vector yields an empty result because no meaningful comparison exists.
func Rank(reference []float64, candidates []models.Post, opts RankOptions) []models.ScoredPost {
	if len(reference) == 0 || len(candidates) == 0 {
		return nil
	}

	threshold := opts.threshold()

	scored := make([]models.ScoredPost, 0, len(candidates))
	for _, post := range candidates {
		if opts.Exclude != nil && opts.Exclude(post) {
			continue
		}

		sim := CosineSimilarity(reference, post.Embedding)
		if sim < threshold {
			continue
		}
		scored = append(scored, models.ScoredPost{Post: post, Score: sim})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if limit := opts.limit(); len(scored) > limit {
		scored = scored[:limit]
	}

	return scored
}

// CosineSimilarity calculates cosine similarity between two vectors.
// Vectors of unequal length and zero-magnitude vectors are defined as
// not similar (0.0) rather than an error.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0.0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}
