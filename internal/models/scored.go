// ABOUTME: ScoredPost pairs a post with its similarity score during ranking
// ABOUTME: Ephemeral ranking result, never persisted
package models

// ScoredPost is a ranking pair produced by the similarity scorer.
// Score is cosine similarity in [-1, 1].
type ScoredPost struct {
	Post  Post    `json:"post"`
	Score float64 `json:"score"`
}
