// ABOUTME: Post represents a published image with AI-generated tag text
// ABOUTME: Carries the embedding computed once at creation time
package models

import "time"

// Post is a published image with its metadata and embedding.
// The embedding is derived from the AI-generated tag text at creation
// and is never recomputed afterwards.
type Post struct {
	ID           string     `json:"id"`
	AuthorID     string     `json:"author_id"`
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	ImageURL     string     `json:"image_url,omitempty"`
	AIGenerated  bool       `json:"ai_generated"`
	AIConfidence int        `json:"ai_confidence"`
	Tags         string     `json:"tags"`
	Embedding    []float64  `json:"embedding,omitempty"`
	LikesCount   int        `json:"likes_count"`
	LikedBy      []string   `json:"liked_by,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}

// LikedByUser reports whether the given user has liked the post
func (p *Post) LikedByUser(userID string) bool {
	for _, id := range p.LikedBy {
		if id == userID {
			return true
		}
	}
	return false
}
