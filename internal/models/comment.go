// ABOUTME: Comment represents a user comment on a post
// ABOUTME: Stored alongside posts and used as a medium-strength interest signal
package models

import "time"

// Comment is a user comment on a post
type Comment struct {
	ID        string    `json:"id"`
	PostID    string    `json:"post_id"`
	UserID    string    `json:"user_id"`
	Text      string    `json:"text"`
	LikedBy   []string  `json:"liked_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
