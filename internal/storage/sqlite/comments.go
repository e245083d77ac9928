// ABOUTME: Comment persistence for SQLite
// ABOUTME: Comments reference posts and cascade on post deletion
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lumen-social/lumen/internal/models"
)

// CommentStore handles comment persistence
type CommentStore struct {
	db *DB
}

// NewCommentStore creates a new CommentStore
func NewCommentStore(db *DB) *CommentStore {
	return &CommentStore{db: db}
}

// Save inserts or updates a comment
func (s *CommentStore) Save(comment *models.Comment) error {
	likedBy, err := json.Marshal(comment.LikedBy)
	if err != nil {
		return fmt.Errorf("failed to marshal liked_by: %w", err)
	}

	createdAt := comment.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err = s.db.Exec(`
		INSERT INTO comments (id, post_id, user_id, text, liked_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			text = excluded.text,
			liked_by = excluded.liked_by
	`, comment.ID, comment.PostID, comment.UserID, comment.Text, string(likedBy), createdAt)

	return err
}

// ForPost returns all comments on a post, oldest first
func (s *CommentStore) ForPost(postID string) ([]models.Comment, error) {
	rows, err := s.db.Query(`
		SELECT id, post_id, user_id, text, liked_by, created_at
		FROM comments
		WHERE post_id = ?
		ORDER BY created_at ASC
	`, postID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var comments []models.Comment
	for rows.Next() {
		var (
			comment models.Comment
			likedBy sql.NullString
		)
		if err := rows.Scan(&comment.ID, &comment.PostID, &comment.UserID,
			&comment.Text, &likedBy, &comment.CreatedAt); err != nil {
			return nil, err
		}
		if likedBy.Valid && likedBy.String != "" {
			if err := json.Unmarshal([]byte(likedBy.String), &comment.LikedBy); err != nil {
				return nil, fmt.Errorf("failed to unmarshal liked_by for comment %s: %w", comment.ID, err)
			}
		}
		comments = append(comments, comment)
	}
	return comments, rows.Err()
}

// Delete removes a comment by ID
func (s *CommentStore) Delete(commentID string) error {
	_, err := s.db.Exec("DELETE FROM comments WHERE id = ?", commentID)
	return err
}
