// ABOUTME: Post persistence for SQLite with embedding BLOB storage
// ABOUTME: Implements the candidate source filters used by the recommendation engine
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lumen-social/lumen/internal/models"
)

// PostStore handles post persistence
type PostStore struct {
	db *DB
}

// NewPostStore creates a new PostStore
func NewPostStore(db *DB) *PostStore {
	return &PostStore{db: db}
}

// Save inserts or updates a post. The embedding is written as-is: it is
// computed once at creation and callers never recompute it on edit.
func (s *PostStore) Save(post *models.Post) error {
	likedBy, err := json.Marshal(post.LikedBy)
	if err != nil {
		return fmt.Errorf("failed to marshal liked_by: %w", err)
	}

	createdAt := post.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	var updatedAt interface{}
	if post.UpdatedAt != nil {
		updatedAt = *post.UpdatedAt
	}

	_, err = s.db.Exec(`
		INSERT INTO posts (id, author_id, title, description, image_url,
			ai_generated, ai_confidence, tags, embedding, likes_count, liked_by,
			created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			tags = excluded.tags,
			likes_count = excluded.likes_count,
			liked_by = excluded.liked_by,
			updated_at = excluded.updated_at
	`, post.ID, post.AuthorID, post.Title, post.Description, post.ImageURL,
		post.AIGenerated, post.AIConfidence, post.Tags, vectorToBlob(post.Embedding),
		post.LikesCount, string(likedBy), createdAt, updatedAt)

	return err
}

// Get retrieves a post by ID, nil if not found
func (s *PostStore) Get(postID string) (*models.Post, error) {
	row := s.db.QueryRow(`
		SELECT id, author_id, title, description, image_url, ai_generated,
			ai_confidence, tags, embedding, likes_count, liked_by, created_at, updated_at
		FROM posts
		WHERE id = ?
	`, postID)

	post, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return post, nil
}

// All returns all posts, newest first
func (s *PostStore) All() ([]models.Post, error) {
	return s.queryPosts(`
		SELECT id, author_id, title, description, image_url, ai_generated,
			ai_confidence, tags, embedding, likes_count, liked_by, created_at, updated_at
		FROM posts
		ORDER BY created_at DESC
	`)
}

// ByAuthor returns posts published by a single author, newest first
func (s *PostStore) ByAuthor(authorID string) ([]models.Post, error) {
	return s.queryPosts(`
		SELECT id, author_id, title, description, image_url, ai_generated,
			ai_confidence, tags, embedding, likes_count, liked_by, created_at, updated_at
		FROM posts
		WHERE author_id = ?
		ORDER BY created_at DESC
	`, authorID)
}

// ByAuthors returns posts from a set of authors, newest first.
// Used for the subscriptions feed.
func (s *PostStore) ByAuthors(authorIDs []string) ([]models.Post, error) {
	if len(authorIDs) == 0 {
		return nil, nil
	}

	set := make(map[string]bool, len(authorIDs))
	for _, id := range authorIDs {
		set[id] = true
	}

	all, err := s.All()
	if err != nil {
		return nil, err
	}

	var posts []models.Post
	for _, post := range all {
		if set[post.AuthorID] {
			posts = append(posts, post)
		}
	}
	return posts, nil
}

// LikedBy returns posts the given user has liked, newest first
func (s *PostStore) LikedBy(userID string) ([]models.Post, error) {
	all, err := s.All()
	if err != nil {
		return nil, err
	}

	var posts []models.Post
	for _, post := range all {
		if post.LikedByUser(userID) {
			posts = append(posts, post)
		}
	}
	return posts, nil
}

// Delete removes a post and its comments (via foreign key cascade)
func (s *PostStore) Delete(postID string) error {
	_, err := s.db.Exec("DELETE FROM posts WHERE id = ?", postID)
	return err
}

func (s *PostStore) queryPosts(query string, args ...interface{}) ([]models.Post, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var posts []models.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, *post)
	}
	return posts, rows.Err()
}

// rowScanner abstracts sql.Row and sql.Rows for scanning
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPost(row rowScanner) (*models.Post, error) {
	var (
		post      models.Post
		embedding []byte
		likedBy   sql.NullString
		updatedAt sql.NullTime
	)

	err := row.Scan(&post.ID, &post.AuthorID, &post.Title, &post.Description,
		&post.ImageURL, &post.AIGenerated, &post.AIConfidence, &post.Tags,
		&embedding, &post.LikesCount, &likedBy, &post.CreatedAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	post.Embedding = blobToVector(embedding)
	if likedBy.Valid && likedBy.String != "" {
		if err := json.Unmarshal([]byte(likedBy.String), &post.LikedBy); err != nil {
			return nil, fmt.Errorf("failed to unmarshal liked_by for post %s: %w", post.ID, err)
		}
	}
	if updatedAt.Valid {
		post.UpdatedAt = &updatedAt.Time
	}

	return &post, nil
}
