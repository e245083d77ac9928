// ABOUTME: SQLite-backed implementation of the storage facade
// ABOUTME: Composes the post, profile, and comment stores over one database
package storage

import (
	"fmt"

	"github.com/lumen-social/lumen/internal/config"
	"github.com/lumen-social/lumen/internal/models"
	"github.com/lumen-social/lumen/internal/storage/sqlite"
)

// SQLiteStore implements Store over a local SQLite database
type SQLiteStore struct {
	db        *sqlite.DB
	posts     *sqlite.PostStore
	profiles  *sqlite.ProfileStore
	comments  *sqlite.CommentStore
	dimension int
}

// OpenSQLite opens the SQLite store at the default XDG path
func OpenSQLite(cfg *config.Config) (*SQLiteStore, error) {
	db, err := sqlite.Open(sqlite.DefaultDBPath())
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite store: %w", err)
	}
	return NewSQLiteStore(db, cfg.VectorDimension), nil
}

// NewSQLiteStore wraps an open database (used directly in tests with an
// in-memory database)
func NewSQLiteStore(db *sqlite.DB, dimension int) *SQLiteStore {
	return &SQLiteStore{
		db:        db,
		posts:     sqlite.NewPostStore(db),
		profiles:  sqlite.NewProfileStore(db),
		comments:  sqlite.NewCommentStore(db),
		dimension: dimension,
	}
}

func (s *SQLiteStore) SavePost(post *models.Post) error {
	if err := validateEmbedding(post.Embedding, s.dimension); err != nil {
		return err
	}
	return s.posts.Save(post)
}

func (s *SQLiteStore) GetPost(postID string) (*models.Post, error) {
	return s.posts.Get(postID)
}

func (s *SQLiteStore) AllPosts() ([]models.Post, error) {
	return s.posts.All()
}

func (s *SQLiteStore) PostsByAuthor(authorID string) ([]models.Post, error) {
	return s.posts.ByAuthor(authorID)
}

func (s *SQLiteStore) PostsByAuthors(authorIDs []string) ([]models.Post, error) {
	return s.posts.ByAuthors(authorIDs)
}

func (s *SQLiteStore) PostsLikedBy(userID string) ([]models.Post, error) {
	return s.posts.LikedBy(userID)
}

func (s *SQLiteStore) DeletePost(postID string) error {
	return s.posts.Delete(postID)
}

func (s *SQLiteStore) GetProfile(uid string) (*models.User, error) {
	return s.profiles.Get(uid)
}

func (s *SQLiteStore) SaveProfile(user *models.User) error {
	if err := validateEmbedding(user.Embedding, s.dimension); err != nil {
		return err
	}
	return s.profiles.Save(user)
}

func (s *SQLiteStore) SaveComment(comment *models.Comment) error {
	return s.comments.Save(comment)
}

func (s *SQLiteStore) CommentsForPost(postID string) ([]models.Comment, error) {
	return s.comments.ForPost(postID)
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
