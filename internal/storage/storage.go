// ABOUTME: Storage facade selecting between SQLite and Charm KV backends
// ABOUTME: Defines the persistence interface the recommendation service is wired to
package storage

import (
	"fmt"

	"github.com/lumen-social/lumen/internal/charm"
	"github.com/lumen-social/lumen/internal/config"
	"github.com/lumen-social/lumen/internal/models"
)

// Store is the persistence interface shared by both backends. It covers
// the candidate source filters and the profile store the recommendation
// engine is wired against, plus comment persistence.
type Store interface {
	// Posts
	SavePost(post *models.Post) error
	GetPost(postID string) (*models.Post, error)
	AllPosts() ([]models.Post, error)
	PostsByAuthor(authorID string) ([]models.Post, error)
	PostsByAuthors(authorIDs []string) ([]models.Post, error)
	PostsLikedBy(userID string) ([]models.Post, error)
	DeletePost(postID string) error

	// Profiles
	GetProfile(uid string) (*models.User, error)
	SaveProfile(user *models.User) error

	// Comments
	SaveComment(comment *models.Comment) error
	CommentsForPost(postID string) ([]models.Comment, error)

	Close() error
}

// Open creates the store selected by the configuration
func Open(cfg *config.Config) (Store, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		return OpenSQLite(cfg)
	case config.BackendCharm:
		client, err := charm.NewClient(&charm.Config{
			Host:     cfg.CharmHost,
			DBName:   cfg.CharmDBName,
			AutoSync: cfg.AutoSync,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to open charm backend: %w", err)
		}
		return NewCharmStore(client, cfg.VectorDimension), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

// validateEmbedding rejects vectors with the wrong dimension before they
// reach storage. Empty embeddings are allowed: a post may be created
// before its tag text could be embedded.
func validateEmbedding(vector []float64, dimension int) error {
	if len(vector) == 0 || dimension <= 0 {
		return nil
	}
	return models.ValidateDimension(vector, dimension)
}
