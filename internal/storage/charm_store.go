// ABOUTME: Charm KV-backed implementation of the storage facade
// ABOUTME: Cloud-synced JSON storage keyed by post/profile/comment prefixes
package storage

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lumen-social/lumen/internal/charm"
	"github.com/lumen-social/lumen/internal/models"
)

// CharmStore implements Store over Charm KV for cloud sync across devices
type CharmStore struct {
	charm     *charm.Client
	dimension int
}

// NewCharmStore wraps a charm client
func NewCharmStore(client *charm.Client, dimension int) *CharmStore {
	return &CharmStore{charm: client, dimension: dimension}
}

// Client exposes the underlying charm client for sync management commands
func (s *CharmStore) Client() *charm.Client {
	return s.charm
}

func (s *CharmStore) SavePost(post *models.Post) error {
	if err := validateEmbedding(post.Embedding, s.dimension); err != nil {
		return err
	}
	return s.charm.SetJSON(charm.PostKey(post.ID), post)
}

func (s *CharmStore) GetPost(postID string) (*models.Post, error) {
	var post models.Post
	if err := s.charm.GetJSON(charm.PostKey(postID), &post); err != nil {
		// Charm KV reports missing keys as an error; treat as not found
		return nil, nil
	}
	return &post, nil
}

func (s *CharmStore) AllPosts() ([]models.Post, error) {
	keys, err := s.charm.ListKeys(charm.PostPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list post keys: %w", err)
	}

	var posts []models.Post
	for _, key := range keys {
		var post models.Post
		if err := s.charm.GetJSON(key, &post); err != nil {
			continue
		}
		posts = append(posts, post)
	}

	// Newest first, matching the SQLite backend's ordering
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})

	return posts, nil
}

func (s *CharmStore) PostsByAuthor(authorID string) ([]models.Post, error) {
	all, err := s.AllPosts()
	if err != nil {
		return nil, err
	}
	var posts []models.Post
	for _, post := range all {
		if post.AuthorID == authorID {
			posts = append(posts, post)
		}
	}
	return posts, nil
}

func (s *CharmStore) PostsByAuthors(authorIDs []string) ([]models.Post, error) {
	if len(authorIDs) == 0 {
		return nil, nil
	}
	set := make(map[string]bool, len(authorIDs))
	for _, id := range authorIDs {
		set[id] = true
	}

	all, err := s.AllPosts()
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

func (s *CharmStore) PostsLikedBy(userID string) ([]models.Post, error) {
	all, err := s.AllPosts()
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

func (s *CharmStore) DeletePost(postID string) error {
	if err := s.charm.Delete(charm.PostKey(postID)); err != nil {
		return err
	}

	// Drop the post's comments as well
	keys, err := s.charm.ListKeys(charm.CommentPrefix + postID + ":")
	if err != nil {
		return err
	}
	for _, key := range keys {
		if err := s.charm.Delete(key); err != nil {
			return err
		}
	}
	return nil
}

func (s *CharmStore) GetProfile(uid string) (*models.User, error) {
	var user models.User
	if err := s.charm.GetJSON(charm.ProfileKey(uid), &user); err != nil {
		return nil, nil
	}
	return &user, nil
}

func (s *CharmStore) SaveProfile(user *models.User) error {
	if err := validateEmbedding(user.Embedding, s.dimension); err != nil {
		return err
	}
	return s.charm.SetJSON(charm.ProfileKey(user.UID), user)
}

func (s *CharmStore) SaveComment(comment *models.Comment) error {
	return s.charm.SetJSON(charm.CommentKey(comment.PostID, comment.ID), comment)
}

func (s *CharmStore) CommentsForPost(postID string) ([]models.Comment, error) {
	keys, err := s.charm.ListKeys(charm.CommentPrefix + postID + ":")
	if err != nil {
		return nil, fmt.Errorf("failed to list comment keys: %w", err)
	}

	var comments []models.Comment
	for _, key := range keys {
		if !strings.HasPrefix(key, charm.CommentPrefix) {
			continue
		}
		var comment models.Comment
		if err := s.charm.GetJSON(key, &comment); err != nil {
			continue
		}
		comments = append(comments, comment)
	}

	// Oldest first, matching the SQLite backend's ordering
	sort.SliceStable(comments, func(i, j int) bool {
		return comments[i].CreatedAt.Before(comments[j].CreatedAt)
	})

	return comments, nil
}

func (s *CharmStore) Close() error {
	return s.charm.Close()
}
