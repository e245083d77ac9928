// ABOUTME: User profile persistence for SQLite
// ABOUTME: Stores the interest embedding as a BLOB alongside JSON list columns
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lumen-social/lumen/internal/models"
)

// ProfileStore handles user profile persistence
type ProfileStore struct {
	db *DB
}

// NewProfileStore creates a new ProfileStore
func NewProfileStore(db *DB) *ProfileStore {
	return &ProfileStore{db: db}
}

// Save inserts or updates a user profile
func (s *ProfileStore) Save(user *models.User) error {
	interests, err := json.Marshal(user.Interests)
	if err != nil {
		return fmt.Errorf("failed to marshal interests: %w", err)
	}
	subscriptions, err := json.Marshal(user.Subscriptions)
	if err != nil {
		return fmt.Errorf("failed to marshal subscriptions: %w", err)
	}
	followers, err := json.Marshal(user.Followers)
	if err != nil {
		return fmt.Errorf("failed to marshal followers: %w", err)
	}

	createdAt := user.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err = s.db.Exec(`
		INSERT INTO users (uid, email, interests, embedding, avatar_url,
			subscriptions, followers, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(uid) DO UPDATE SET
			email = excluded.email,
			interests = excluded.interests,
			embedding = excluded.embedding,
			avatar_url = excluded.avatar_url,
			subscriptions = excluded.subscriptions,
			followers = excluded.followers
	`, user.UID, user.Email, string(interests), vectorToBlob(user.Embedding),
		user.AvatarURL, string(subscriptions), string(followers), createdAt)

	return err
}

// Get retrieves a user profile by UID, nil if not found
func (s *ProfileStore) Get(uid string) (*models.User, error) {
	var (
		user          models.User
		interests     sql.NullString
		embedding     []byte
		subscriptions sql.NullString
		followers     sql.NullString
	)

	err := s.db.QueryRow(`
		SELECT uid, email, interests, embedding, avatar_url, subscriptions, followers, created_at
		FROM users
		WHERE uid = ?
	`, uid).Scan(&user.UID, &user.Email, &interests, &embedding,
		&user.AvatarURL, &subscriptions, &followers, &user.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	user.Embedding = blobToVector(embedding)
	if err := unmarshalList(interests, &user.Interests); err != nil {
		return nil, fmt.Errorf("failed to unmarshal interests for %s: %w", uid, err)
	}
	if err := unmarshalList(subscriptions, &user.Subscriptions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal subscriptions for %s: %w", uid, err)
	}
	if err := unmarshalList(followers, &user.Followers); err != nil {
		return nil, fmt.Errorf("failed to unmarshal followers for %s: %w", uid, err)
	}

	return &user, nil
}

// Delete removes a user profile
func (s *ProfileStore) Delete(uid string) error {
	_, err := s.db.Exec("DELETE FROM users WHERE uid = ?", uid)
	return err
}

func unmarshalList(col sql.NullString, target *[]string) error {
	if !col.Valid || col.String == "" {
		return nil
	}
	return json.Unmarshal([]byte(col.String), target)
}
