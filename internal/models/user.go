// ABOUTME: User represents an account with its aggregated interest embedding
// ABOUTME: The embedding is seeded from onboarding interests and blended on interactions
package models

import "time"

// User is an account profile. Embedding is the aggregated interest
// vector; it is only ever rewritten through the profile updater's
// blending rule, never wholesale.
type User struct {
	UID           string    `json:"uid"`
	Email         string    `json:"email"`
	Interests     []string  `json:"interests,omitempty"`
	Embedding     []float64 `json:"embedding,omitempty"`
	AvatarURL     string    `json:"avatar_url,omitempty"`
	Subscriptions []string  `json:"subscriptions,omitempty"`
	Followers     []string  `json:"followers,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// Follows reports whether the user is subscribed to the given author
func (u *User) Follows(authorID string) bool {
	for _, id := range u.Subscriptions {
		if id == authorID {
			return true
		}
	}
	return false
}
