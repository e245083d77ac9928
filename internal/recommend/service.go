// ABOUTME: Recommendation service wiring the scorer and updater to storage
// ABOUTME: Stateless request/response orchestration with injected collaborators
package recommend

import (
	"fmt"
	"log"
	"strings"

	"github.com/lumen-social/lumen/internal/engine"
	"github.com/lumen-social/lumen/internal/models"
)

// CandidateSource supplies posts with pre-computed embeddings.
// Implemented by both storage backends.
type CandidateSource interface {
	AllPosts() ([]models.Post, error)
	PostsByAuthor(authorID string) ([]models.Post, error)
	PostsByAuthors(authorIDs []string) ([]models.Post, error)
	PostsLikedBy(userID string) ([]models.Post, error)
	GetPost(postID string) (*models.Post, error)
}

// ProfileStore reads and writes user profiles. The profile update is a
// plain read-modify-write with no optimistic-concurrency check; a user
// interacting from two devices at once can lose one update.
type ProfileStore interface {
	GetProfile(uid string) (*models.User, error)
	SaveProfile(user *models.User) error
}

// Embedder turns text into an embedding vector. An error or empty
// vector means "no valid query".
type Embedder interface {
	GenerateEmbedding(text string) ([]float64, error)
}

// Interaction is a user action that shifts the interest profile
type Interaction string

const (
	InteractionView    Interaction = "view"
	InteractionLike    Interaction = "like"
	InteractionComment Interaction = "comment"
	InteractionDismiss Interaction = "not_interested"
)

// ParseInteraction maps a CLI/tool argument to an Interaction
func ParseInteraction(s string) (Interaction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "view":
		return InteractionView, nil
	case "like":
		return InteractionLike, nil
	case "comment":
		return InteractionComment, nil
	case "dismiss", "not_interested", "not-interested":
		return InteractionDismiss, nil
	default:
		return "", fmt.Errorf("unknown interaction %q (want view, like, comment, or dismiss)", s)
	}
}

// Options hold the ranking and blending parameters
type Options struct {
	Threshold    float64
	Limit        int
	AlphaView    float64
	AlphaComment float64
	AlphaLike    float64
	AlphaDismiss float64
}

// DefaultOptions returns the standard parameters
func DefaultOptions() Options {
	return Options{
		Threshold:    engine.DefaultThreshold,
		Limit:        engine.DefaultLimit,
		AlphaView:    engine.DefaultAlphaView,
		AlphaComment: engine.DefaultAlphaComment,
		AlphaLike:    engine.DefaultAlphaLike,
		AlphaDismiss: engine.DefaultAlphaDismiss,
	}
}

// Service orchestrates candidate retrieval, scoring, and profile updates.
// It holds no state across invocations and is safe for concurrent use.
type Service struct {
	posts    CandidateSource
	profiles ProfileStore
	embedder Embedder
	opts     Options
}

// NewService creates a recommendation service with injected collaborators
func NewService(posts CandidateSource, profiles ProfileStore, embedder Embedder, opts Options) *Service {
	if opts.Limit <= 0 {
		opts.Limit = engine.DefaultLimit
	}
	if opts.Threshold == 0 {
		opts.Threshold = engine.DefaultThreshold
	}
	return &Service{
		posts:    posts,
		profiles: profiles,
		embedder: embedder,
		opts:     opts,
	}
}

// RecommendForUser ranks all posts against the user's interest embedding.
// A user without an embedding gets an empty feed rather than an error.
func (s *Service) RecommendForUser(userID string, limit int) ([]models.Post, error) {
	user, err := s.profiles.GetProfile(userID)
	if err != nil {
		return nil, fmt.Errorf("fetching profile: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("profile %s not found", userID)
	}
	if len(user.Embedding) == 0 {
		return nil, nil
	}

	candidates, err := s.posts.AllPosts()
	if err != nil {
		return nil, fmt.Errorf("fetching candidates: %w", err)
	}

	scored := engine.Rank(user.Embedding, dedupeByID(candidates), engine.RankOptions{
		Threshold: s.opts.Threshold,
		Limit:     s.limit(limit),
	})
	return stripScores(scored), nil
}

// SearchByText embeds a free-text query and ranks all posts against it.
// Posts whose raw tag text equals the query are excluded as exact
// duplicates. An embedding failure means no valid query and yields an
// empty result, not an error.
func (s *Service) SearchByText(query string, limit int) ([]models.Post, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	reference, err := s.embedder.GenerateEmbedding(query)
	if err != nil {
		log.Printf("recommend: query embedding failed, returning no matches: %v", err)
		return nil, nil
	}
	if len(reference) == 0 {
		return nil, nil
	}

	candidates, err := s.posts.AllPosts()
	if err != nil {
		return nil, fmt.Errorf("fetching candidates: %w", err)
	}

	scored := engine.Rank(reference, dedupeByID(candidates), engine.RankOptions{
		Threshold: s.opts.Threshold,
		Limit:     s.limit(limit),
		Exclude:   func(p models.Post) bool { return p.Tags == query },
	})
	return stripScores(scored), nil
}

// SimilarToPost ranks all posts against the given post's embedding,
// excluding the post itself from its own results.
func (s *Service) SimilarToPost(postID string, limit int) ([]models.Post, error) {
	post, err := s.posts.GetPost(postID)
	if err != nil {
		return nil, fmt.Errorf("fetching post: %w", err)
	}
	if post == nil {
		return nil, fmt.Errorf("post %s not found", postID)
	}
	if len(post.Embedding) == 0 {
		return nil, nil
	}

	candidates, err := s.posts.AllPosts()
	if err != nil {
		return nil, fmt.Errorf("fetching candidates: %w", err)
	}

	limit = s.limit(limit)

	// Rank with one slot of headroom: the reference post scores 1.0
	// against itself and would otherwise occupy a result slot.
	scored := engine.Rank(post.Embedding, dedupeByID(candidates), engine.RankOptions{
		Threshold: s.opts.Threshold,
		Limit:     limit + 1,
	})

	results := make([]models.Post, 0, limit)
	for _, sc := range scored {
		if sc.Post.ID == postID {
			continue
		}
		results = append(results, sc.Post)
		if len(results) == limit {
			break
		}
	}
	return results, nil
}

// SubscriptionFeed returns posts from the authors the user follows,
// newest first. This feed is chronological, not similarity-ranked.
func (s *Service) SubscriptionFeed(userID string) ([]models.Post, error) {
	user, err := s.profiles.GetProfile(userID)
	if err != nil {
		return nil, fmt.Errorf("fetching profile: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("profile %s not found", userID)
	}
	if len(user.Subscriptions) == 0 {
		return nil, nil
	}

	posts, err := s.posts.PostsByAuthors(user.Subscriptions)
	if err != nil {
		return nil, fmt.Errorf("fetching subscription posts: %w", err)
	}
	return dedupeByID(posts), nil
}

// RecordInteraction blends the post's embedding into the user's interest
// vector with the strength and direction configured for the interaction
// kind. A post without an embedding, or one with a mismatched dimension,
// is a silent no-op: a malformed signal must never corrupt a profile.
func (s *Service) RecordInteraction(userID, postID string, kind Interaction) error {
	post, err := s.posts.GetPost(postID)
	if err != nil {
		return fmt.Errorf("fetching post: %w", err)
	}
	if post == nil {
		return fmt.Errorf("post %s not found", postID)
	}
	if len(post.Embedding) == 0 {
		return nil
	}

	user, err := s.profiles.GetProfile(userID)
	if err != nil {
		return fmt.Errorf("fetching profile: %w", err)
	}
	if user == nil {
		return fmt.Errorf("profile %s not found", userID)
	}

	if len(user.Embedding) != len(post.Embedding) {
		log.Printf("recommend: skipping %s update for %s: dimension mismatch %d vs %d",
			kind, userID, len(user.Embedding), len(post.Embedding))
		return nil
	}

	alpha, direction, err := s.blendFor(kind)
	if err != nil {
		return err
	}

	user.Embedding = engine.Blend(user.Embedding, post.Embedding, alpha, direction)
	if err := s.profiles.SaveProfile(user); err != nil {
		return fmt.Errorf("saving profile: %w", err)
	}
	return nil
}

// SeedProfile creates a profile with an interest embedding derived from
// the onboarding interest tags.
func (s *Service) SeedProfile(user *models.User) error {
	if len(user.Interests) == 0 {
		return fmt.Errorf("at least one interest is required to seed a profile")
	}

	embedding, err := s.embedder.GenerateEmbedding(strings.Join(user.Interests, ", "))
	if err != nil {
		return fmt.Errorf("embedding interests: %w", err)
	}
	if len(embedding) == 0 {
		return fmt.Errorf("embedding interests: empty vector returned")
	}

	user.Embedding = embedding
	if err := s.profiles.SaveProfile(user); err != nil {
		return fmt.Errorf("saving profile: %w", err)
	}
	return nil
}

func (s *Service) blendFor(kind Interaction) (float64, engine.Direction, error) {
	switch kind {
	case InteractionView:
		return s.opts.AlphaView, engine.Toward, nil
	case InteractionLike:
		return s.opts.AlphaLike, engine.Toward, nil
	case InteractionComment:
		return s.opts.AlphaComment, engine.Toward, nil
	case InteractionDismiss:
		return s.opts.AlphaDismiss, engine.Away, nil
	default:
		return 0, engine.Toward, fmt.Errorf("unknown interaction %q", kind)
	}
}

func (s *Service) limit(limit int) int {
	if limit > 0 {
		return limit
	}
	return s.opts.Limit
}

// dedupeByID keeps the first occurrence of each post id, preserving
// input order so ranking stays deterministic.
func dedupeByID(posts []models.Post) []models.Post {
	seen := make(map[string]bool, len(posts))
	result := make([]models.Post, 0, len(posts))
	for _, post := range posts {
		if seen[post.ID] {
			continue
		}
		seen[post.ID] = true
		result = append(result, post)
	}
	return result
}

func stripScores(scored []models.ScoredPost) []models.Post {
	posts := make([]models.Post, len(scored))
	for i, sc := range scored {
		posts[i] = sc.Post
	}
	return posts
}
