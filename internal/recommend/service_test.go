// ABOUTME: Tests for the recommendation service orchestration
// ABOUTME: Uses in-memory fakes for storage and the embedder
package recommend

import (
	"errors"
	"math"
	"testing"

	"github.com/lumen-social/lumen/internal/models"
)

type fakeStore struct {
	posts    map[string]*models.Post
	order    []string
	profiles map[string]*models.User
	failAll  error
	saved    *models.User
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		posts:    make(map[string]*models.Post),
		profiles: make(map[string]*models.User),
	}
}

func (f *fakeStore) addPost(post models.Post) {
	f.posts[post.ID] = &post
	f.order = append(f.order, post.ID)
}

func (f *fakeStore) AllPosts() ([]models.Post, error) {
	if f.failAll != nil {
		return nil, f.failAll
	}
	var posts []models.Post
	for _, id := range f.order {
		posts = append(posts, *f.posts[id])
	}
	return posts, nil
}

func (f *fakeStore) PostsByAuthor(authorID string) ([]models.Post, error) {
	var posts []models.Post
	for _, id := range f.order {
		if f.posts[id].AuthorID == authorID {
			posts = append(posts, *f.posts[id])
		}
	}
	return posts, nil
}

func (f *fakeStore) PostsByAuthors(authorIDs []string) ([]models.Post, error) {
	set := make(map[string]bool)
	for _, id := range authorIDs {
		set[id] = true
	}
	var posts []models.Post
	for _, id := range f.order {
		if set[f.posts[id].AuthorID] {
			posts = append(posts, *f.posts[id])
		}
	}
	return posts, nil
}

func (f *fakeStore) PostsLikedBy(userID string) ([]models.Post, error) {
	var posts []models.Post
	for _, id := range f.order {
		if f.posts[id].LikedByUser(userID) {
			posts = append(posts, *f.posts[id])
		}
	}
	return posts, nil
}

func (f *fakeStore) GetPost(postID string) (*models.Post, error) {
	post, ok := f.posts[postID]
	if !ok {
		return nil, nil
	}
	copied := *post
	return &copied, nil
}

func (f *fakeStore) GetProfile(uid string) (*models.User, error) {
	user, ok := f.profiles[uid]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (f *fakeStore) SaveProfile(user *models.User) error {
	copied := *user
	f.profiles[user.UID] = &copied
	f.saved = &copied
	return nil
}

type fakeEmbedder struct {
	vectors map[string][]float64
	err     error
}

func (f *fakeEmbedder) GenerateEmbedding(text string) ([]float64, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.vectors[text], nil
}

func newService(store *fakeStore, embedder *fakeEmbedder) *Service {
	return NewService(store, store, embedder, DefaultOptions())
}

func postIDs(posts []models.Post) []string {
	ids := make([]string, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}
	return ids
}

func TestRecommendForUser(t *testing.T) {
	store := newFakeStore()
	store.profiles["u1"] = &models.User{UID: "u1", Embedding: []float64{1, 0}}
	store.addPost(models.Post{ID: "close", Embedding: []float64{0.9, 0.1}})
	store.addPost(models.Post{ID: "far", Embedding: []float64{-1, 0}})
	store.addPost(models.Post{ID: "mid", Embedding: []float64{0.5, 0.5}})

	svc := newService(store, &fakeEmbedder{})
	posts, err := svc.RecommendForUser("u1", 0)
	if err != nil {
		t.Fatalf("RecommendForUser failed: %v", err)
	}

	got := postIDs(posts)
	want := []string{"close", "mid"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestRecommendForUserNoEmbedding(t *testing.T) {
	store := newFakeStore()
	store.profiles["u1"] = &models.User{UID: "u1"}
	store.addPost(models.Post{ID: "p1", Embedding: []float64{1, 0}})

	svc := newService(store, &fakeEmbedder{})
	posts, err := svc.RecommendForUser("u1", 0)
	if err != nil {
		t.Fatalf("expected no error for embedding-less profile, got %v", err)
	}
	if len(posts) != 0 {
		t.Errorf("expected empty feed, got %d posts", len(posts))
	}
}

func TestRecommendForUserMissingProfile(t *testing.T) {
	svc := newService(newFakeStore(), &fakeEmbedder{})
	if _, err := svc.RecommendForUser("ghost", 0); err == nil {
		t.Error("expected error for missing profile")
	}
}

func TestRecommendForUserStoreFailure(t *testing.T) {
	store := newFakeStore()
	store.profiles["u1"] = &models.User{UID: "u1", Embedding: []float64{1, 0}}
	store.failAll = errors.New("disk on fire")

	svc := newService(store, &fakeEmbedder{})
	if _, err := svc.RecommendForUser("u1", 0); err == nil {
		t.Error("expected candidate fetch failure to propagate")
	}
}

func TestRecommendDeduplicatesCandidates(t *testing.T) {
	store := newFakeStore()
	store.profiles["u1"] = &models.User{UID: "u1", Embedding: []float64{1, 0}}
	store.addPost(models.Post{ID: "dup", Embedding: []float64{1, 0}})
	// Simulate the same post surfacing twice from the candidate source
	store.order = append(store.order, "dup")

	svc := newService(store, &fakeEmbedder{})
	posts, err := svc.RecommendForUser("u1", 0)
	if err != nil {
		t.Fatalf("RecommendForUser failed: %v", err)
	}
	if len(posts) != 1 {
		t.Errorf("expected duplicate candidate collapsed to 1 result, got %d", len(posts))
	}
}

func TestSearchByText(t *testing.T) {
	store := newFakeStore()
	store.addPost(models.Post{ID: "sunset", Tags: "sunset, beach", Embedding: []float64{1, 0}})
	store.addPost(models.Post{ID: "cat", Tags: "cat, indoor", Embedding: []float64{0, 1}})

	embedder := &fakeEmbedder{vectors: map[string][]float64{
		"sunset": {1, 0},
	}}

	svc := newService(store, embedder)
	posts, err := svc.SearchByText("sunset", 0)
	if err != nil {
		t.Fatalf("SearchByText failed: %v", err)
	}
	if len(posts) != 1 || posts[0].ID != "sunset" {
		t.Errorf("expected [sunset], got %v", postIDs(posts))
	}
}

func TestSearchByTextExcludesExactTagMatch(t *testing.T) {
	store := newFakeStore()
	store.addPost(models.Post{ID: "exact", Tags: "sunset", Embedding: []float64{1, 0}})
	store.addPost(models.Post{ID: "related", Tags: "sunset, beach", Embedding: []float64{0.9, 0.1}})

	embedder := &fakeEmbedder{vectors: map[string][]float64{
		"sunset": {1, 0},
	}}

	svc := newService(store, embedder)
	posts, err := svc.SearchByText("sunset", 0)
	if err != nil {
		t.Fatalf("SearchByText failed: %v", err)
	}
	for _, p := range posts {
		if p.ID == "exact" {
			t.Error("post with tag text equal to the query should be excluded")
		}
	}
	if len(posts) != 1 || posts[0].ID != "related" {
		t.Errorf("expected [related], got %v", postIDs(posts))
	}
}

func TestSearchByTextEmptyQuery(t *testing.T) {
	svc := newService(newFakeStore(), &fakeEmbedder{})
	posts, err := svc.SearchByText("   ", 0)
	if err != nil {
		t.Fatalf("expected nil error for empty query, got %v", err)
	}
	if len(posts) != 0 {
		t.Errorf("expected no results for empty query, got %d", len(posts))
	}
}

func TestSearchByTextEmbedderFailureDegrades(t *testing.T) {
	store := newFakeStore()
	store.addPost(models.Post{ID: "p1", Embedding: []float64{1, 0}})

	svc := newService(store, &fakeEmbedder{err: errors.New("rate limited")})
	posts, err := svc.SearchByText("sunset", 0)
	if err != nil {
		t.Fatalf("embedder failure should degrade to empty results, got error %v", err)
	}
	if len(posts) != 0 {
		t.Errorf("expected no results when query embedding fails, got %d", len(posts))
	}
}

func TestSimilarToPostExcludesSelf(t *testing.T) {
	store := newFakeStore()
	store.addPost(models.Post{ID: "ref", Embedding: []float64{1, 0}})
	store.addPost(models.Post{ID: "twin", Embedding: []float64{1, 0}})
	store.addPost(models.Post{ID: "near", Embedding: []float64{0.8, 0.2}})

	svc := newService(store, &fakeEmbedder{})
	posts, err := svc.SimilarToPost("ref", 0)
	if err != nil {
		t.Fatalf("SimilarToPost failed: %v", err)
	}
	for _, p := range posts {
		if p.ID == "ref" {
			t.Error("reference post must not appear in its own similar list")
		}
	}
	if len(posts) != 2 {
		t.Errorf("expected 2 similar posts, got %d", len(posts))
	}
}

func TestSimilarToPostHonorsLimitWithSelfPresent(t *testing.T) {
	store := newFakeStore()
	store.addPost(models.Post{ID: "ref", Embedding: []float64{1, 0}})
	for _, id := range []string{"a", "b", "c"} {
		store.addPost(models.Post{ID: id, Embedding: []float64{0.9, 0.1}})
	}

	svc := newService(store, &fakeEmbedder{})
	posts, err := svc.SimilarToPost("ref", 2)
	if err != nil {
		t.Fatalf("SimilarToPost failed: %v", err)
	}
	if len(posts) != 2 {
		t.Errorf("expected limit of 2 respected after self-exclusion, got %d", len(posts))
	}
}

func TestSimilarToPostMissing(t *testing.T) {
	svc := newService(newFakeStore(), &fakeEmbedder{})
	if _, err := svc.SimilarToPost("ghost", 0); err == nil {
		t.Error("expected error for missing post")
	}
}

func TestSimilarToPostNoEmbedding(t *testing.T) {
	store := newFakeStore()
	store.addPost(models.Post{ID: "bare"})
	store.addPost(models.Post{ID: "other", Embedding: []float64{1, 0}})

	svc := newService(store, &fakeEmbedder{})
	posts, err := svc.SimilarToPost("bare", 0)
	if err != nil {
		t.Fatalf("expected no error for embedding-less post, got %v", err)
	}
	if len(posts) != 0 {
		t.Errorf("expected no results, got %d", len(posts))
	}
}

func TestSubscriptionFeed(t *testing.T) {
	store := newFakeStore()
	store.profiles["u1"] = &models.User{UID: "u1", Subscriptions: []string{"alice"}}
	store.addPost(models.Post{ID: "p1", AuthorID: "alice"})
	store.addPost(models.Post{ID: "p2", AuthorID: "bob"})
	store.addPost(models.Post{ID: "p3", AuthorID: "alice"})

	svc := newService(store, &fakeEmbedder{})
	posts, err := svc.SubscriptionFeed("u1")
	if err != nil {
		t.Fatalf("SubscriptionFeed failed: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("expected 2 posts from followed authors, got %d", len(posts))
	}
	for _, p := range posts {
		if p.AuthorID != "alice" {
			t.Errorf("unexpected author %s in subscription feed", p.AuthorID)
		}
	}
}

func TestSubscriptionFeedNoSubscriptions(t *testing.T) {
	store := newFakeStore()
	store.profiles["u1"] = &models.User{UID: "u1"}

	svc := newService(store, &fakeEmbedder{})
	posts, err := svc.SubscriptionFeed("u1")
	if err != nil {
		t.Fatalf("SubscriptionFeed failed: %v", err)
	}
	if len(posts) != 0 {
		t.Errorf("expected empty feed without subscriptions, got %d", len(posts))
	}
}

func TestRecordInteractionDirections(t *testing.T) {
	tests := []struct {
		name string
		kind Interaction
		want []float64
	}{
		{"view pulls toward", InteractionView, []float64{0.98, 0.02}},
		{"comment pulls toward", InteractionComment, []float64{0.95, 0.05}},
		{"like pulls strongest", InteractionLike, []float64{0.9, 0.1}},
		{"dismiss pushes away", InteractionDismiss, []float64{0.95, -0.05}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore()
			store.profiles["u1"] = &models.User{UID: "u1", Embedding: []float64{1, 0}}
			store.addPost(models.Post{ID: "p1", Embedding: []float64{0, 1}})

			svc := newService(store, &fakeEmbedder{})
			if err := svc.RecordInteraction("u1", "p1", tt.kind); err != nil {
				t.Fatalf("RecordInteraction failed: %v", err)
			}

			got := store.profiles["u1"].Embedding
			for i := range tt.want {
				if math.Abs(got[i]-tt.want[i]) > 1e-9 {
					t.Errorf("dimension %d: expected %f, got %f", i, tt.want[i], got[i])
				}
			}
		})
	}
}

func TestRecordInteractionDimensionMismatchNoOp(t *testing.T) {
	store := newFakeStore()
	store.profiles["u1"] = &models.User{UID: "u1", Embedding: []float64{1, 0, 0}}
	store.addPost(models.Post{ID: "p1", Embedding: []float64{0, 1}})

	svc := newService(store, &fakeEmbedder{})
	if err := svc.RecordInteraction("u1", "p1", InteractionLike); err != nil {
		t.Fatalf("dimension mismatch must not be an error: %v", err)
	}
	if store.saved != nil {
		t.Error("profile must not be written on dimension mismatch")
	}
}

func TestRecordInteractionPostWithoutEmbedding(t *testing.T) {
	store := newFakeStore()
	store.profiles["u1"] = &models.User{UID: "u1", Embedding: []float64{1, 0}}
	store.addPost(models.Post{ID: "p1"})

	svc := newService(store, &fakeEmbedder{})
	if err := svc.RecordInteraction("u1", "p1", InteractionView); err != nil {
		t.Fatalf("embedding-less post must be a no-op: %v", err)
	}
	if store.saved != nil {
		t.Error("profile must not be written for an embedding-less post")
	}
}

func TestRecordInteractionUnknownKind(t *testing.T) {
	store := newFakeStore()
	store.profiles["u1"] = &models.User{UID: "u1", Embedding: []float64{1, 0}}
	store.addPost(models.Post{ID: "p1", Embedding: []float64{0, 1}})

	svc := newService(store, &fakeEmbedder{})
	if err := svc.RecordInteraction("u1", "p1", Interaction("teleport")); err == nil {
		t.Error("expected error for unknown interaction kind")
	}
}

func TestSeedProfile(t *testing.T) {
	store := newFakeStore()
	embedder := &fakeEmbedder{vectors: map[string][]float64{
		"hiking, photography": {0.6, 0.8},
	}}

	svc := newService(store, embedder)
	user := &models.User{UID: "u1", Interests: []string{"hiking", "photography"}}
	if err := svc.SeedProfile(user); err != nil {
		t.Fatalf("SeedProfile failed: %v", err)
	}

	saved := store.profiles["u1"]
	if saved == nil {
		t.Fatal("profile was not saved")
	}
	if len(saved.Embedding) != 2 || saved.Embedding[0] != 0.6 {
		t.Errorf("expected seeded embedding [0.6 0.8], got %v", saved.Embedding)
	}
}

func TestSeedProfileRequiresInterests(t *testing.T) {
	svc := newService(newFakeStore(), &fakeEmbedder{})
	if err := svc.SeedProfile(&models.User{UID: "u1"}); err == nil {
		t.Error("expected error when seeding without interests")
	}
}

func TestSeedProfileEmbedderFailure(t *testing.T) {
	svc := newService(newFakeStore(), &fakeEmbedder{err: errors.New("boom")})
	user := &models.User{UID: "u1", Interests: []string{"art"}}
	if err := svc.SeedProfile(user); err == nil {
		t.Error("expected embedder failure to propagate for profile seeding")
	}
}

func TestParseInteraction(t *testing.T) {
	tests := []struct {
		input   string
		want    Interaction
		wantErr bool
	}{
		{"view", InteractionView, false},
		{"LIKE", InteractionLike, false},
		{"comment", InteractionComment, false},
		{"dismiss", InteractionDismiss, false},
		{"not_interested", InteractionDismiss, false},
		{"not-interested", InteractionDismiss, false},
		{" view ", InteractionView, false},
		{"share", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseInteraction(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseInteraction(%q): expected error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseInteraction(%q): unexpected error %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseInteraction(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
