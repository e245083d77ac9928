// ABOUTME: Tests for SQLite post, profile, and comment persistence
// ABOUTME: Runs against an in-memory database with the real schema

package sqlite

import (
	"fmt"
	"testing"
	"time"

	"github.com/lumen-social/lumen/internal/models"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("opening in-memory database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestPostRoundTrip(t *testing.T) {
	db := testDB(t)
	store := NewPostStore(db)

	updated := time.Now().Truncate(time.Second)
	post := &models.Post{
		ID:           "p1",
		AuthorID:     "alice",
		Title:        "Harbor at dawn",
		Description:  "Long exposure from the pier",
		ImageURL:     "https://example.com/harbor.jpg",
		AIGenerated:  true,
		AIConfidence: 78,
		Tags:         "harbor, long exposure, dawn",
		Embedding:    []float64{0.1, -0.2, 0.3},
		LikesCount:   2,
		LikedBy:      []string{"bob", "carol"},
		CreatedAt:    time.Now().Truncate(time.Second),
		UpdatedAt:    &updated,
	}

	if err := store.Save(post); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := store.Get("p1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got == nil {
		t.Fatal("Get returned nil for existing post")
	}

	if got.Title != post.Title || got.AuthorID != post.AuthorID {
		t.Errorf("got %q by %q, want %q by %q", got.Title, got.AuthorID, post.Title, post.AuthorID)
	}
	if got.AIConfidence != 78 || !got.AIGenerated {
		t.Errorf("AI fields lost: confidence=%d generated=%v", got.AIConfidence, got.AIGenerated)
	}
	if len(got.Embedding) != 3 || got.Embedding[1] != -0.2 {
		t.Errorf("embedding mismatch: %v", got.Embedding)
	}
	if len(got.LikedBy) != 2 || !got.LikedByUser("bob") {
		t.Errorf("liked_by mismatch: %v", got.LikedBy)
	}
	if got.UpdatedAt == nil {
		t.Error("updated_at lost in round trip")
	}
}

func TestPostGetMissing(t *testing.T) {
	store := NewPostStore(testDB(t))

	got, err := store.Get("ghost")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for missing post, got %+v", got)
	}
}

func TestPostUpsertPreservesEmbedding(t *testing.T) {
	store := NewPostStore(testDB(t))

	post := &models.Post{
		ID:        "p1",
		AuthorID:  "alice",
		Title:     "Original",
		Embedding: []float64{1, 2, 3},
		CreatedAt: time.Now(),
	}
	if err := store.Save(post); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// An edit never carries a recomputed embedding
	post.Title = "Edited"
	post.Embedding = nil
	if err := store.Save(post); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}

	got, err := store.Get("p1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Title != "Edited" {
		t.Errorf("title not updated: %q", got.Title)
	}
	if len(got.Embedding) != 3 {
		t.Errorf("embedding should survive an edit, got %v", got.Embedding)
	}
}

func TestPostAllNewestFirst(t *testing.T) {
	store := NewPostStore(testDB(t))

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		post := &models.Post{
			ID:        fmt.Sprintf("p%d", i),
			AuthorID:  "alice",
			Title:     fmt.Sprintf("Post %d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := store.Save(post); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	posts, err := store.All()
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	if len(posts) != 3 {
		t.Fatalf("expected 3 posts, got %d", len(posts))
	}
	if posts[0].ID != "p2" || posts[2].ID != "p0" {
		t.Errorf("posts not ordered newest first: %s, %s, %s",
			posts[0].ID, posts[1].ID, posts[2].ID)
	}
}

func TestPostFilters(t *testing.T) {
	store := NewPostStore(testDB(t))

	posts := []*models.Post{
		{ID: "p1", AuthorID: "alice", LikedBy: []string{"bob"}, CreatedAt: time.Now()},
		{ID: "p2", AuthorID: "bob", CreatedAt: time.Now()},
		{ID: "p3", AuthorID: "carol", LikedBy: []string{"bob", "alice"}, CreatedAt: time.Now()},
	}
	for _, p := range posts {
		if err := store.Save(p); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	byAlice, err := store.ByAuthor("alice")
	if err != nil {
		t.Fatalf("ByAuthor failed: %v", err)
	}
	if len(byAlice) != 1 || byAlice[0].ID != "p1" {
		t.Errorf("ByAuthor(alice) = %v", byAlice)
	}

	subscribed, err := store.ByAuthors([]string{"alice", "carol"})
	if err != nil {
		t.Fatalf("ByAuthors failed: %v", err)
	}
	if len(subscribed) != 2 {
		t.Errorf("ByAuthors expected 2 posts, got %d", len(subscribed))
	}

	empty, err := store.ByAuthors(nil)
	if err != nil {
		t.Fatalf("ByAuthors(nil) failed: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("ByAuthors(nil) expected no posts, got %d", len(empty))
	}

	liked, err := store.LikedBy("bob")
	if err != nil {
		t.Fatalf("LikedBy failed: %v", err)
	}
	if len(liked) != 2 {
		t.Errorf("LikedBy(bob) expected 2 posts, got %d", len(liked))
	}
}

func TestPostDeleteCascadesComments(t *testing.T) {
	db := testDB(t)
	posts := NewPostStore(db)
	comments := NewCommentStore(db)

	post := &models.Post{ID: "p1", AuthorID: "alice", CreatedAt: time.Now()}
	if err := posts.Save(post); err != nil {
		t.Fatalf("Save post failed: %v", err)
	}

	comment := &models.Comment{
		ID:        "c1",
		PostID:    "p1",
		UserID:    "bob",
		Text:      "Beautiful shot",
		CreatedAt: time.Now(),
	}
	if err := comments.Save(comment); err != nil {
		t.Fatalf("Save comment failed: %v", err)
	}

	if err := posts.Delete("p1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	remaining, err := comments.ForPost("p1")
	if err != nil {
		t.Fatalf("ForPost failed: %v", err)
	}
	if len(remaining) != 0 {
		t.Errorf("expected comments to cascade on post delete, found %d", len(remaining))
	}
}

func TestProfileRoundTrip(t *testing.T) {
	store := NewProfileStore(testDB(t))

	user := &models.User{
		UID:           "u1",
		Email:         "u1@example.com",
		Interests:     []string{"street photography", "film"},
		Embedding:     []float64{0.5, 0.5},
		AvatarURL:     "https://example.com/u1.png",
		Subscriptions: []string{"alice"},
		Followers:     []string{"bob"},
		CreatedAt:     time.Now().Truncate(time.Second),
	}

	if err := store.Save(user); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := store.Get("u1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got == nil {
		t.Fatal("Get returned nil for existing profile")
	}

	if got.Email != user.Email {
		t.Errorf("email = %q, want %q", got.Email, user.Email)
	}
	if len(got.Interests) != 2 || got.Interests[0] != "street photography" {
		t.Errorf("interests mismatch: %v", got.Interests)
	}
	if len(got.Embedding) != 2 || got.Embedding[0] != 0.5 {
		t.Errorf("embedding mismatch: %v", got.Embedding)
	}
	if !got.Follows("alice") {
		t.Errorf("subscriptions mismatch: %v", got.Subscriptions)
	}
	if len(got.Followers) != 1 {
		t.Errorf("followers mismatch: %v", got.Followers)
	}
}

func TestProfileGetMissing(t *testing.T) {
	store := NewProfileStore(testDB(t))

	got, err := store.Get("ghost")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for missing profile, got %+v", got)
	}
}

func TestProfileUpsert(t *testing.T) {
	store := NewProfileStore(testDB(t))

	user := &models.User{UID: "u1", Email: "old@example.com", Embedding: []float64{1, 0}}
	if err := store.Save(user); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	user.Email = "new@example.com"
	user.Embedding = []float64{0.9, 0.1}
	if err := store.Save(user); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}

	got, err := store.Get("u1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Email != "new@example.com" {
		t.Errorf("email not updated: %q", got.Email)
	}
	if got.Embedding[0] != 0.9 {
		t.Errorf("embedding not updated: %v", got.Embedding)
	}
}

func TestCommentsOldestFirst(t *testing.T) {
	db := testDB(t)
	posts := NewPostStore(db)
	comments := NewCommentStore(db)

	if err := posts.Save(&models.Post{ID: "p1", AuthorID: "alice", CreatedAt: time.Now()}); err != nil {
		t.Fatalf("Save post failed: %v", err)
	}

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		comment := &models.Comment{
			ID:        fmt.Sprintf("c%d", i),
			PostID:    "p1",
			UserID:    "bob",
			Text:      fmt.Sprintf("comment %d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := comments.Save(comment); err != nil {
			t.Fatalf("Save comment failed: %v", err)
		}
	}

	got, err := comments.ForPost("p1")
	if err != nil {
		t.Fatalf("ForPost failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 comments, got %d", len(got))
	}
	if got[0].ID != "c0" || got[2].ID != "c2" {
		t.Errorf("comments not ordered oldest first: %s, %s, %s",
			got[0].ID, got[1].ID, got[2].ID)
	}
}
