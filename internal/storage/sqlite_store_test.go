// ABOUTME: Tests for the SQLite-backed storage facade
// ABOUTME: Covers embedding dimension validation at the write boundary

package storage

import (
	"testing"

	"github.com/lumen-social/lumen/internal/models"
	"github.com/lumen-social/lumen/internal/storage/sqlite"
)

func testStore(t *testing.T, dimension int) *SQLiteStore {
	t.Helper()
	db, err := sqlite.OpenInMemory()
	if err != nil {
		t.Fatalf("opening in-memory database: %v", err)
	}
	store := NewSQLiteStore(db, dimension)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSavePostValidatesDimension(t *testing.T) {
	store := testStore(t, 3)

	good := &models.Post{ID: "p1", AuthorID: "alice", Embedding: []float64{1, 2, 3}}
	if err := store.SavePost(good); err != nil {
		t.Fatalf("SavePost with matching dimension failed: %v", err)
	}

	bad := &models.Post{ID: "p2", AuthorID: "alice", Embedding: []float64{1, 2}}
	if err := store.SavePost(bad); err == nil {
		t.Error("expected dimension error for 2-dim embedding in a 3-dim store")
	}

	// Posts may exist before their tag text could be embedded
	empty := &models.Post{ID: "p3", AuthorID: "alice"}
	if err := store.SavePost(empty); err != nil {
		t.Errorf("SavePost with empty embedding should succeed: %v", err)
	}
}

func TestSaveProfileValidatesDimension(t *testing.T) {
	store := testStore(t, 3)

	good := &models.User{UID: "u1", Embedding: []float64{1, 2, 3}}
	if err := store.SaveProfile(good); err != nil {
		t.Fatalf("SaveProfile with matching dimension failed: %v", err)
	}

	bad := &models.User{UID: "u2", Embedding: []float64{1}}
	if err := store.SaveProfile(bad); err == nil {
		t.Error("expected dimension error for 1-dim embedding in a 3-dim store")
	}
}

func TestStoreInterfaceRoundTrip(t *testing.T) {
	var store Store = testStore(t, 0)

	post := &models.Post{ID: "p1", AuthorID: "alice", Title: "First", Embedding: []float64{1, 0}}
	if err := store.SavePost(post); err != nil {
		t.Fatalf("SavePost failed: %v", err)
	}

	got, err := store.GetPost("p1")
	if err != nil {
		t.Fatalf("GetPost failed: %v", err)
	}
	if got == nil || got.Title != "First" {
		t.Errorf("GetPost = %+v", got)
	}

	all, err := store.AllPosts()
	if err != nil {
		t.Fatalf("AllPosts failed: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("expected 1 post, got %d", len(all))
	}

	if err := store.DeletePost("p1"); err != nil {
		t.Fatalf("DeletePost failed: %v", err)
	}
	gone, err := store.GetPost("p1")
	if err != nil {
		t.Fatalf("GetPost after delete failed: %v", err)
	}
	if gone != nil {
		t.Error("post still present after delete")
	}
}
