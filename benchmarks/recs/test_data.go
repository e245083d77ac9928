// ABOUTME: Synthetic benchmark scenarios with hand-crafted low-dim embeddings
// ABOUTME: Each scenario defines a profile, a candidate pool, and ground truth

package recs

import (
	"time"

	"github.com/lumen-social/lumen/internal/models"
)

// Scenario is one benchmark case: a user, a candidate pool, and the set
// of posts a correct ranking should surface
type Scenario struct {
	ID          string
	Description string
	User        models.User
	Posts       []models.Post
	Relevant    []string // post IDs that count as correct results
	Limit       int
}

// Scenarios returns the built-in benchmark cases. Embeddings are
// 3-dimensional unit-ish vectors so results are exact and reviewable:
// axis 0 ~ landscapes, axis 1 ~ portraits, axis 2 ~ abstract art.
func Scenarios() []Scenario {
	now := time.Now()
	post := func(id string, embedding []float64) models.Post {
		return models.Post{
			ID:        id,
			AuthorID:  "seed",
			Title:     id,
			Embedding: embedding,
			CreatedAt: now,
		}
	}

	return []Scenario{
		{
			ID:          "landscape-fan",
			Description: "User interested only in landscapes should see landscape posts first",
			User:        models.User{UID: "bench-1", Embedding: []float64{1, 0, 0}},
			Posts: []models.Post{
				post("mountains", []float64{0.95, 0.05, 0}),
				post("coastline", []float64{0.9, 0, 0.1}),
				post("studio-portrait", []float64{0.05, 0.95, 0}),
				post("ink-abstract", []float64{0, 0.1, 0.9}),
				post("desert", []float64{0.85, 0.1, 0.05}),
			},
			Relevant: []string{"mountains", "coastline", "desert"},
			Limit:    3,
		},
		{
			ID:          "mixed-interests",
			Description: "User split between portraits and abstract should not see landscapes",
			User:        models.User{UID: "bench-2", Embedding: []float64{0, 0.7, 0.7}},
			Posts: []models.Post{
				post("mountains", []float64{0.95, 0.05, 0}),
				post("street-portrait", []float64{0.1, 0.9, 0}),
				post("oil-abstract", []float64{0, 0.2, 0.95}),
				post("charcoal-figure", []float64{0, 0.75, 0.6}),
			},
			Relevant: []string{"street-portrait", "oil-abstract", "charcoal-figure"},
			Limit:    3,
		},
		{
			ID:          "threshold-filtering",
			Description: "Weakly related posts must fall below the similarity threshold",
			User:        models.User{UID: "bench-3", Embedding: []float64{0, 0, 1}},
			Posts: []models.Post{
				post("glitch-art", []float64{0, 0.1, 0.95}),
				post("mountains", []float64{0.95, 0.05, 0}),
				post("noise-study", []float64{0.1, 0, 0.9}),
				post("opposite", []float64{0, 0, -1}),
			},
			Relevant: []string{"glitch-art", "noise-study"},
			Limit:    10,
		},
	}
}
