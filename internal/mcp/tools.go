// ABOUTME: MCP tool definitions and registration for the Lumen feed server
// ABOUTME: Defines JSON schemas for the five recommendation tools
package mcp

import (
	"github.com/lumen-social/lumen/internal/recommend"
	"github.com/lumen-social/lumen/internal/storage"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, svc *recommend.Service, store storage.Store) *Handlers {
	handlers := &Handlers{
		service: svc,
		store:   store,
	}

	// 1. search_posts - Semantic search over posts by free text
	server.AddTool(mcp.Tool{
		Name:        "search_posts",
		Description: "Search posts by free-text query using embedding similarity. Returns posts ranked by relevance.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Free-text search query",
				},
				"limit": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of results to return (default: 10)",
					"default":     10,
				},
			},
			Required: []string{"query"},
		},
	}, handlers.SearchPosts)

	// 2. recommend_posts - Personalized feed for a user
	server.AddTool(mcp.Tool{
		Name:        "recommend_posts",
		Description: "Get personalized post recommendations for a user, ranked against their interest profile.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"user_id": map[string]interface{}{
					"type":        "string",
					"description": "User to recommend posts for",
				},
				"limit": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of results to return (default: 10)",
					"default":     10,
				},
			},
			Required: []string{"user_id"},
		},
	}, handlers.RecommendPosts)

	// 3. similar_posts - Posts similar to a given post
	server.AddTool(mcp.Tool{
		Name:        "similar_posts",
		Description: "Find posts similar to a given post by embedding similarity. The reference post is excluded from results.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"post_id": map[string]interface{}{
					"type":        "string",
					"description": "Reference post to find similar posts for",
				},
				"limit": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of results to return (default: 10)",
					"default":     10,
				},
			},
			Required: []string{"post_id"},
		},
	}, handlers.SimilarPosts)

	// 4. record_interaction - Shift a user's interest profile
	server.AddTool(mcp.Tool{
		Name:        "record_interaction",
		Description: "Record a user interaction with a post (view, like, comment, or dismiss) and update the user's interest profile accordingly.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"user_id": map[string]interface{}{
					"type":        "string",
					"description": "User who interacted",
				},
				"post_id": map[string]interface{}{
					"type":        "string",
					"description": "Post that was interacted with",
				},
				"kind": map[string]interface{}{
					"type":        "string",
					"description": "Interaction kind: view, like, comment, or dismiss",
					"enum":        []string{"view", "like", "comment", "dismiss"},
				},
			},
			Required: []string{"user_id", "post_id", "kind"},
		},
	}, handlers.RecordInteraction)

	// 5. get_profile - Inspect a user profile
	server.AddTool(mcp.Tool{
		Name:        "get_profile",
		Description: "Get a user profile with interests, subscriptions, and embedding status.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"user_id": map[string]interface{}{
					"type":        "string",
					"description": "User to look up",
				},
			},
			Required: []string{"user_id"},
		},
	}, handlers.GetProfile)

	return handlers
}
