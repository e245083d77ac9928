// ABOUTME: MCP tool handler implementations for the Lumen feed server
// ABOUTME: Translates tool requests into recommendation service calls
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lumen-social/lumen/internal/models"
	"github.com/lumen-social/lumen/internal/recommend"
	"github.com/lumen-social/lumen/internal/storage"
	"github.com/mark3labs/mcp-go/mcp"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	service *recommend.Service
	store   storage.Store
}

// SearchPosts handles the search_posts tool
func (h *Handlers) SearchPosts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}

	limit := request.GetInt("limit", 10)

	posts, err := h.service.SearchByText(query, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}

	return postsResult(posts)
}

// RecommendPosts handles the recommend_posts tool
func (h *Handlers) RecommendPosts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, err := request.RequireString("user_id")
	if err != nil {
		return mcp.NewToolResultError("user_id argument is required and must be a string"), nil
	}

	limit := request.GetInt("limit", 10)

	posts, err := h.service.RecommendForUser(userID, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("recommendation failed: %v", err)), nil
	}

	return postsResult(posts)
}

// SimilarPosts handles the similar_posts tool
func (h *Handlers) SimilarPosts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	postID, err := request.RequireString("post_id")
	if err != nil {
		return mcp.NewToolResultError("post_id argument is required and must be a string"), nil
	}

	limit := request.GetInt("limit", 10)

	posts, err := h.service.SimilarToPost(postID, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("similar lookup failed: %v", err)), nil
	}

	return postsResult(posts)
}

// RecordInteraction handles the record_interaction tool
func (h *Handlers) RecordInteraction(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, err := request.RequireString("user_id")
	if err != nil {
		return mcp.NewToolResultError("user_id argument is required and must be a string"), nil
	}
	postID, err := request.RequireString("post_id")
	if err != nil {
		return mcp.NewToolResultError("post_id argument is required and must be a string"), nil
	}
	kindStr, err := request.RequireString("kind")
	if err != nil {
		return mcp.NewToolResultError("kind argument is required and must be a string"), nil
	}

	kind, err := recommend.ParseInteraction(kindStr)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := h.service.RecordInteraction(userID, postID, kind); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("interaction failed: %v", err)), nil
	}

	response := map[string]interface{}{
		"success": true,
		"user_id": userID,
		"post_id": postID,
		"kind":    string(kind),
	}
	return jsonResult(response)
}

// GetProfile handles the get_profile tool
func (h *Handlers) GetProfile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, err := request.RequireString("user_id")
	if err != nil {
		return mcp.NewToolResultError("user_id argument is required and must be a string"), nil
	}

	user, err := h.store.GetProfile(userID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load profile: %v", err)), nil
	}
	if user == nil {
		return mcp.NewToolResultError(fmt.Sprintf("profile %s not found", userID)), nil
	}

	// The raw embedding is large and meaningless to a tool caller;
	// report only whether it exists and how wide it is.
	response := map[string]interface{}{
		"profile": map[string]interface{}{
			"uid":                 user.UID,
			"email":               user.Email,
			"interests":           user.Interests,
			"subscriptions":       user.Subscriptions,
			"followers":           user.Followers,
			"has_embedding":       len(user.Embedding) > 0,
			"embedding_dimension": len(user.Embedding),
			"created_at":          user.CreatedAt.Format(time.RFC3339),
		},
	}
	return jsonResult(response)
}

func postsResult(posts []models.Post) (*mcp.CallToolResult, error) {
	summaries := make([]map[string]interface{}, 0, len(posts))
	for _, post := range posts {
		summaries = append(summaries, map[string]interface{}{
			"id":          post.ID,
			"author_id":   post.AuthorID,
			"title":       post.Title,
			"description": post.Description,
			"image_url":   post.ImageURL,
			"tags":        post.Tags,
			"likes_count": post.LikesCount,
			"created_at":  post.CreatedAt.Format(time.RFC3339),
		})
	}

	response := map[string]interface{}{
		"posts": summaries,
		"count": len(summaries),
	}
	return jsonResult(response)
}

func jsonResult(response map[string]interface{}) (*mcp.CallToolResult, error) {
	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}
