// ABOUTME: Main entry point for the standalone Lumen MCP server
// ABOUTME: Initializes storage and the recommendation service with stdio transport
package main

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/lumen-social/lumen/internal/config"
	"github.com/lumen-social/lumen/internal/llm"
	"github.com/lumen-social/lumen/internal/mcp"
	"github.com/lumen-social/lumen/internal/recommend"
	"github.com/lumen-social/lumen/internal/storage"
)

func main() {
	// Load .env file if it exists (for API keys)
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	store, err := storage.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	defer func() { _ = store.Close() }()

	var embedder recommend.Embedder = noEmbedder{}
	if cfg.OpenAIKey != "" {
		client, err := llm.NewOpenAIClientWithConfig(&llm.ClientConfig{
			APIKey:         cfg.OpenAIKey,
			ChatModel:      cfg.ChatModel,
			EmbeddingModel: llm.EmbeddingModel(cfg.EmbeddingModel),
			Timeout:        cfg.Timeout,
			MaxRetries:     cfg.MaxRetries,
			RetryDelay:     cfg.RetryDelay,
		})
		if err != nil {
			log.Fatalf("Failed to initialize OpenAI client: %v", err)
		}
		embedder = client
	} else {
		log.Println("Warning: OPENAI_API_KEY not set - search and profile seeding will not work")
	}

	svc := recommend.NewService(store, store, embedder, recommend.Options{
		Threshold:    cfg.SimilarityThreshold,
		Limit:        cfg.ResultLimit,
		AlphaView:    cfg.AlphaView,
		AlphaComment: cfg.AlphaComment,
		AlphaLike:    cfg.AlphaLike,
		AlphaDismiss: cfg.AlphaDismiss,
	})

	server := mcpserver.NewMCPServer(
		"Lumen Feed",
		"0.1.0",
	)

	mcp.RegisterTools(server, svc, store)

	log.Println("Lumen MCP server starting on stdio...")
	if err := mcpserver.ServeStdio(server); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// noEmbedder stands in when no OpenAI key is configured
type noEmbedder struct{}

func (noEmbedder) GenerateEmbedding(string) ([]float64, error) {
	return nil, fmt.Errorf("OPENAI_API_KEY not set")
}
