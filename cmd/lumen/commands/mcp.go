// ABOUTME: MCP command starts Model Context Protocol server
// ABOUTME: Enables LLM agents to search, recommend, and record interactions via stdio
package commands

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/lumen-social/lumen/internal/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs Lumen as an MCP (Model Context Protocol) server, enabling LLM
agents to search posts, fetch recommendations, and record
interactions via stdio.`,
		RunE: runMCP,
		Example: `  # Start MCP server (typically called by the agent host)
  lumen mcp

  # Configure in the agent host's config file:
  # {
  #   "mcpServers": {
  #     "lumen": {
  #       "command": "lumen",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}

	return cmd
}

// runMCP starts the MCP server
func runMCP(cmd *cobra.Command, args []string) error {
	if err := godotenv.Load(); err != nil && verbose {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	if os.Getenv("OPENAI_API_KEY") == "" {
		log.Println("Warning: OPENAI_API_KEY not set - search and profile seeding will not work")
	}

	s, err := openStack()
	if err != nil {
		return err
	}

	server := mcpserver.NewMCPServer(
		"Lumen Feed",
		"0.1.0",
	)

	mcp.RegisterTools(server, s.service, s.store)

	// Setup graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !quiet {
		log.Println("Lumen MCP server starting on stdio...")
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpserver.ServeStdio(server)
	}()

	select {
	case <-ctx.Done():
		if !quiet {
			log.Println("Shutdown signal received, gracefully shutting down...")
		}

		if err := s.store.Close(); err != nil {
			log.Printf("Warning: Error closing storage: %v", err)
		}

		if !quiet {
			log.Println("Shutdown complete")
		}

	case err := <-serverErr:
		_ = s.store.Close()
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	return nil
}
