// ABOUTME: CLI command to find posts similar to a given post
// ABOUTME: Ranks by embedding similarity, excluding the reference post
package commands

import (
	"encoding/json"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	similarLimit int
)

// NewSimilarCmd creates the similar command
func NewSimilarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "similar <post-id>",
		Short: "Find posts similar to a post",
		Long: `Find posts similar to a post by embedding similarity.

The reference post never appears in its own results.

Examples:
  lumen similar 7f3a...
  lumen similar 7f3a... --limit 5`,
		Args: cobra.ExactArgs(1),
		RunE: runSimilar,
	}

	cmd.Flags().IntVar(&similarLimit, "limit", 10, "Maximum results to return")

	return cmd
}

func runSimilar(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	if err := validatePositiveInt(similarLimit, "limit"); err != nil {
		return err
	}

	s, err := openStack()
	if err != nil {
		return err
	}
	defer s.close()

	posts, err := s.service.SimilarToPost(args[0], similarLimit)
	if err != nil {
		return fmt.Errorf("finding similar posts: %w", err)
	}

	if len(posts) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No similar posts found\n")
		}
		return nil
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(posts, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	printPostTable(cmd, posts)
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d similar post(s)\n", len(posts))
	}
	return nil
}
