// ABOUTME: CLI command for the subscription feed
// ABOUTME: Chronological posts from followed authors, no similarity ranking
package commands

import (
	"encoding/json"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// NewFeedCmd creates the feed command
func NewFeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "feed <user-id>",
		Short: "Show posts from followed authors",
		Long: `Show posts from the authors a user follows, newest first.

Unlike 'recommend', the subscription feed is purely chronological.

Examples:
  lumen feed u1
  lumen feed u1 --format json`,
		Args: cobra.ExactArgs(1),
		RunE: runFeed,
	}
}

func runFeed(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	s, err := openStack()
	if err != nil {
		return err
	}
	defer s.close()

	posts, err := s.service.SubscriptionFeed(args[0])
	if err != nil {
		return fmt.Errorf("building feed: %w", err)
	}

	if len(posts) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "Feed is empty. Follow authors with: lumen follow %s <author-id>\n", args[0])
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
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d post(s) in feed\n", len(posts))
	}
	return nil
}
