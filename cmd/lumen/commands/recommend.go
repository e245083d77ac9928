// ABOUTME: CLI command for the personalized recommendation feed
// ABOUTME: Ranks all posts against a user's interest embedding
package commands

import (
	"encoding/json"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	recommendLimit int
)

// NewRecommendCmd creates the recommend command
func NewRecommendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recommend <user-id>",
		Short: "Recommend posts for a user",
		Long: `Recommend posts for a user, ranked against their interest embedding.

A user whose profile has no embedding yet (no onboarding interests)
gets an empty feed.

Examples:
  lumen recommend u1
  lumen recommend u1 --limit 20 --format json`,
		Args: cobra.ExactArgs(1),
		RunE: runRecommend,
	}

	cmd.Flags().IntVar(&recommendLimit, "limit", 10, "Maximum results to return")

	return cmd
}

func runRecommend(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	if err := validatePositiveInt(recommendLimit, "limit"); err != nil {
		return err
	}

	s, err := openStack()
	if err != nil {
		return err
	}
	defer s.close()

	posts, err := s.service.RecommendForUser(args[0], recommendLimit)
	if err != nil {
		return fmt.Errorf("recommending posts: %w", err)
	}

	if len(posts) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No recommendations for %s\n", args[0])
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
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d recommendation(s)\n", len(posts))
	}
	return nil
}
