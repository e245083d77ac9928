// ABOUTME: CLI command for semantic post search
// ABOUTME: Embeds the query text and ranks posts by cosine similarity
package commands

import (
	"encoding/json"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	searchLimit int
)

// NewSearchCmd creates the search command
func NewSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search posts by free text",
		Long: `Search posts by free text using embedding similarity.

The query is embedded and compared against every post's tag-text
embedding. Posts whose tag text exactly equals the query are excluded
as duplicates of the query itself.

Examples:
  lumen search "sunset over water"
  lumen search --limit 5 "street photography"
  lumen search --format json "watercolor"`,
		Args: cobra.ExactArgs(1),
		RunE: runSearch,
	}

	cmd.Flags().IntVar(&searchLimit, "limit", 10, "Maximum results to return")

	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	if err := validatePositiveInt(searchLimit, "limit"); err != nil {
		return err
	}

	s, err := openStack()
	if err != nil {
		return err
	}
	defer s.close()

	posts, err := s.service.SearchByText(args[0], searchLimit)
	if err != nil {
		return fmt.Errorf("searching posts: %w", err)
	}

	if len(posts) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No posts found for query: %s\n", args[0])
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
		fmt.Fprintf(cmd.OutOrStdout(), "\nFound %d post(s)\n", len(posts))
	}
	return nil
}
