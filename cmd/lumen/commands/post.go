// ABOUTME: CLI commands to create and list posts
// ABOUTME: Tagging, AI-detection, and embedding happen once at creation
package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/lumen-social/lumen/internal/models"
)

var (
	postAuthor      string
	postDescription string
	postImageURL    string
	postTags        string
	listAuthor      string
	listLikedBy     string
)

// NewPostCmd creates the post command group
func NewPostCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "post",
		Short: "Create and list posts",
	}

	addCmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Publish a new post",
		Long: `Publish a new post.

When an image URL is given and no tags are provided, the vision model
describes the image to produce the tag text and estimates how likely
the image is AI-generated. The tag text is embedded once at creation;
the embedding is never recomputed.

Examples:
  lumen post add "Morning fog" --author u1 --image-url https://example.com/fog.jpg
  lumen post add "Sketchbook" --author u1 --tags "pencil sketch, portrait, crosshatching"`,
		Args: cobra.ExactArgs(1),
		RunE: runPostAdd,
	}
	addCmd.Flags().StringVar(&postAuthor, "author", "", "Author user ID (required)")
	addCmd.Flags().StringVar(&postDescription, "description", "", "Post description")
	addCmd.Flags().StringVar(&postImageURL, "image-url", "", "Image URL")
	addCmd.Flags().StringVar(&postTags, "tags", "", "Tag text (skips vision tagging)")
	_ = addCmd.MarkFlagRequired("author")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List posts, newest first",
		Long: `List posts, newest first.

Examples:
  lumen post list
  lumen post list --author u1
  lumen post list --liked-by u2 --format json`,
		RunE: runPostList,
	}
	listCmd.Flags().StringVar(&listAuthor, "author", "", "Only posts by this author")
	listCmd.Flags().StringVar(&listLikedBy, "liked-by", "", "Only posts liked by this user")

	cmd.AddCommand(addCmd)
	cmd.AddCommand(listCmd)

	return cmd
}

func runPostAdd(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	title := strings.TrimSpace(args[0])
	if title == "" {
		return fmt.Errorf("title must not be empty")
	}

	s, err := openStack()
	if err != nil {
		return err
	}
	defer s.close()

	post := &models.Post{
		ID:          uuid.New().String(),
		AuthorID:    postAuthor,
		Title:       title,
		Description: postDescription,
		ImageURL:    postImageURL,
		Tags:        strings.TrimSpace(postTags),
		CreatedAt:   time.Now(),
	}

	if s.llm != nil {
		if post.Tags == "" && post.ImageURL != "" {
			tags, err := s.llm.GenerateTagString(post.ImageURL)
			if err != nil {
				if verbose {
					fmt.Fprintf(os.Stderr, "Warning: vision tagging failed: %v\n", err)
				}
			} else {
				post.Tags = tags
			}
		}

		if post.ImageURL != "" {
			confidence, err := s.llm.AIConfidence(post.ImageURL)
			if err != nil {
				if verbose {
					fmt.Fprintf(os.Stderr, "Warning: AI-detection failed: %v\n", err)
				}
			} else {
				post.AIConfidence = confidence
				post.AIGenerated = confidence >= 50
			}
		}

		if post.Tags != "" {
			embedding, err := s.llm.GenerateEmbedding(post.Tags)
			if err != nil {
				if verbose {
					fmt.Fprintf(os.Stderr, "Warning: embedding failed, post will not be recommendable: %v\n", err)
				}
			} else {
				post.Embedding = embedding
			}
		}
	}

	if err := s.store.SavePost(post); err != nil {
		return fmt.Errorf("saving post: %w", err)
	}

	if !quiet {
		status := "no embedding"
		if len(post.Embedding) > 0 {
			status = fmt.Sprintf("%d-dim embedding", len(post.Embedding))
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Published post %s (%s)\n", post.ID, status)
		if verbose && post.Tags != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "  tags: %s\n", post.Tags)
		}
	}
	return nil
}

func runPostList(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	s, err := openStack()
	if err != nil {
		return err
	}
	defer s.close()

	var posts []models.Post
	switch {
	case listLikedBy != "":
		posts, err = s.store.PostsLikedBy(listLikedBy)
	case listAuthor != "":
		posts, err = s.store.PostsByAuthor(listAuthor)
	default:
		posts, err = s.store.AllPosts()
	}
	if err != nil {
		return fmt.Errorf("listing posts: %w", err)
	}

	if len(posts) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No posts found\n")
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
		fmt.Fprintf(cmd.OutOrStdout(), "\nTotal: %d post(s)\n", len(posts))
	}
	return nil
}

// printPostTable renders posts in the shared table layout
func printPostTable(cmd *cobra.Command, posts []models.Post) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID\tAUTHOR\tTITLE\tTAGS\tLIKES\tCREATED\n")
	fmt.Fprintf(w, "--\t------\t-----\t----\t-----\t-------\n")

	for _, post := range posts {
		tags := post.Tags
		if tags == "" {
			tags = "(untagged)"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n",
			truncate(post.ID, 12),
			truncate(post.AuthorID, 12),
			truncate(post.Title, 25),
			truncate(tags, 40),
			post.LikesCount,
			formatTime(post.CreatedAt))
	}
	_ = w.Flush()
}
