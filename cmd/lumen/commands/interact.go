// ABOUTME: CLI commands to record user interactions with posts
// ABOUTME: Each interaction shifts the user's interest embedding
package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/lumen-social/lumen/internal/models"
	"github.com/lumen-social/lumen/internal/recommend"
)

var (
	commentText string
)

// NewInteractCmd creates the interact command group
func NewInteractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "interact",
		Short: "Record interactions with posts",
		Long: `Record interactions with posts.

Each interaction nudges the user's interest embedding toward the post
(view, like, comment) or away from it (dismiss). Likes also update the
post's like list; comments are stored with the post.

Examples:
  lumen interact view u1 7f3a...
  lumen interact like u1 7f3a...
  lumen interact comment u1 7f3a... --text "Love the light here"
  lumen interact dismiss u1 7f3a...`,
	}

	cmd.AddCommand(newInteractSubCmd("view", "Record that a user viewed a post", recommend.InteractionView))
	cmd.AddCommand(newLikeCmd())
	cmd.AddCommand(newCommentCmd())
	cmd.AddCommand(newInteractSubCmd("dismiss", "Mark a post as not interesting", recommend.InteractionDismiss))

	return cmd
}

func newInteractSubCmd(use, short string, kind recommend.Interaction) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <user-id> <post-id>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()

			s, err := openStack()
			if err != nil {
				return err
			}
			defer s.close()

			if err := s.service.RecordInteraction(args[0], args[1], kind); err != nil {
				return fmt.Errorf("recording %s: %w", use, err)
			}

			if !quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Recorded %s by %s on %s\n", use, args[0], args[1])
			}
			return nil
		},
	}
}

func newLikeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "like <user-id> <post-id>",
		Short: "Toggle a like on a post",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()

			userID, postID := args[0], args[1]

			s, err := openStack()
			if err != nil {
				return err
			}
			defer s.close()

			post, err := s.store.GetPost(postID)
			if err != nil {
				return fmt.Errorf("getting post: %w", err)
			}
			if post == nil {
				return fmt.Errorf("post %s not found", postID)
			}

			// Toggle: a second like removes the first. Only a fresh
			// like shifts the interest embedding.
			if post.LikedByUser(userID) {
				post.LikedBy = removeString(post.LikedBy, userID)
				post.LikesCount = len(post.LikedBy)
				if err := s.store.SavePost(post); err != nil {
					return fmt.Errorf("saving post: %w", err)
				}
				if !quiet {
					fmt.Fprintf(cmd.OutOrStdout(), "✓ Removed like by %s on %s\n", userID, postID)
				}
				return nil
			}

			post.LikedBy = append(post.LikedBy, userID)
			post.LikesCount = len(post.LikedBy)
			now := time.Now()
			post.UpdatedAt = &now
			if err := s.store.SavePost(post); err != nil {
				return fmt.Errorf("saving post: %w", err)
			}

			if err := s.service.RecordInteraction(userID, postID, recommend.InteractionLike); err != nil {
				return fmt.Errorf("recording like: %w", err)
			}

			if !quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "✓ %s liked %s (%d like(s))\n", userID, postID, post.LikesCount)
			}
			return nil
		},
	}
}

func newCommentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comment <user-id> <post-id>",
		Short: "Comment on a post",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()

			text := strings.TrimSpace(commentText)
			if text == "" {
				return fmt.Errorf("comment text is required, use --text")
			}

			userID, postID := args[0], args[1]

			s, err := openStack()
			if err != nil {
				return err
			}
			defer s.close()

			post, err := s.store.GetPost(postID)
			if err != nil {
				return fmt.Errorf("getting post: %w", err)
			}
			if post == nil {
				return fmt.Errorf("post %s not found", postID)
			}

			comment := &models.Comment{
				ID:        uuid.New().String(),
				PostID:    postID,
				UserID:    userID,
				Text:      text,
				CreatedAt: time.Now(),
			}
			if err := s.store.SaveComment(comment); err != nil {
				return fmt.Errorf("saving comment: %w", err)
			}

			if err := s.service.RecordInteraction(userID, postID, recommend.InteractionComment); err != nil {
				return fmt.Errorf("recording comment: %w", err)
			}

			if !quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Comment %s added to %s\n", comment.ID, postID)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&commentText, "text", "", "Comment text (required)")

	return cmd
}
