// ABOUTME: CLI commands to follow and unfollow authors
// ABOUTME: Updates both the follower's subscriptions and the author's followers
package commands

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/lumen-social/lumen/internal/storage"
)

// NewFollowCmd creates the follow command
func NewFollowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "follow <user-id> <author-id>",
		Short: "Follow an author",
		Long: `Follow an author. Their posts will appear in the subscription feed.

Examples:
  lumen follow u1 alice`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFollow(cmd, args[0], args[1], true)
		},
	}
}

// NewUnfollowCmd creates the unfollow command
func NewUnfollowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unfollow <user-id> <author-id>",
		Short: "Unfollow an author",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFollow(cmd, args[0], args[1], false)
		},
	}
}

func runFollow(cmd *cobra.Command, userID, authorID string, follow bool) error {
	_ = godotenv.Load()

	if userID == authorID {
		return fmt.Errorf("cannot follow yourself")
	}

	s, err := openStack()
	if err != nil {
		return err
	}
	defer s.close()

	if err := updateFollowState(s.store, userID, authorID, follow); err != nil {
		return err
	}

	if !quiet {
		verb := "now following"
		if !follow {
			verb = "no longer following"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ %s is %s %s\n", userID, verb, authorID)
	}
	return nil
}

// updateFollowState keeps the subscription and follower lists in step.
// The two writes are not transactional; the follower list is advisory
// display data and self-heals on the next follow/unfollow.
func updateFollowState(store storage.Store, userID, authorID string, follow bool) error {
	user, err := store.GetProfile(userID)
	if err != nil {
		return fmt.Errorf("getting profile: %w", err)
	}
	if user == nil {
		return fmt.Errorf("profile %s not found", userID)
	}

	if follow {
		if user.Follows(authorID) {
			return nil
		}
		user.Subscriptions = append(user.Subscriptions, authorID)
	} else {
		user.Subscriptions = removeString(user.Subscriptions, authorID)
	}

	if err := store.SaveProfile(user); err != nil {
		return fmt.Errorf("saving profile: %w", err)
	}

	author, err := store.GetProfile(authorID)
	if err != nil || author == nil {
		// Author may not have a local profile; subscriptions alone drive the feed
		return nil
	}

	if follow {
		if !containsString(author.Followers, userID) {
			author.Followers = append(author.Followers, userID)
		}
	} else {
		author.Followers = removeString(author.Followers, userID)
	}

	if err := store.SaveProfile(author); err != nil {
		return fmt.Errorf("saving author profile: %w", err)
	}
	return nil
}
