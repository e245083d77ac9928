// ABOUTME: CLI commands to view, create, and update user profiles
// ABOUTME: Profile creation seeds the interest embedding from onboarding tags
package commands

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/lumen-social/lumen/internal/models"
)

var (
	profileEmail     string
	profileInterests []string
	profileAvatar    string
)

// NewProfileCmd creates the profile command group
func NewProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile <user-id>",
		Short: "View and manage user profiles",
		Long: `View and manage user profiles.

A profile carries onboarding interests and the interest embedding that
drives recommendations. The embedding is seeded once from interests
and then shifts with every recorded interaction.

Examples:
  lumen profile u1
  lumen profile u1 --format json
  lumen profile init u1 --email u1@example.com --interest "street photography" --interest "film"
  lumen profile set u1 --avatar https://example.com/u1.png`,
		Args: cobra.ExactArgs(1),
		RunE: runProfileShow,
	}

	initCmd := &cobra.Command{
		Use:   "init <user-id>",
		Short: "Create a profile and seed its interest embedding",
		Long: `Create a profile and seed its interest embedding.

The interests are joined and embedded; the result becomes the user's
starting interest vector. Requires OPENAI_API_KEY.`,
		Args: cobra.ExactArgs(1),
		RunE: runProfileInit,
	}
	initCmd.Flags().StringVar(&profileEmail, "email", "", "Account email")
	initCmd.Flags().StringArrayVar(&profileInterests, "interest", nil, "Onboarding interest (can be repeated)")

	setCmd := &cobra.Command{
		Use:   "set <user-id>",
		Short: "Update profile fields",
		Long: `Update profile fields.

Interests added here extend the list but do not re-seed the embedding;
the embedding only moves through interactions.

Examples:
  lumen profile set u1 --email new@example.com
  lumen profile set u1 --interest "analog photography"`,
		Args: cobra.ExactArgs(1),
		RunE: runProfileSet,
	}
	setCmd.Flags().StringVar(&profileEmail, "email", "", "Account email")
	setCmd.Flags().StringArrayVar(&profileInterests, "interest", nil, "Add an interest (can be repeated)")
	setCmd.Flags().StringVar(&profileAvatar, "avatar", "", "Avatar URL")

	cmd.AddCommand(initCmd)
	cmd.AddCommand(setCmd)

	return cmd
}

func runProfileShow(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	s, err := openStack()
	if err != nil {
		return err
	}
	defer s.close()

	user, err := s.store.GetProfile(args[0])
	if err != nil {
		return fmt.Errorf("getting profile: %w", err)
	}
	if user == nil {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No profile found. Create one with: lumen profile init %s --interest \"...\"\n", args[0])
		}
		return nil
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(user, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "FIELD\tVALUE\n")
	fmt.Fprintf(w, "-----\t-----\n")
	fmt.Fprintf(w, "UID\t%s\n", user.UID)

	email := user.Email
	if email == "" {
		email = "(not set)"
	}
	fmt.Fprintf(w, "Email\t%s\n", email)

	interests := "(none)"
	if len(user.Interests) > 0 {
		interests = strings.Join(user.Interests, ", ")
	}
	fmt.Fprintf(w, "Interests\t%s\n", truncate(interests, 60))

	embedding := "not seeded"
	if len(user.Embedding) > 0 {
		embedding = fmt.Sprintf("%d dimensions", len(user.Embedding))
	}
	fmt.Fprintf(w, "Embedding\t%s\n", embedding)

	fmt.Fprintf(w, "Following\t%d\n", len(user.Subscriptions))
	fmt.Fprintf(w, "Followers\t%d\n", len(user.Followers))
	fmt.Fprintf(w, "Created\t%s\n", formatTime(user.CreatedAt))
	_ = w.Flush()

	return nil
}

func runProfileInit(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	if len(profileInterests) == 0 {
		return fmt.Errorf("at least one --interest is required to seed the embedding")
	}

	s, err := openStack()
	if err != nil {
		return err
	}
	defer s.close()

	existing, err := s.store.GetProfile(args[0])
	if err != nil {
		return fmt.Errorf("getting profile: %w", err)
	}
	if existing != nil {
		return fmt.Errorf("profile %s already exists", args[0])
	}

	user := &models.User{
		UID:       args[0],
		Email:     profileEmail,
		Interests: profileInterests,
		CreatedAt: time.Now(),
	}

	if err := s.service.SeedProfile(user); err != nil {
		return fmt.Errorf("seeding profile: %w", err)
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Created profile %s with %d-dim interest embedding\n",
			user.UID, len(user.Embedding))
	}
	return nil
}

func runProfileSet(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	if profileEmail == "" && len(profileInterests) == 0 && profileAvatar == "" {
		return fmt.Errorf("no updates specified. Use --email, --interest, or --avatar")
	}

	s, err := openStack()
	if err != nil {
		return err
	}
	defer s.close()

	user, err := s.store.GetProfile(args[0])
	if err != nil {
		return fmt.Errorf("getting profile: %w", err)
	}
	if user == nil {
		return fmt.Errorf("profile %s not found, create it with: lumen profile init", args[0])
	}

	if profileEmail != "" {
		user.Email = profileEmail
	}
	if profileAvatar != "" {
		user.AvatarURL = profileAvatar
	}
	for _, interest := range profileInterests {
		if !containsString(user.Interests, interest) {
			user.Interests = append(user.Interests, interest)
		}
	}

	if err := s.store.SaveProfile(user); err != nil {
		return fmt.Errorf("saving profile: %w", err)
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Profile updated successfully\n")
	}
	return nil
}
