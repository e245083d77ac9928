// ABOUTME: Root CLI command with global flags and subcommand wiring
// ABOUTME: Builds the shared config, storage, and service stack for commands
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lumen-social/lumen/internal/config"
	"github.com/lumen-social/lumen/internal/llm"
	"github.com/lumen-social/lumen/internal/recommend"
	"github.com/lumen-social/lumen/internal/storage"
)

var (
	verbose      bool
	quiet        bool
	outputFormat string
)

const banner = `
██╗     ██╗   ██╗███╗   ███╗███████╗███╗   ██╗
██║     ██║   ██║████╗ ████║██╔════╝████╗  ██║
██║     ██║   ██║██╔████╔██║█████╗  ██╔██╗ ██║
██║     ██║   ██║██║╚██╔╝██║██╔══╝  ██║╚██╗██║
███████╗╚██████╔╝██║ ╚═╝ ██║███████╗██║ ╚████║
╚══════╝ ╚═════╝ ╚═╝     ╚═╝╚══════╝╚═╝  ╚═══╝`

// NewRootCmd creates the root command with all subcommands
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lumen",
		Short: "Embedding-based feed for an image-sharing community",
		Long: banner + `

Lumen recommends posts by comparing embedding vectors: every post
carries an embedding of its AI-generated tag text, every user carries
an interest embedding that shifts with each view, like, comment, and
dismissal.

Data lives in local SQLite by default, or in Charm Cloud KV for
multi-device sync (set LUMEN_DB_BACKEND=charm).`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	cmd.PersistentFlags().StringVar(&outputFormat, "format", "auto", "Output format: auto, table, json")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.AddCommand(NewPostCmd())
	cmd.AddCommand(NewSearchCmd())
	cmd.AddCommand(NewRecommendCmd())
	cmd.AddCommand(NewSimilarCmd())
	cmd.AddCommand(NewFeedCmd())
	cmd.AddCommand(NewFollowCmd())
	cmd.AddCommand(NewUnfollowCmd())
	cmd.AddCommand(NewProfileCmd())
	cmd.AddCommand(NewInteractCmd())
	cmd.AddCommand(NewSyncCmd())
	cmd.AddCommand(NewMCPCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}

// stack bundles the collaborators a command needs
type stack struct {
	cfg     *config.Config
	store   storage.Store
	service *recommend.Service
	llm     *llm.OpenAIClient // nil when OPENAI_API_KEY is unset
}

func (s *stack) close() {
	_ = s.store.Close()
}

// openStack loads configuration and wires storage, the OpenAI client,
// and the recommendation service together
func openStack() (*stack, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	store, err := storage.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("opening storage: %w", err)
	}

	var (
		client   *llm.OpenAIClient
		embedder recommend.Embedder = unavailableEmbedder{}
	)
	if cfg.OpenAIKey != "" {
		client, err = llm.NewOpenAIClientWithConfig(&llm.ClientConfig{
			APIKey:         cfg.OpenAIKey,
			ChatModel:      cfg.ChatModel,
			EmbeddingModel: llm.EmbeddingModel(cfg.EmbeddingModel),
			Timeout:        cfg.Timeout,
			MaxRetries:     cfg.MaxRetries,
			RetryDelay:     cfg.RetryDelay,
		})
		if err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("initializing OpenAI client: %w", err)
		}
		embedder = client
	}

	svc := recommend.NewService(store, store, embedder, recommend.Options{
		Threshold:    cfg.SimilarityThreshold,
		Limit:        cfg.ResultLimit,
		AlphaView:    cfg.AlphaView,
		AlphaComment: cfg.AlphaComment,
		AlphaLike:    cfg.AlphaLike,
		AlphaDismiss: cfg.AlphaDismiss,
	})

	return &stack{cfg: cfg, store: store, service: svc, llm: client}, nil
}

// unavailableEmbedder stands in when no OpenAI key is configured.
// Search degrades to empty results; profile seeding fails loudly.
type unavailableEmbedder struct{}

func (unavailableEmbedder) GenerateEmbedding(string) ([]float64, error) {
	return nil, fmt.Errorf("OPENAI_API_KEY not set")
}
