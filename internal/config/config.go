// ABOUTME: Centralized configuration for the Lumen feed service
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Backend selects the storage implementation
type Backend string

const (
	BackendSQLite Backend = "sqlite"
	BackendCharm  Backend = "charm"
)

// Config holds all configuration for the feed service
type Config struct {
	// Storage settings
	Backend     Backend
	CharmHost   string
	CharmDBName string
	AutoSync    bool

	// OpenAI settings
	OpenAIKey      string
	ChatModel      string
	EmbeddingModel string
	Timeout        time.Duration
	MaxRetries     int
	RetryDelay     time.Duration

	// Recommendation settings
	SimilarityThreshold float64
	ResultLimit         int
	VectorDimension     int

	// Interaction blend factors
	AlphaView    float64
	AlphaComment float64
	AlphaLike    float64
	AlphaDismiss float64
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		// Defaults
		Backend:             Backend(getEnv("LUMEN_DB_BACKEND", string(BackendSQLite))),
		CharmHost:           getEnv("CHARM_HOST", "cloud.charm.sh"),
		CharmDBName:         getEnv("CHARM_DB", "lumen"),
		AutoSync:            getEnvBool("CHARM_AUTO_SYNC", true),
		OpenAIKey:           os.Getenv("OPENAI_API_KEY"),
		ChatModel:           getEnv("LUMEN_CHAT_MODEL", "gpt-4o-mini"),
		EmbeddingModel:      getEnv("LUMEN_EMBEDDING_MODEL", "text-embedding-3-small"),
		Timeout:             getEnvDuration("OPENAI_TIMEOUT", 30*time.Second),
		MaxRetries:          getEnvInt("OPENAI_MAX_RETRIES", 3),
		RetryDelay:          getEnvDuration("OPENAI_RETRY_DELAY", 2*time.Second),
		SimilarityThreshold: getEnvFloat("SIMILARITY_THRESHOLD", 0.4),
		ResultLimit:         getEnvInt("RESULT_LIMIT", 10),
		VectorDimension:     getEnvInt("VECTOR_DIMENSION", 1536),
		AlphaView:           getEnvFloat("ALPHA_VIEW", 0.02),
		AlphaComment:        getEnvFloat("ALPHA_COMMENT", 0.05),
		AlphaLike:           getEnvFloat("ALPHA_LIKE", 0.1),
		AlphaDismiss:        getEnvFloat("ALPHA_DISMISS", 0.05),
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.Backend != BackendSQLite && c.Backend != BackendCharm {
		return fmt.Errorf("LUMEN_DB_BACKEND must be sqlite or charm, got %q", c.Backend)
	}
	if c.SimilarityThreshold < -1 || c.SimilarityThreshold > 1 {
		return fmt.Errorf("SIMILARITY_THRESHOLD must be -1 to 1, got %f", c.SimilarityThreshold)
	}
	if c.ResultLimit <= 0 {
		return fmt.Errorf("RESULT_LIMIT must be positive, got %d", c.ResultLimit)
	}
	if c.VectorDimension <= 0 {
		return fmt.Errorf("VECTOR_DIMENSION must be positive, got %d", c.VectorDimension)
	}
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("OPENAI_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}
	for name, alpha := range map[string]float64{
		"ALPHA_VIEW":    c.AlphaView,
		"ALPHA_COMMENT": c.AlphaComment,
		"ALPHA_LIKE":    c.AlphaLike,
		"ALPHA_DISMISS": c.AlphaDismiss,
	} {
		if alpha <= 0 || alpha > 1 {
			return fmt.Errorf("%s must be in (0,1], got %f", name, alpha)
		}
	}
	return nil
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	return v == "true" || v == "1"
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
