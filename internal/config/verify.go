package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"

	"github.com/JaimeStill/prism/internal/verify"
	"github.com/JaimeStill/prism/pkg/retry"
)

const (
	EnvVerifyChunkSize = "PRISM_VERIFY_CHUNK_SIZE"
	EnvVerifyImageRoot = "PRISM_VERIFY_IMAGE_ROOT"

	EnvRetryMaxAttempts   = "PRISM_VERIFY_RETRY_MAX_ATTEMPTS"
	EnvRetryMaxElapsed    = "PRISM_VERIFY_RETRY_MAX_ELAPSED"
	EnvRetryBaseDelay     = "PRISM_VERIFY_RETRY_BASE_DELAY"
	EnvRetryDisableJitter = "PRISM_VERIFY_RETRY_DISABLE_JITTER"
)

// VerifyConfig holds batch sizing, image sourcing, prompt overrides, and the
// retry policy for model calls. An empty ImageRoot selects blob storage as
// the image source; a set root reads from the local filesystem instead.
type VerifyConfig struct {
	ChunkSize              int         `toml:"chunk_size"`
	ImageRoot              string      `toml:"image_root"`
	ClassifierInstructions string      `toml:"classifier_instructions"`
	RefereeInstructions    string      `toml:"referee_instructions"`
	Retry                  RetryConfig `toml:"retry"`
}

// RetryConfig mirrors retry.Policy with TOML-friendly duration strings.
// Jitter is on unless explicitly disabled.
type RetryConfig struct {
	MaxAttempts   int    `toml:"max_attempts"`
	MaxElapsed    string `toml:"max_elapsed"`
	BaseDelay     string `toml:"base_delay"`
	DisableJitter bool   `toml:"disable_jitter"`
}

// Policy converts the finalized retry configuration into a retry.Policy.
func (c *RetryConfig) Policy() retry.Policy {
	maxElapsed, _ := time.ParseDuration(c.MaxElapsed)
	baseDelay, _ := time.ParseDuration(c.BaseDelay)

	return retry.Policy{
		MaxAttempts: c.MaxAttempts,
		MaxElapsed:  maxElapsed,
		BaseDelay:   baseDelay,
		Jitter:      !c.DisableJitter,
	}
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *VerifyConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay. DisableJitter always applies.
func (c *VerifyConfig) Merge(overlay *VerifyConfig) {
	if overlay.ChunkSize != 0 {
		c.ChunkSize = overlay.ChunkSize
	}
	if overlay.ImageRoot != "" {
		c.ImageRoot = overlay.ImageRoot
	}
	if overlay.ClassifierInstructions != "" {
		c.ClassifierInstructions = overlay.ClassifierInstructions
	}
	if overlay.RefereeInstructions != "" {
		c.RefereeInstructions = overlay.RefereeInstructions
	}
	if overlay.Retry.MaxAttempts != 0 {
		c.Retry.MaxAttempts = overlay.Retry.MaxAttempts
	}
	if overlay.Retry.MaxElapsed != "" {
		c.Retry.MaxElapsed = overlay.Retry.MaxElapsed
	}
	if overlay.Retry.BaseDelay != "" {
		c.Retry.BaseDelay = overlay.Retry.BaseDelay
	}
	c.Retry.DisableJitter = overlay.Retry.DisableJitter
}

func (c *VerifyConfig) loadDefaults() {
	if c.ChunkSize == 0 {
		c.ChunkSize = 5
	}
	if c.ClassifierInstructions == "" {
		c.ClassifierInstructions = verify.ClassifierInstructions
	}
	if c.RefereeInstructions == "" {
		c.RefereeInstructions = verify.RefereeInstructions
	}
	if c.Retry.MaxAttempts == 0 {
		c.Retry.MaxAttempts = 5
	}
	if c.Retry.MaxElapsed == "" {
		c.Retry.MaxElapsed = "2m"
	}
	if c.Retry.BaseDelay == "" {
		c.Retry.BaseDelay = "1s"
	}
}

func (c *VerifyConfig) loadEnv() {
	if v := os.Getenv(EnvVerifyChunkSize); v != "" {
		if size, err := strconv.Atoi(v); err == nil {
			c.ChunkSize = size
		}
	}
	if v := os.Getenv(EnvVerifyImageRoot); v != "" {
		c.ImageRoot = v
	}
	if v := os.Getenv(EnvRetryMaxAttempts); v != "" {
		if attempts, err := strconv.Atoi(v); err == nil {
			c.Retry.MaxAttempts = attempts
		}
	}
	if v := os.Getenv(EnvRetryMaxElapsed); v != "" {
		c.Retry.MaxElapsed = v
	}
	if v := os.Getenv(EnvRetryBaseDelay); v != "" {
		c.Retry.BaseDelay = v
	}
	if v := os.Getenv(EnvRetryDisableJitter); v != "" {
		if disabled, err := strconv.ParseBool(v); err == nil {
			c.Retry.DisableJitter = disabled
		}
	}
}

func (c *VerifyConfig) validate() error {
	if c.ChunkSize < 1 {
		return fmt.Errorf("invalid chunk_size: %d", c.ChunkSize)
	}
	if c.Retry.MaxAttempts < 1 {
		return fmt.Errorf("invalid retry max_attempts: %d", c.Retry.MaxAttempts)
	}
	if _, err := time.ParseDuration(c.Retry.MaxElapsed); err != nil {
		return fmt.Errorf("invalid retry max_elapsed: %w", err)
	}
	if _, err := time.ParseDuration(c.Retry.BaseDelay); err != nil {
		return fmt.Errorf("invalid retry base_delay: %w", err)
	}
	return nil
}

func mergeAgent(c, overlay *gaconfig.AgentConfig) {
	if overlay.Name != "" {
		c.Name = overlay.Name
	}

	if overlay.Provider != nil {
		if c.Provider == nil {
			c.Provider = &gaconfig.ProviderConfig{}
		}
		if overlay.Provider.Name != "" {
			c.Provider.Name = overlay.Provider.Name
		}
		if overlay.Provider.BaseURL != "" {
			c.Provider.BaseURL = overlay.Provider.BaseURL
		}
		if len(overlay.Provider.Options) > 0 {
			if c.Provider.Options == nil {
				c.Provider.Options = make(map[string]any)
			}
			for k, v := range overlay.Provider.Options {
				c.Provider.Options[k] = v
			}
		}
	}

	if overlay.Model != nil {
		if c.Model == nil {
			c.Model = &gaconfig.ModelConfig{}
		}
		if overlay.Model.Name != "" {
			c.Model.Name = overlay.Model.Name
		}
	}
}
