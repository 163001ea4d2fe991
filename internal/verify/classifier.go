package verify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/JaimeStill/prism/pkg/formatting"
	"github.com/JaimeStill/prism/pkg/retry"
)

// Classifier performs the first-pass colour check: system instructions plus
// the rendered product overview with one attached image.
type Classifier struct {
	invoker      Invoker
	instructions string
	policy       retry.Policy
	logger       *slog.Logger
}

// NewClassifier creates a Classifier. Empty instructions are fatal; callers
// must not start with a client that would send blank system prompts.
func NewClassifier(invoker Invoker, instructions string, policy retry.Policy, logger *slog.Logger) (*Classifier, error) {
	if instructions == "" {
		return nil, fmt.Errorf("classifier: %w", ErrEmptyInstructions)
	}

	return &Classifier{
		invoker:      invoker,
		instructions: instructions,
		policy:       policy,
		logger:       logger.With("system", "classifier"),
	}, nil
}

// Classify judges the image against the rendered description. Transient
// provider errors and malformed structured output are retried under the
// client's policy; a verdict with an unrecognized colour status counts as
// malformed.
func (c *Classifier) Classify(ctx context.Context, description, imageURI string) (*ClassifierVerdict, error) {
	var verdict ClassifierVerdict

	err := c.policy.Do(ctx, func(ctx context.Context) error {
		content, err := c.invoker.Invoke(ctx, c.instructions, description, []string{imageURI})
		if err != nil {
			c.logger.Warn("classifier call failed", "error", err)
			return err
		}

		parsed, err := formatting.Parse[ClassifierVerdict](content)
		if err != nil {
			c.logger.Warn("classifier output malformed", "error", err)
			return err
		}

		if !validStatus(parsed.ColourStatus) {
			c.logger.Warn("classifier status unrecognized", "colour_status", parsed.ColourStatus)
			return fmt.Errorf("%w: colour_status %q", ErrInvalidVerdict, parsed.ColourStatus)
		}

		verdict = parsed
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("classify image: %w", err)
	}

	return &verdict, nil
}
