package verify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/JaimeStill/prism/pkg/formatting"
	"github.com/JaimeStill/prism/pkg/retry"
)

// Referee performs the second-pass review of non-matching classifier
// verdicts. It sees the same image plus the classifier's full output and
// returns the final colour decision.
type Referee struct {
	invoker      Invoker
	instructions string
	policy       retry.Policy
	logger       *slog.Logger
}

// NewReferee creates a Referee. Empty instructions are fatal at startup.
func NewReferee(invoker Invoker, instructions string, policy retry.Policy, logger *slog.Logger) (*Referee, error) {
	if instructions == "" {
		return nil, fmt.Errorf("referee: %w", ErrEmptyInstructions)
	}

	return &Referee{
		invoker:      invoker,
		instructions: instructions,
		policy:       policy,
		logger:       logger.With("system", "referee"),
	}, nil
}

// Review re-judges a flagged image. The user turn carries the description and
// the classifier's verdict fields in a fixed layout so the model sees exactly
// what was decided and why.
func (r *Referee) Review(ctx context.Context, description string, verdict ClassifierVerdict, imageURI string) (*RefereeVerdict, error) {
	human := fmt.Sprintf(
		"Product Description: %s\n\nClassifier Output:\n- colour_status: %s\n- colour_justification: %s\n- image_summary: %s\n- description_synthesis: %s",
		description,
		verdict.ColourStatus,
		verdict.ColourJustification,
		verdict.ImageSummary,
		verdict.DescriptionSynthesis,
	)

	var final RefereeVerdict

	err := r.policy.Do(ctx, func(ctx context.Context) error {
		content, err := r.invoker.Invoke(ctx, r.instructions, human, []string{imageURI})
		if err != nil {
			r.logger.Warn("referee call failed", "error", err)
			return err
		}

		parsed, err := formatting.Parse[RefereeVerdict](content)
		if err != nil {
			r.logger.Warn("referee output malformed", "error", err)
			return err
		}

		if !validStatus(parsed.FinalColourStatus) {
			r.logger.Warn("referee status unrecognized", "final_colour_status", parsed.FinalColourStatus)
			return fmt.Errorf("%w: final_colour_status %q", ErrInvalidVerdict, parsed.FinalColourStatus)
		}

		final = parsed
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("review image: %w", err)
	}

	return &final, nil
}
