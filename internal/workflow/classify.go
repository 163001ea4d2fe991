package workflow

import (
	"context"
	"fmt"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"
)

// ClassifyNode returns a state node that performs the first-pass colour check
// against the product's primary image.
func ClassifyNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		vs, err := extractVerifyState(s)
		if err != nil {
			return s, fmt.Errorf("classify: %w", err)
		}

		verdict, err := rt.Classifier.Classify(ctx, vs.Description, vs.ImageURI)
		if err != nil {
			return s, fmt.Errorf("classify: %w: %w", ErrClassifyFailed, err)
		}

		rt.Logger.InfoContext(
			ctx, "classify node complete",
			"colour_status", verdict.ColourStatus,
		)

		vs.Classifier = verdict
		s = s.Set(KeyVerifyState, *vs)
		return s, nil
	})
}
