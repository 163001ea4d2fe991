package workflow

import (
	"context"
	"fmt"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/JaimeStill/prism/internal/verify"
)

// FinalizeNode returns a state node that validates the accumulated state
// before extraction. Both sentinel and judged products exit through it.
func FinalizeNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		vs, err := extractVerifyState(s)
		if err != nil {
			return s, fmt.Errorf("finalize: %w", err)
		}

		if !vs.Skipped() && vs.Classifier == nil {
			return s, fmt.Errorf("finalize: %w: no classifier verdict", ErrFinalizeFailed)
		}

		status := verify.StatusSkipped
		if vs.Classifier != nil {
			status = vs.Classifier.ColourStatus
		}

		rt.Logger.InfoContext(
			ctx, "finalize node complete",
			"colour_status", status,
			"refereed", vs.Referee != nil,
		)

		return s, nil
	})
}
