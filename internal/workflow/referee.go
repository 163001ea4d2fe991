package workflow

import (
	"context"
	"fmt"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"
)

// RefereeNode returns a state node that reviews a non-matching classifier
// verdict. It only runs when the classify → referee edge condition holds;
// matching verdicts bypass it entirely.
func RefereeNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		vs, err := extractVerifyState(s)
		if err != nil {
			return s, fmt.Errorf("referee: %w", err)
		}

		if vs.Classifier == nil {
			return s, fmt.Errorf("referee: %w: no classifier verdict", ErrRefereeFailed)
		}

		final, err := rt.Referee.Review(ctx, vs.Description, *vs.Classifier, vs.ImageURI)
		if err != nil {
			return s, fmt.Errorf("referee: %w: %w", ErrRefereeFailed, err)
		}

		rt.Logger.InfoContext(
			ctx, "referee node complete",
			"final_colour_status", final.FinalColourStatus,
		)

		vs.Referee = final
		s = s.Set(KeyVerifyState, *vs)
		return s, nil
	})
}
