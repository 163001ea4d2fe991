package workflow

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/JaimeStill/prism/internal/images"
	"github.com/JaimeStill/prism/internal/overview"
	"github.com/JaimeStill/prism/internal/predictions"
	"github.com/JaimeStill/prism/internal/verify"
)

// Runtime bundles the dependencies that workflow nodes require.
// It is constructed by higher-level composition code from Infrastructure and
// Domain systems.
type Runtime struct {
	Overviews  *overview.Assembler
	Images     *images.Resolver
	Classifier *verify.Classifier
	Referee    *verify.Referee
	Logger     *slog.Logger
}

// Runner adapts the workflow to the batch orchestrator's Verifier contract.
type Runner struct {
	rt *Runtime
}

// NewRunner creates a Runner over the given runtime.
func NewRunner(rt *Runtime) *Runner {
	return &Runner{rt: rt}
}

// Verify executes the verification workflow for one product.
func (r *Runner) Verify(ctx context.Context, batchKey, productKey uuid.UUID) (*predictions.PredictionRecord, error) {
	return Execute(ctx, r.rt, batchKey, productKey)
}
