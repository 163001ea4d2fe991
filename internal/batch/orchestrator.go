// Package batch runs verification over sets of products. Products are
// processed in sequential chunks with concurrent verification inside each
// chunk, so chunk size is the concurrency ceiling against the model provider.
package batch

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/prism/internal/catalog"
	"github.com/JaimeStill/prism/internal/predictions"
)

// DefaultChunkSize bounds in-flight verifications when no chunk size is
// configured.
const DefaultChunkSize = 5

// Verifier runs the verification workflow for one product.
type Verifier interface {
	Verify(ctx context.Context, batchKey, productKey uuid.UUID) (*predictions.PredictionRecord, error)
}

// Store persists verification outcomes and reports batch progress.
type Store interface {
	Upsert(ctx context.Context, record predictions.PredictionRecord) (*predictions.PredictionRecord, error)
	Unprocessed(ctx context.Context, batchKey uuid.UUID) ([]uuid.UUID, error)
}

// Outcome is the per-product result of a batch run. Failed products carry an
// error message and no record; they are not persisted, so a later run of the
// same batch picks them up again.
type Outcome struct {
	ProductKey uuid.UUID                     `json:"product_key"`
	Record     *predictions.PredictionRecord `json:"record,omitempty"`
	Error      *string                       `json:"error,omitempty"`
}

// Result is the output of a batch run. Outcomes preserve input order.
type Result struct {
	BatchKey uuid.UUID `json:"batch_key"`
	Total    int       `json:"total"`
	Stored   int       `json:"stored"`
	Failed   int       `json:"failed"`
	Outcomes []Outcome `json:"outcomes"`
}

// Orchestrator coordinates chunked batch verification.
type Orchestrator struct {
	verifier  Verifier
	store     Store
	catalog   catalog.System
	chunkSize int
	logger    *slog.Logger
}

// NewOrchestrator creates an Orchestrator. Non-positive chunk sizes fall back
// to DefaultChunkSize.
func NewOrchestrator(
	verifier Verifier,
	store Store,
	catalog catalog.System,
	chunkSize int,
	logger *slog.Logger,
) *Orchestrator {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	return &Orchestrator{
		verifier:  verifier,
		store:     store,
		catalog:   catalog,
		chunkSize: chunkSize,
		logger:    logger.With("system", "batch"),
	}
}

// Run verifies productKeys under the given batch key. A nil batch key starts
// a new batch; a nil or empty key set selects every catalog product for new
// batches and the unprocessed remainder for existing ones. Each product
// succeeds or fails in isolation; a failure never stops the batch.
func (o *Orchestrator) Run(ctx context.Context, batchKey uuid.UUID, productKeys []uuid.UUID) (*Result, error) {
	batchKey, productKeys, err := o.resolve(ctx, batchKey, productKeys)
	if err != nil {
		return nil, err
	}

	result := &Result{
		BatchKey: batchKey,
		Total:    len(productKeys),
		Outcomes: make([]Outcome, len(productKeys)),
	}

	o.logger.Info("batch started",
		"batch_key", batchKey,
		"products", len(productKeys),
		"chunk_size", o.chunkSize,
	)

	for start := 0; start < len(productKeys); start += o.chunkSize {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		end := min(start+o.chunkSize, len(productKeys))
		o.runChunk(ctx, batchKey, productKeys[start:end], result.Outcomes[start:end])
	}

	for _, outcome := range result.Outcomes {
		if outcome.Error != nil {
			result.Failed++
		} else {
			result.Stored++
		}
	}

	o.logger.Info("batch complete",
		"batch_key", batchKey,
		"stored", result.Stored,
		"failed", result.Failed,
	)
	return result, nil
}

// Unprocessed returns the product keys the given batch has not persisted yet.
func (o *Orchestrator) Unprocessed(ctx context.Context, batchKey uuid.UUID) ([]uuid.UUID, error) {
	return o.store.Unprocessed(ctx, batchKey)
}

func (o *Orchestrator) resolve(
	ctx context.Context,
	batchKey uuid.UUID,
	productKeys []uuid.UUID,
) (uuid.UUID, []uuid.UUID, error) {
	if batchKey == uuid.Nil {
		batchKey = uuid.New()

		if len(productKeys) == 0 {
			keys, err := o.catalog.ProductKeys(ctx)
			if err != nil {
				return uuid.Nil, nil, fmt.Errorf("load product keys: %w", err)
			}
			productKeys = keys
		}

		return batchKey, productKeys, nil
	}

	if len(productKeys) == 0 {
		keys, err := o.store.Unprocessed(ctx, batchKey)
		if err != nil {
			return uuid.Nil, nil, fmt.Errorf("load unprocessed products: %w", err)
		}
		productKeys = keys
	}

	return batchKey, productKeys, nil
}

// runChunk verifies one chunk concurrently. Worker errors are captured into
// outcomes rather than returned, so one product's failure never cancels its
// chunk mates.
func (o *Orchestrator) runChunk(ctx context.Context, batchKey uuid.UUID, keys []uuid.UUID, outcomes []Outcome) {
	var g errgroup.Group

	for i, productKey := range keys {
		g.Go(func() error {
			outcomes[i] = o.runProduct(ctx, batchKey, productKey)
			return nil
		})
	}

	g.Wait()
}

func (o *Orchestrator) runProduct(ctx context.Context, batchKey, productKey uuid.UUID) Outcome {
	outcome := Outcome{ProductKey: productKey}

	record, err := o.verifier.Verify(ctx, batchKey, productKey)
	if err != nil {
		o.logger.Error("verification failed",
			"batch_key", batchKey,
			"product_key", productKey,
			"error", err,
		)
		msg := err.Error()
		outcome.Error = &msg
		return outcome
	}

	stored, err := o.store.Upsert(ctx, *record)
	if err != nil {
		o.logger.Error("prediction store failed",
			"batch_key", batchKey,
			"product_key", productKey,
			"error", err,
		)
		msg := err.Error()
		outcome.Error = &msg
		return outcome
	}

	outcome.Record = stored
	return outcome
}
