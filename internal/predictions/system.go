package predictions

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/prism/pkg/pagination"
)

// System defines the public contract for prediction store operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[PredictionRecord], error)

	Get(ctx context.Context, batchKey, productKey uuid.UUID) (*PredictionRecord, error)
	Upsert(ctx context.Context, record PredictionRecord) (*PredictionRecord, error)
	Unprocessed(ctx context.Context, batchKey uuid.UUID) ([]uuid.UUID, error)
}
