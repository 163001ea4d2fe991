package predictions

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/JaimeStill/prism/pkg/pagination"
	"github.com/JaimeStill/prism/pkg/query"
	"github.com/JaimeStill/prism/pkg/repository"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a prediction repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "predictions"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[PredictionRecord], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "ColourJustification", "FinalColourJustification", "ImageSummary")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count predictions: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanPrediction)
	if err != nil {
		return nil, fmt.Errorf("query predictions: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Get(ctx context.Context, batchKey, productKey uuid.UUID) (*PredictionRecord, error) {
	q := `
		SELECT batch_key, product_key, image_name, colour_status,
			   colour_justification, image_summary, description_synthesis,
			   final_colour_status, final_colour_justification,
			   created_at, updated_at
		FROM image_prediction
		WHERE batch_key = $1 AND product_key = $2`

	p, err := repository.QueryOne(ctx, r.db, q, []any{batchKey, productKey}, scanPrediction)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, nil)
	}
	return &p, nil
}

// upsertPredictionSQL keys on (batch_key, product_key): one record per pair,
// created_at set once on first insert, updated_at bumped on every write.
const upsertPredictionSQL = `
		INSERT INTO image_prediction (
			batch_key, product_key, image_name, colour_status,
			colour_justification, image_summary, description_synthesis,
			final_colour_status, final_colour_justification,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		ON CONFLICT (batch_key, product_key) DO UPDATE SET
			image_name = EXCLUDED.image_name,
			colour_status = EXCLUDED.colour_status,
			colour_justification = EXCLUDED.colour_justification,
			image_summary = EXCLUDED.image_summary,
			description_synthesis = EXCLUDED.description_synthesis,
			final_colour_status = EXCLUDED.final_colour_status,
			final_colour_justification = EXCLUDED.final_colour_justification,
			updated_at = NOW()
		RETURNING batch_key, product_key, image_name, colour_status,
				  colour_justification, image_summary, description_synthesis,
				  final_colour_status, final_colour_justification,
				  created_at, updated_at`

// Upsert inserts the record or replaces the verdict fields of an existing one.
func (r *repo) Upsert(ctx context.Context, record PredictionRecord) (*PredictionRecord, error) {
	args := []any{
		record.BatchKey,
		record.ProductKey,
		record.ImageName,
		record.ColourStatus,
		record.ColourJustification,
		record.ImageSummary,
		record.DescriptionSynthesis,
		record.FinalColourStatus,
		record.FinalColourJustification,
	}

	p, err := repository.QueryOne(ctx, r.db, upsertPredictionSQL, args, scanPrediction)
	if err != nil {
		return nil, fmt.Errorf("upsert prediction: %w", err)
	}

	r.logger.Info("prediction stored",
		"batch_key", p.BatchKey,
		"product_key", p.ProductKey,
		"colour_status", p.ColourStatus,
	)
	return &p, nil
}

// Unprocessed returns the product keys with no prediction in the given batch,
// in product key order.
func (r *repo) Unprocessed(ctx context.Context, batchKey uuid.UUID) ([]uuid.UUID, error) {
	q := `
		SELECT p.product_key
		FROM products p
		LEFT JOIN image_prediction ip
			ON ip.product_key = p.product_key AND ip.batch_key = $1
		WHERE ip.batch_key IS NULL
		ORDER BY p.product_key`

	keys, err := repository.QueryMany(ctx, r.db, q, []any{batchKey}, scanKey)
	if err != nil {
		return nil, fmt.Errorf("query unprocessed products: %w", err)
	}
	return keys, nil
}

func scanKey(s repository.Scanner) (uuid.UUID, error) {
	var k uuid.UUID
	err := s.Scan(&k)
	return k, err
}
