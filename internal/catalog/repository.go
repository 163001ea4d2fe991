package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/JaimeStill/prism/pkg/repository"
)

const detailColumns = `product_url, product_code, product_title,
		category_0, category_1, category_2, category_3,
		description_text, specification_text,
		image_url_0, image_url_1, image_url_2, image_url_3, image_url_4,
		image_url_5, image_url_6, image_url_7, image_url_8, image_url_9,
		price, was_price, promotion, review_rating, review_count`

type repo struct {
	db     *sql.DB
	logger *slog.Logger
}

// New creates a catalog repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger) System {
	return &repo{
		db:     db,
		logger: logger.With("system", "catalog"),
	}
}

func (r *repo) Product(ctx context.Context, productKey uuid.UUID) (*Product, error) {
	q := "SELECT product_key, system_name, friendly_name FROM products WHERE product_key = $1"

	p, err := repository.QueryOne(ctx, r.db, q, []any{productKey}, scanProduct)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, nil)
	}
	return &p, nil
}

func (r *repo) DetailByURL(ctx context.Context, productURL string) (*ProductDetail, error) {
	q := fmt.Sprintf("SELECT %s FROM product_details WHERE product_url = $1", detailColumns)

	d, err := repository.QueryOne(ctx, r.db, q, []any{productURL}, scanDetail)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, nil)
	}
	return &d, nil
}

func (r *repo) AttributeValues(ctx context.Context, productKey uuid.UUID) ([]AttributeValue, error) {
	q := `
		SELECT product_key, attribute_key, value, unit,
			   minimum_value, minimum_unit, maximum_value, maximum_unit,
			   range_qualifier_enum
		FROM product_attribute_values
		WHERE product_key = $1
		ORDER BY attribute_key`

	values, err := repository.QueryMany(ctx, r.db, q, []any{productKey}, scanAttributeValue)
	if err != nil {
		return nil, fmt.Errorf("query attribute values: %w", err)
	}
	return values, nil
}

func (r *repo) Attribute(ctx context.Context, attributeKey uuid.UUID) (*Attribute, error) {
	q := "SELECT attribute_key, attribute_name FROM attributes WHERE attribute_key = $1"

	a, err := repository.QueryOne(ctx, r.db, q, []any{attributeKey}, scanAttribute)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, nil)
	}
	return &a, nil
}

func (r *repo) ImagePath(ctx context.Context, imageURL string) (string, error) {
	q := "SELECT image_path FROM image_path_mappings WHERE image_url = $1"

	path, err := repository.QueryOne(ctx, r.db, q, []any{imageURL}, scanString)
	if err != nil {
		return "", repository.MapError(err, ErrNotFound, nil)
	}
	return path, nil
}

func (r *repo) ProductKeys(ctx context.Context) ([]uuid.UUID, error) {
	q := "SELECT product_key FROM products ORDER BY product_key"

	keys, err := repository.QueryMany(ctx, r.db, q, nil, scanKey)
	if err != nil {
		return nil, fmt.Errorf("query product keys: %w", err)
	}
	return keys, nil
}

func (r *repo) SampleKeys(ctx context.Context, count int) ([]uuid.UUID, error) {
	q := "SELECT product_key FROM products ORDER BY RANDOM() LIMIT $1"

	keys, err := repository.QueryMany(ctx, r.db, q, []any{count}, scanKey)
	if err != nil {
		return nil, fmt.Errorf("sample product keys: %w", err)
	}
	return keys, nil
}

func (r *repo) SampleKeysByAttribute(ctx context.Context, attributeName, value string, count int) ([]uuid.UUID, error) {
	q := `
		SELECT pav.product_key
		FROM product_attribute_values pav
		INNER JOIN attributes a ON a.attribute_key = pav.attribute_key
		WHERE a.attribute_name = $1 AND pav.value = $2
		ORDER BY RANDOM()
		LIMIT $3`

	keys, err := repository.QueryMany(ctx, r.db, q, []any{attributeName, value, count}, scanKey)
	if err != nil {
		return nil, fmt.Errorf("sample product keys by attribute: %w", err)
	}
	return keys, nil
}

func scanString(s repository.Scanner) (string, error) {
	var v string
	err := s.Scan(&v)
	return v, err
}

func scanKey(s repository.Scanner) (uuid.UUID, error) {
	var k uuid.UUID
	err := s.Scan(&k)
	return k, err
}
