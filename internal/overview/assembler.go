package overview

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/JaimeStill/prism/internal/catalog"
	"github.com/JaimeStill/prism/internal/images"
)

// Assembler builds product overviews from the catalog.
type Assembler struct {
	catalog catalog.System
	logger  *slog.Logger
}

// NewAssembler creates an Assembler over the given catalog.
func NewAssembler(catalog catalog.System, logger *slog.Logger) *Assembler {
	return &Assembler{
		catalog: catalog,
		logger:  logger.With("system", "overview"),
	}
}

// Assemble joins the product record, its scraped detail, attribute values,
// and image path mappings into a ProductOverview. A missing product, a nil
// system name, or a missing detail record yields ErrNotFound after a warning;
// assembly never panics on partial data. Attribute names that fail to resolve
// are left nil and skipped at render time. Image slots keep the detail
// record's order; unmapped references are left nil.
func (a *Assembler) Assemble(ctx context.Context, productKey uuid.UUID) (*ProductOverview, error) {
	product, err := a.catalog.Product(ctx, productKey)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			a.logger.Warn("no product record", "product_key", productKey)
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load product %s: %w", productKey, err)
	}

	if product.SystemName == nil {
		a.logger.Warn("product has no system name", "product_key", productKey)
		return nil, ErrNotFound
	}

	// system_name carries the product URL used to key the scraped detail.
	detail, err := a.catalog.DetailByURL(ctx, *product.SystemName)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			a.logger.Warn("no detail record",
				"product_key", productKey,
				"product_url", *product.SystemName,
			)
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load detail for %s: %w", productKey, err)
	}

	attributes, err := a.assembleAttributes(ctx, productKey)
	if err != nil {
		return nil, err
	}

	paths, err := a.assembleImagePaths(ctx, detail)
	if err != nil {
		return nil, err
	}

	return &ProductOverview{
		ProductKey:        productKey,
		ProductURL:        detail.ProductURL,
		ProductTitle:      detail.ProductTitle,
		ProductCode:       detail.ProductCode,
		Categories:        detail.Categories(),
		SpecificationText: detail.SpecificationText,
		DescriptionText:   detail.DescriptionText,
		Attributes:        attributes,
		ImagePaths:        paths,
		Prices: Prices{
			Price:        detail.Price,
			WasPrice:     detail.WasPrice,
			Promotion:    detail.Promotion,
			ReviewRating: detail.ReviewRating,
			ReviewCount:  detail.ReviewCount,
		},
	}, nil
}

func (a *Assembler) assembleAttributes(ctx context.Context, productKey uuid.UUID) ([]AttributeEntry, error) {
	values, err := a.catalog.AttributeValues(ctx, productKey)
	if err != nil {
		return nil, fmt.Errorf("load attribute values for %s: %w", productKey, err)
	}

	entries := make([]AttributeEntry, 0, len(values))
	for _, v := range values {
		var name *string

		attr, err := a.catalog.Attribute(ctx, v.AttributeKey)
		switch {
		case err == nil:
			name = &attr.Name
		case errors.Is(err, catalog.ErrNotFound):
			a.logger.Warn("attribute definition missing", "attribute_key", v.AttributeKey)
		default:
			return nil, fmt.Errorf("load attribute %s: %w", v.AttributeKey, err)
		}

		entries = append(entries, AttributeEntry{
			Name:               name,
			Value:              v.Value,
			Unit:               v.Unit,
			MinimumValue:       v.MinimumValue,
			MinimumUnit:        v.MinimumUnit,
			MaximumValue:       v.MaximumValue,
			MaximumUnit:        v.MaximumUnit,
			RangeQualifierEnum: v.RangeQualifierEnum,
		})
	}

	return entries, nil
}

func (a *Assembler) assembleImagePaths(ctx context.Context, detail *catalog.ProductDetail) ([10]*string, error) {
	var paths [10]*string

	for i, url := range detail.ImageURLs {
		if url == nil {
			continue
		}

		trimmed := images.TrimReference(*url)
		path, err := a.catalog.ImagePath(ctx, trimmed)
		switch {
		case err == nil:
			paths[i] = &path
		case errors.Is(err, catalog.ErrNotFound):
			a.logger.Warn("no image mapping", "reference", trimmed)
		default:
			return paths, fmt.Errorf("lookup image mapping: %w", err)
		}
	}

	return paths, nil
}
