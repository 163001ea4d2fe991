// Package overview assembles denormalized product overviews from the catalog
// and renders them into the deterministic text block attached to verification
// prompts.
package overview

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// AttributeEntry is a named attribute value with optional unit and range
// metadata, ordered as it appears in the rendered overview.
type AttributeEntry struct {
	Name               *string `json:"name"`
	Value              *string `json:"value"`
	Unit               *string `json:"unit"`
	MinimumValue       *string `json:"minimum_value"`
	MinimumUnit        *string `json:"minimum_unit"`
	MaximumValue       *string `json:"maximum_value"`
	MaximumUnit        *string `json:"maximum_unit"`
	RangeQualifierEnum *string `json:"range_qualifier_enum"`
}

// Prices carries the pricing and review fields from the scraped detail record.
// They ride along on the overview for API consumers but are excluded from
// Render; the rendered contract is fixed.
type Prices struct {
	Price        *string `json:"price"`
	WasPrice     *string `json:"was_price"`
	Promotion    *string `json:"promotion"`
	ReviewRating *string `json:"review_rating"`
	ReviewCount  *string `json:"review_count"`
}

// ProductOverview is the denormalized join of a product's catalog identity,
// scraped detail, attribute values, and mapped image paths.
type ProductOverview struct {
	ProductKey   uuid.UUID `json:"product_key"`
	ProductURL   string    `json:"product_url"`
	ProductTitle *string   `json:"product_title"`
	ProductCode  *string   `json:"product_code"`

	Categories        []string `json:"categories"`
	SpecificationText *string  `json:"specification_text"`
	DescriptionText   *string  `json:"description_text"`

	Attributes []AttributeEntry `json:"attributes"`

	// ImagePaths holds the mapped local file name per image slot, in the
	// detail record's slot order. Nil marks a slot whose URL was absent or
	// had no mapping.
	ImagePaths [10]*string `json:"image_paths"`

	Prices Prices `json:"prices"`
}

// PrimaryImagePath returns the first non-nil image path, or nil when no slot
// resolved to a mapped file.
func (o *ProductOverview) PrimaryImagePath() *string {
	for _, p := range o.ImagePaths {
		if p != nil {
			return p
		}
	}
	return nil
}

// Render produces the deterministic text block describing the product.
// Title, code, and categories lines are always present (empty when unknown);
// specification, description, and attributes render only when populated.
// Attribute entries require both a name and a value; unit and range extras
// are appended parenthesized in a fixed field order.
func (o *ProductOverview) Render() string {
	categories := make([]string, 0, len(o.Categories))
	for _, c := range o.Categories {
		if c != "" {
			categories = append(categories, c)
		}
	}

	lines := []string{
		fmt.Sprintf("Product Title: %s", deref(o.ProductTitle)),
		fmt.Sprintf("Product Code (EAN): %s", deref(o.ProductCode)),
		fmt.Sprintf("Categories: %s", strings.Join(categories, ", ")),
	}

	if o.SpecificationText != nil && *o.SpecificationText != "" {
		lines = append(lines, fmt.Sprintf("Specification: %s", *o.SpecificationText))
	}

	if o.DescriptionText != nil && *o.DescriptionText != "" {
		lines = append(lines, fmt.Sprintf("Description: %s", *o.DescriptionText))
	}

	if len(o.Attributes) > 0 {
		lines = append(lines, "Attributes:")
		for _, attr := range o.Attributes {
			if line, ok := attr.render(); ok {
				lines = append(lines, line)
			}
		}
	}

	return strings.Join(lines, "\n")
}

func (a AttributeEntry) render() (string, bool) {
	if a.Name == nil || *a.Name == "" || a.Value == nil || *a.Value == "" {
		return "", false
	}

	extras := make([]string, 0, 6)
	for _, field := range []struct {
		name  string
		value *string
	}{
		{"unit", a.Unit},
		{"minimum_value", a.MinimumValue},
		{"minimum_unit", a.MinimumUnit},
		{"maximum_value", a.MaximumValue},
		{"maximum_unit", a.MaximumUnit},
		{"range_qualifier_enum", a.RangeQualifierEnum},
	} {
		if field.value != nil {
			extras = append(extras, fmt.Sprintf("%s: %s", field.name, *field.value))
		}
	}

	if len(extras) > 0 {
		return fmt.Sprintf("  - %s: %s (%s)", *a.Name, *a.Value, strings.Join(extras, ", ")), true
	}
	return fmt.Sprintf("  - %s: %s", *a.Name, *a.Value), true
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
