// Package catalog provides read-only access to the product catalog: products,
// scraped product details, attribute values, and image path mappings. The
// catalog is ingested by an upstream pipeline; this package never writes to it.
package catalog

import (
	"github.com/google/uuid"
)

// Product is the catalog identity record. SystemName carries the product URL
// used to join against the scraped detail record; it is nullable for products
// that were registered but never scraped.
type Product struct {
	ProductKey   uuid.UUID `json:"product_key"`
	SystemName   *string   `json:"system_name"`
	FriendlyName *string   `json:"friendly_name"`
}

// ProductDetail is the coalesced scrape output for a product page, keyed by
// product URL. Every column is nullable; scrapes are frequently partial.
type ProductDetail struct {
	ProductURL   string  `json:"product_url"`
	ProductCode  *string `json:"product_code"`
	ProductTitle *string `json:"product_title"`

	Category0 *string `json:"category_0"`
	Category1 *string `json:"category_1"`
	Category2 *string `json:"category_2"`
	Category3 *string `json:"category_3"`

	DescriptionText   *string `json:"description_text"`
	SpecificationText *string `json:"specification_text"`

	ImageURLs [10]*string `json:"image_urls"`

	Price        *string `json:"price"`
	WasPrice     *string `json:"was_price"`
	Promotion    *string `json:"promotion"`
	ReviewRating *string `json:"review_rating"`
	ReviewCount  *string `json:"review_count"`
}

// Categories returns the populated category levels in order. Nil and
// empty-string levels are skipped; partial scrapes store both.
func (d *ProductDetail) Categories() []string {
	categories := make([]string, 0, 4)
	for _, c := range []*string{d.Category0, d.Category1, d.Category2, d.Category3} {
		if c != nil && *c != "" {
			categories = append(categories, *c)
		}
	}
	return categories
}

// Attribute is a catalog attribute definition.
type Attribute struct {
	AttributeKey uuid.UUID `json:"attribute_key"`
	Name         string    `json:"name"`
}

// AttributeValue is a single attribute assignment on a product, with optional
// unit and range metadata.
type AttributeValue struct {
	ProductKey   uuid.UUID `json:"product_key"`
	AttributeKey uuid.UUID `json:"attribute_key"`

	Value              *string `json:"value"`
	Unit               *string `json:"unit"`
	MinimumValue       *string `json:"minimum_value"`
	MinimumUnit        *string `json:"minimum_unit"`
	MaximumValue       *string `json:"maximum_value"`
	MaximumUnit        *string `json:"maximum_unit"`
	RangeQualifierEnum *string `json:"range_qualifier_enum"`
}
