package catalog

import (
	"context"

	"github.com/google/uuid"
)

// System defines the public contract for catalog read operations.
type System interface {
	Product(ctx context.Context, productKey uuid.UUID) (*Product, error)
	DetailByURL(ctx context.Context, productURL string) (*ProductDetail, error)
	AttributeValues(ctx context.Context, productKey uuid.UUID) ([]AttributeValue, error)
	Attribute(ctx context.Context, attributeKey uuid.UUID) (*Attribute, error)
	ImagePath(ctx context.Context, imageURL string) (string, error)

	ProductKeys(ctx context.Context) ([]uuid.UUID, error)
	SampleKeys(ctx context.Context, count int) ([]uuid.UUID, error)
	SampleKeysByAttribute(ctx context.Context, attributeName, value string, count int) ([]uuid.UUID, error)
}
