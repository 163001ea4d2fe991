package predictions

import (
	"net/url"

	"github.com/google/uuid"

	"github.com/JaimeStill/prism/pkg/query"
	"github.com/JaimeStill/prism/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "image_prediction", "ip").
	Project("batch_key", "BatchKey").
	Project("product_key", "ProductKey").
	Project("image_name", "ImageName").
	Project("colour_status", "ColourStatus").
	Project("colour_justification", "ColourJustification").
	Project("image_summary", "ImageSummary").
	Project("description_synthesis", "DescriptionSynthesis").
	Project("final_colour_status", "FinalColourStatus").
	Project("final_colour_justification", "FinalColourJustification").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field:      "UpdatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for prediction queries.
// Nil fields are ignored. All fields use exact matching.
type Filters struct {
	BatchKey          *uuid.UUID `json:"batch_key,omitempty"`
	ProductKey        *uuid.UUID `json:"product_key,omitempty"`
	ColourStatus      *string    `json:"colour_status,omitempty"`
	FinalColourStatus *string    `json:"final_colour_status,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("BatchKey", f.BatchKey).
		WhereEquals("ProductKey", f.ProductKey).
		WhereEquals("ColourStatus", f.ColourStatus).
		WhereEquals("FinalColourStatus", f.FinalColourStatus)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if b := values.Get("batch_key"); b != "" {
		if key, err := uuid.Parse(b); err == nil {
			f.BatchKey = &key
		}
	}

	if p := values.Get("product_key"); p != "" {
		if key, err := uuid.Parse(p); err == nil {
			f.ProductKey = &key
		}
	}

	if c := values.Get("colour_status"); c != "" {
		f.ColourStatus = &c
	}

	if c := values.Get("final_colour_status"); c != "" {
		f.FinalColourStatus = &c
	}

	return f
}

func scanPrediction(s repository.Scanner) (PredictionRecord, error) {
	var p PredictionRecord
	err := s.Scan(
		&p.BatchKey,
		&p.ProductKey,
		&p.ImageName,
		&p.ColourStatus,
		&p.ColourJustification,
		&p.ImageSummary,
		&p.DescriptionSynthesis,
		&p.FinalColourStatus,
		&p.FinalColourJustification,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}
