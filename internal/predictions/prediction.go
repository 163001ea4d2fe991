// Package predictions implements the prediction result store. Each record is
// one verification outcome keyed by (batch_key, product_key); writes are
// idempotent upserts so re-running a batch converges instead of duplicating.
package predictions

import (
	"time"

	"github.com/google/uuid"
)

// PredictionRecord mirrors the image_prediction table. Sentinel outcomes
// (skipped products) persist with a status and justification but no referee
// fields.
type PredictionRecord struct {
	BatchKey   uuid.UUID `json:"batch_key"`
	ProductKey uuid.UUID `json:"product_key"`

	ImageName            *string `json:"image_name"`
	ColourStatus         string  `json:"colour_status"`
	ColourJustification  *string `json:"colour_justification"`
	ImageSummary         *string `json:"image_summary"`
	DescriptionSynthesis *string `json:"description_synthesis"`

	FinalColourStatus        *string `json:"final_colour_status"`
	FinalColourJustification *string `json:"final_colour_justification"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
