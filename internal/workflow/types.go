package workflow

import (
	"github.com/JaimeStill/prism/internal/verify"
)

const (
	KeyBatchKey    = "batch_key"
	KeyProductKey  = "product_key"
	KeyVerifyState = "verification_state"
)

// Skip reasons recorded when a product short-circuits before the model call.
const (
	SkipNoOverview  = "no product overview found"
	SkipNoImages    = "no images found"
	SkipFileMissing = "image file not found"
)

// VerificationState accumulates per-product data across the workflow nodes.
// A non-nil SkipReason marks a sentinel outcome: the product bypasses the
// model nodes and finalizes with a SKIPPED status.
type VerificationState struct {
	Description string  `json:"description"`
	ImageName   *string `json:"image_name"`
	ImageURI    string  `json:"-"`

	SkipReason *string `json:"skip_reason,omitempty"`

	Classifier *verify.ClassifierVerdict `json:"classifier,omitempty"`
	Referee    *verify.RefereeVerdict    `json:"referee,omitempty"`
}

// Skipped reports whether this product short-circuited before classification.
func (s *VerificationState) Skipped() bool {
	return s.SkipReason != nil
}

// NeedsReferee reports whether the classifier verdict requires a second-pass
// review. Matching verdicts never reach the referee.
func (s *VerificationState) NeedsReferee() bool {
	return s.Classifier != nil && s.Classifier.ColourStatus != verify.StatusMatch
}
