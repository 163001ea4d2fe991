// Package verify implements the vision model clients that judge whether a
// product image matches its description: a classifier that produces a colour
// verdict and a referee that reviews non-matching verdicts.
package verify

// Colour status values produced by the classifier and referee.
// StatusSkipped marks products the pipeline could not judge (missing
// overview, images, or image file); it is never emitted by a model.
const (
	StatusMatch     = "MATCH"
	StatusMismatch  = "MISMATCH"
	StatusUncertain = "UNCERTAIN"
	StatusSkipped   = "SKIPPED"
)

// ClassifierVerdict is the structured output of the first-pass colour check.
type ClassifierVerdict struct {
	ColourStatus         string `json:"colour_status"`
	ColourJustification  string `json:"colour_justification"`
	ImageSummary         string `json:"image_summary"`
	DescriptionSynthesis string `json:"description_synthesis"`
}

// RefereeVerdict is the structured output of the second-pass review.
type RefereeVerdict struct {
	FinalColourStatus        string `json:"final_colour_status"`
	FinalColourJustification string `json:"final_colour_justification"`
}

func validStatus(status string) bool {
	switch status {
	case StatusMatch, StatusMismatch, StatusUncertain:
		return true
	}
	return false
}
