package verify_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/JaimeStill/prism/internal/verify"
	"github.com/JaimeStill/prism/pkg/retry"
)

// scriptedInvoker returns its responses in order, recording every call. An
// entry with a non-nil err simulates a transient provider failure.
type scriptedInvoker struct {
	responses []scriptedResponse
	calls     []invocation
}

type scriptedResponse struct {
	content string
	err     error
}

type invocation struct {
	system string
	human  string
	images []string
}

func (s *scriptedInvoker) Invoke(_ context.Context, system, human string, images []string) (string, error) {
	s.calls = append(s.calls, invocation{system: system, human: human, images: images})

	i := len(s.calls) - 1
	if i >= len(s.responses) {
		return "", errors.New("no scripted response")
	}
	return s.responses[i].content, s.responses[i].err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testPolicy() retry.Policy {
	return retry.Policy{MaxAttempts: 3, BaseDelay: time.Millisecond}
}

const classifierJSON = `{
	"colour_status": "MISMATCH",
	"colour_justification": "The image shows a red chair but the description says blue.",
	"image_summary": "A red fabric armchair.",
	"description_synthesis": "A blue fabric armchair."
}`

func TestNewClassifier(t *testing.T) {
	t.Run("rejects empty instructions", func(t *testing.T) {
		_, err := verify.NewClassifier(&scriptedInvoker{}, "", testPolicy(), testLogger())
		if !errors.Is(err, verify.ErrEmptyInstructions) {
			t.Errorf("NewClassifier error = %v, want ErrEmptyInstructions", err)
		}
	})

	t.Run("packaged instructions are non-empty", func(t *testing.T) {
		if _, err := verify.NewClassifier(&scriptedInvoker{}, verify.ClassifierInstructions, testPolicy(), testLogger()); err != nil {
			t.Errorf("NewClassifier error = %v", err)
		}
	})
}

func TestClassify(t *testing.T) {
	t.Run("parses verdict", func(t *testing.T) {
		inv := &scriptedInvoker{responses: []scriptedResponse{{content: classifierJSON}}}
		c, err := verify.NewClassifier(inv, "judge the image", testPolicy(), testLogger())
		if err != nil {
			t.Fatalf("NewClassifier error: %v", err)
		}

		verdict, err := c.Classify(context.Background(), "A blue armchair", "data:image/jpeg;base64,AAAA")
		if err != nil {
			t.Fatalf("Classify error: %v", err)
		}

		if verdict.ColourStatus != verify.StatusMismatch {
			t.Errorf("ColourStatus = %q, want MISMATCH", verdict.ColourStatus)
		}
		if verdict.ImageSummary != "A red fabric armchair." {
			t.Errorf("ImageSummary = %q", verdict.ImageSummary)
		}

		if len(inv.calls) != 1 {
			t.Fatalf("calls = %d, want 1", len(inv.calls))
		}
		call := inv.calls[0]
		if call.system != "judge the image" {
			t.Errorf("system = %q", call.system)
		}
		if call.human != "A blue armchair" {
			t.Errorf("human = %q", call.human)
		}
		if len(call.images) != 1 || call.images[0] != "data:image/jpeg;base64,AAAA" {
			t.Errorf("images = %v", call.images)
		}
	})

	t.Run("retries transient failures", func(t *testing.T) {
		inv := &scriptedInvoker{responses: []scriptedResponse{
			{err: errors.New("rate limited")},
			{content: classifierJSON},
		}}
		c, err := verify.NewClassifier(inv, "judge", testPolicy(), testLogger())
		if err != nil {
			t.Fatalf("NewClassifier error: %v", err)
		}

		verdict, err := c.Classify(context.Background(), "desc", "uri")
		if err != nil {
			t.Fatalf("Classify error: %v", err)
		}
		if verdict.ColourStatus != verify.StatusMismatch {
			t.Errorf("ColourStatus = %q", verdict.ColourStatus)
		}
		if len(inv.calls) != 2 {
			t.Errorf("calls = %d, want 2", len(inv.calls))
		}
	})

	t.Run("retries malformed output", func(t *testing.T) {
		inv := &scriptedInvoker{responses: []scriptedResponse{
			{content: "the chair looks red to me"},
			{content: classifierJSON},
		}}
		c, err := verify.NewClassifier(inv, "judge", testPolicy(), testLogger())
		if err != nil {
			t.Fatalf("NewClassifier error: %v", err)
		}

		if _, err := c.Classify(context.Background(), "desc", "uri"); err != nil {
			t.Fatalf("Classify error: %v", err)
		}
		if len(inv.calls) != 2 {
			t.Errorf("calls = %d, want 2", len(inv.calls))
		}
	})

	t.Run("retries unrecognized status", func(t *testing.T) {
		inv := &scriptedInvoker{responses: []scriptedResponse{
			{content: `{"colour_status": "MAYBE"}`},
			{content: classifierJSON},
		}}
		c, err := verify.NewClassifier(inv, "judge", testPolicy(), testLogger())
		if err != nil {
			t.Fatalf("NewClassifier error: %v", err)
		}

		if _, err := c.Classify(context.Background(), "desc", "uri"); err != nil {
			t.Fatalf("Classify error: %v", err)
		}
		if len(inv.calls) != 2 {
			t.Errorf("calls = %d, want 2", len(inv.calls))
		}
	})

	t.Run("exhausts the policy", func(t *testing.T) {
		inv := &scriptedInvoker{responses: []scriptedResponse{
			{err: errors.New("down")},
			{err: errors.New("down")},
			{err: errors.New("down")},
		}}
		c, err := verify.NewClassifier(inv, "judge", testPolicy(), testLogger())
		if err != nil {
			t.Fatalf("NewClassifier error: %v", err)
		}

		if _, err := c.Classify(context.Background(), "desc", "uri"); err == nil {
			t.Error("Classify succeeded, want exhaustion error")
		}
		if len(inv.calls) != 3 {
			t.Errorf("calls = %d, want 3", len(inv.calls))
		}
	})
}

func TestReview(t *testing.T) {
	refereeJSON := `{
		"final_colour_status": "MATCH",
		"final_colour_justification": "The chair reads as blue under warm lighting."
	}`

	verdict := verify.ClassifierVerdict{
		ColourStatus:         verify.StatusMismatch,
		ColourJustification:  "looks red",
		ImageSummary:         "a red chair",
		DescriptionSynthesis: "a blue chair",
	}

	t.Run("formats the classifier output", func(t *testing.T) {
		inv := &scriptedInvoker{responses: []scriptedResponse{{content: refereeJSON}}}
		r, err := verify.NewReferee(inv, "review the verdict", testPolicy(), testLogger())
		if err != nil {
			t.Fatalf("NewReferee error: %v", err)
		}

		final, err := r.Review(context.Background(), "A blue chair", verdict, "uri")
		if err != nil {
			t.Fatalf("Review error: %v", err)
		}
		if final.FinalColourStatus != verify.StatusMatch {
			t.Errorf("FinalColourStatus = %q, want MATCH", final.FinalColourStatus)
		}

		want := "Product Description: A blue chair\n\n" +
			"Classifier Output:\n" +
			"- colour_status: MISMATCH\n" +
			"- colour_justification: looks red\n" +
			"- image_summary: a red chair\n" +
			"- description_synthesis: a blue chair"

		if len(inv.calls) != 1 {
			t.Fatalf("calls = %d, want 1", len(inv.calls))
		}
		if got := inv.calls[0].human; got != want {
			t.Errorf("human turn =\n%s\nwant\n%s", got, want)
		}
	})

	t.Run("rejects empty instructions", func(t *testing.T) {
		_, err := verify.NewReferee(&scriptedInvoker{}, "", testPolicy(), testLogger())
		if !errors.Is(err, verify.ErrEmptyInstructions) {
			t.Errorf("NewReferee error = %v, want ErrEmptyInstructions", err)
		}
	})

	t.Run("retries unrecognized final status", func(t *testing.T) {
		inv := &scriptedInvoker{responses: []scriptedResponse{
			{content: `{"final_colour_status": "SKIPPED"}`},
			{content: refereeJSON},
		}}
		r, err := verify.NewReferee(inv, "review", testPolicy(), testLogger())
		if err != nil {
			t.Fatalf("NewReferee error: %v", err)
		}

		if _, err := r.Review(context.Background(), "desc", verdict, "uri"); err != nil {
			t.Fatalf("Review error: %v", err)
		}
		if len(inv.calls) != 2 {
			t.Errorf("calls = %d, want 2", len(inv.calls))
		}
	})
}
