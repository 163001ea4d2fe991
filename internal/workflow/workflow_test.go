package workflow

import (
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/JaimeStill/prism/internal/verify"
)

func ptr(s string) *string { return &s }

func TestVerificationState(t *testing.T) {
	t.Run("skipped", func(t *testing.T) {
		vs := &VerificationState{SkipReason: ptr(SkipNoImages)}
		if !vs.Skipped() {
			t.Error("Skipped() = false, want true")
		}

		vs = &VerificationState{}
		if vs.Skipped() {
			t.Error("Skipped() = true, want false")
		}
	})

	t.Run("needs referee", func(t *testing.T) {
		tests := []struct {
			name    string
			verdict *verify.ClassifierVerdict
			want    bool
		}{
			{"no verdict", nil, false},
			{"match", &verify.ClassifierVerdict{ColourStatus: verify.StatusMatch}, false},
			{"mismatch", &verify.ClassifierVerdict{ColourStatus: verify.StatusMismatch}, true},
			{"uncertain", &verify.ClassifierVerdict{ColourStatus: verify.StatusUncertain}, true},
		}

		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				vs := &VerificationState{Classifier: tc.verdict}
				if got := vs.NeedsReferee(); got != tc.want {
					t.Errorf("NeedsReferee() = %v, want %v", got, tc.want)
				}
			})
		}
	})
}

func seedState(vs VerificationState) (state.State, uuid.UUID, uuid.UUID) {
	batchKey := uuid.New()
	productKey := uuid.New()

	s := state.New(nil)
	s = s.Set(KeyBatchKey, batchKey)
	s = s.Set(KeyProductKey, productKey)
	s = s.Set(KeyVerifyState, vs)

	return s, batchKey, productKey
}

func TestExtractResult(t *testing.T) {
	t.Run("sentinel outcome", func(t *testing.T) {
		vs := VerificationState{
			ImageName:  ptr("table.jpg"),
			SkipReason: ptr(SkipFileMissing),
		}
		s, batchKey, productKey := seedState(vs)

		record, err := extractResult(s)
		if err != nil {
			t.Fatalf("extractResult error: %v", err)
		}

		if record.BatchKey != batchKey || record.ProductKey != productKey {
			t.Errorf("keys = (%s, %s), want (%s, %s)", record.BatchKey, record.ProductKey, batchKey, productKey)
		}
		if record.ColourStatus != verify.StatusSkipped {
			t.Errorf("ColourStatus = %q, want SKIPPED", record.ColourStatus)
		}
		if record.ColourJustification == nil || *record.ColourJustification != SkipFileMissing {
			t.Errorf("ColourJustification = %v, want %q", record.ColourJustification, SkipFileMissing)
		}
		if record.ImageName == nil || *record.ImageName != "table.jpg" {
			t.Errorf("ImageName = %v, want table.jpg", record.ImageName)
		}
		if record.FinalColourStatus != nil {
			t.Errorf("FinalColourStatus = %v, want nil", record.FinalColourStatus)
		}
	})

	t.Run("matching verdict without referee", func(t *testing.T) {
		vs := VerificationState{
			ImageName: ptr("table.jpg"),
			Classifier: &verify.ClassifierVerdict{
				ColourStatus:         verify.StatusMatch,
				ColourJustification:  "colours align",
				ImageSummary:         "an oak table",
				DescriptionSynthesis: "an oak table",
			},
		}
		s, _, _ := seedState(vs)

		record, err := extractResult(s)
		if err != nil {
			t.Fatalf("extractResult error: %v", err)
		}

		if record.ColourStatus != verify.StatusMatch {
			t.Errorf("ColourStatus = %q, want MATCH", record.ColourStatus)
		}
		if record.ColourJustification == nil || *record.ColourJustification != "colours align" {
			t.Errorf("ColourJustification = %v", record.ColourJustification)
		}
		if record.FinalColourStatus != nil || record.FinalColourJustification != nil {
			t.Error("referee fields set on unreviewed record")
		}
	})

	t.Run("reviewed verdict", func(t *testing.T) {
		vs := VerificationState{
			ImageName: ptr("table.jpg"),
			Classifier: &verify.ClassifierVerdict{
				ColourStatus:        verify.StatusMismatch,
				ColourJustification: "looks grey",
			},
			Referee: &verify.RefereeVerdict{
				FinalColourStatus:        verify.StatusMatch,
				FinalColourJustification: "grey is within the oak range",
			},
		}
		s, _, _ := seedState(vs)

		record, err := extractResult(s)
		if err != nil {
			t.Fatalf("extractResult error: %v", err)
		}

		if record.ColourStatus != verify.StatusMismatch {
			t.Errorf("ColourStatus = %q, want MISMATCH", record.ColourStatus)
		}
		if record.FinalColourStatus == nil || *record.FinalColourStatus != verify.StatusMatch {
			t.Errorf("FinalColourStatus = %v, want MATCH", record.FinalColourStatus)
		}
	})

	t.Run("missing classifier verdict", func(t *testing.T) {
		s, _, _ := seedState(VerificationState{ImageName: ptr("table.jpg")})

		if _, err := extractResult(s); err == nil {
			t.Error("extractResult succeeded without a verdict")
		}
	})

	t.Run("missing verification state", func(t *testing.T) {
		s := state.New(nil)
		s = s.Set(KeyBatchKey, uuid.New())
		s = s.Set(KeyProductKey, uuid.New())

		_, err := extractResult(s)
		if err == nil || !strings.Contains(err.Error(), KeyVerifyState) {
			t.Errorf("extractResult error = %v, want missing state key", err)
		}
	})
}

func TestEdgeConditions(t *testing.T) {
	t.Run("skipped condition", func(t *testing.T) {
		s, _, _ := seedState(VerificationState{SkipReason: ptr(SkipNoOverview)})
		if !skipped(s) {
			t.Error("skipped = false, want true")
		}
		if needsReferee(s) {
			t.Error("needsReferee = true for skipped state")
		}
	})

	t.Run("mismatch routes to referee", func(t *testing.T) {
		s, _, _ := seedState(VerificationState{
			Classifier: &verify.ClassifierVerdict{ColourStatus: verify.StatusMismatch},
		})
		if skipped(s) {
			t.Error("skipped = true, want false")
		}
		if !needsReferee(s) {
			t.Error("needsReferee = false, want true")
		}
	})

	t.Run("conditions tolerate missing state", func(t *testing.T) {
		s := state.New(nil)
		if skipped(s) || needsReferee(s) {
			t.Error("conditions fired on empty state")
		}
	})
}
