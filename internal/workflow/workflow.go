package workflow

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	gaoconfig "github.com/JaimeStill/go-agents-orchestration/pkg/config"
	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/JaimeStill/prism/internal/predictions"
	"github.com/JaimeStill/prism/internal/verify"
)

// Execute runs the verification workflow for a single product. It builds the
// state graph (init → classify → referee? → finalize), executes it, and
// extracts the prediction record from the final state. Sentinel outcomes
// (missing overview, images, or image file) are records, not errors.
func Execute(ctx context.Context, rt *Runtime, batchKey, productKey uuid.UUID) (*predictions.PredictionRecord, error) {
	graph, err := buildGraph(rt)
	if err != nil {
		return nil, fmt.Errorf("build graph: %w", err)
	}

	initialState := state.New(nil)
	initialState = initialState.Set(KeyBatchKey, batchKey)
	initialState = initialState.Set(KeyProductKey, productKey)

	finalState, err := graph.Execute(ctx, initialState)
	if err != nil {
		return nil, fmt.Errorf("execute graph: %w", err)
	}

	return extractResult(finalState)
}

func buildGraph(rt *Runtime) (state.StateGraph, error) {
	cfg := gaoconfig.DefaultGraphConfig("prism-verify")
	cfg.Observer = "noop"

	graph, err := state.NewGraph(cfg)
	if err != nil {
		return nil, err
	}

	if err := graph.AddNode("init", InitNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("classify", ClassifyNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("referee", RefereeNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("finalize", FinalizeNode(rt)); err != nil {
		return nil, err
	}

	// init → finalize (sentinel short-circuit)
	if err := graph.AddEdge("init", "finalize", skipped); err != nil {
		return nil, err
	}

	// init → classify (when the product has a fetchable image)
	if err := graph.AddEdge("init", "classify", state.Not(skipped)); err != nil {
		return nil, err
	}

	// classify → referee (when the verdict is not a match)
	if err := graph.AddEdge("classify", "referee", needsReferee); err != nil {
		return nil, err
	}

	// classify → finalize (matching verdicts never reach the referee)
	if err := graph.AddEdge("classify", "finalize", state.Not(needsReferee)); err != nil {
		return nil, err
	}

	// referee → finalize (unconditional)
	if err := graph.AddEdge("referee", "finalize", nil); err != nil {
		return nil, err
	}

	if err := graph.SetEntryPoint("init"); err != nil {
		return nil, err
	}

	if err := graph.SetExitPoint("finalize"); err != nil {
		return nil, err
	}

	return graph, nil
}

func extractResult(s state.State) (*predictions.PredictionRecord, error) {
	vs, err := extractVerifyState(s)
	if err != nil {
		return nil, err
	}

	batchKey, productKey, err := extractKeys(s)
	if err != nil {
		return nil, err
	}

	record := &predictions.PredictionRecord{
		BatchKey:   batchKey,
		ProductKey: productKey,
		ImageName:  vs.ImageName,
	}

	if vs.Skipped() {
		record.ColourStatus = verify.StatusSkipped
		record.ColourJustification = vs.SkipReason
		return record, nil
	}

	if vs.Classifier == nil {
		return nil, fmt.Errorf("%w: no classifier verdict in final state", ErrFinalizeFailed)
	}

	record.ColourStatus = vs.Classifier.ColourStatus
	record.ColourJustification = &vs.Classifier.ColourJustification
	record.ImageSummary = &vs.Classifier.ImageSummary
	record.DescriptionSynthesis = &vs.Classifier.DescriptionSynthesis

	if vs.Referee != nil {
		record.FinalColourStatus = &vs.Referee.FinalColourStatus
		record.FinalColourJustification = &vs.Referee.FinalColourJustification
	}

	return record, nil
}

func extractVerifyState(s state.State) (*VerificationState, error) {
	val, ok := s.Get(KeyVerifyState)
	if !ok {
		return nil, fmt.Errorf("missing %s in state", KeyVerifyState)
	}

	vs, ok := val.(VerificationState)
	if !ok {
		return nil, fmt.Errorf("%s is not VerificationState", KeyVerifyState)
	}

	return &vs, nil
}

func extractKeys(s state.State) (uuid.UUID, uuid.UUID, error) {
	batchVal, ok := s.Get(KeyBatchKey)
	if !ok {
		return uuid.Nil, uuid.Nil, fmt.Errorf("missing %s in state", KeyBatchKey)
	}

	batchKey, ok := batchVal.(uuid.UUID)
	if !ok {
		return uuid.Nil, uuid.Nil, fmt.Errorf("%s is not uuid.UUID", KeyBatchKey)
	}

	productVal, ok := s.Get(KeyProductKey)
	if !ok {
		return uuid.Nil, uuid.Nil, fmt.Errorf("missing %s in state", KeyProductKey)
	}

	productKey, ok := productVal.(uuid.UUID)
	if !ok {
		return uuid.Nil, uuid.Nil, fmt.Errorf("%s is not uuid.UUID", KeyProductKey)
	}

	return batchKey, productKey, nil
}

func skipped(s state.State) bool {
	vs, err := extractVerifyState(s)
	if err != nil {
		return false
	}
	return vs.Skipped()
}

func needsReferee(s state.State) bool {
	vs, err := extractVerifyState(s)
	if err != nil {
		return false
	}
	return vs.NeedsReferee()
}
