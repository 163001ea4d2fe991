package workflow

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/JaimeStill/document-context/pkg/document"
	"github.com/JaimeStill/document-context/pkg/encoding"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/JaimeStill/prism/internal/overview"
)

// InitNode returns a state node that assembles the product overview, resolves
// the primary image, and encodes it for the vision model. Missing data marks
// the state with a skip reason instead of failing: sentinel outcomes must
// reach the finalize node so they persist like any other verdict.
func InitNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		_, productKey, err := extractKeys(s)
		if err != nil {
			return s, fmt.Errorf("init: %w", err)
		}

		vs, err := assemble(ctx, rt, productKey)
		if err != nil {
			return s, fmt.Errorf("init: %w", err)
		}

		rt.Logger.InfoContext(
			ctx, "init node complete",
			"product_key", productKey,
			"skipped", vs.Skipped(),
		)

		s = s.Set(KeyVerifyState, *vs)
		return s, nil
	})
}

func assemble(ctx context.Context, rt *Runtime, productKey uuid.UUID) (*VerificationState, error) {
	ov, err := rt.Overviews.Assemble(ctx, productKey)
	if err != nil {
		if errors.Is(err, overview.ErrNotFound) {
			return skip(SkipNoOverview, nil), nil
		}
		return nil, fmt.Errorf("%w: %w", ErrInitFailed, err)
	}

	name := ov.PrimaryImagePath()
	if name == nil {
		return skip(SkipNoImages, nil), nil
	}

	data, err := rt.Images.Fetch(ctx, *name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInitFailed, err)
	}
	if data == nil {
		return skip(SkipFileMissing, name), nil
	}

	dataURI, err := encodeImage(data, *name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInitFailed, err)
	}

	return &VerificationState{
		Description: ov.Render(),
		ImageName:   name,
		ImageURI:    dataURI,
	}, nil
}

func skip(reason string, imageName *string) *VerificationState {
	return &VerificationState{
		ImageName:  imageName,
		SkipReason: &reason,
	}
}

func encodeImage(data []byte, name string) (string, error) {
	format := document.JPEG
	if strings.EqualFold(filepath.Ext(name), ".png") {
		format = document.PNG
	}

	dataURI, err := encoding.EncodeImageDataURI(data, format)
	if err != nil {
		return "", fmt.Errorf("encode image: %w", err)
	}

	return dataURI, nil
}
