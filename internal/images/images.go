// Package images resolves catalog image references into fetchable bytes.
// References arriving from scraped detail records carry query strings and
// rendering suffixes after the file extension; TrimReference cuts them at the
// first extension boundary before the mapping table is consulted.
package images

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"

	"github.com/JaimeStill/prism/internal/catalog"
)

var extensionBoundary = regexp.MustCompile(`(?i)\.(jpg|jpeg|png|webp|gif)`)

// TrimReference truncates ref after the first image file extension.
// References with no recognized extension are returned unchanged.
func TrimReference(ref string) string {
	if loc := extensionBoundary.FindStringIndex(ref); loc != nil {
		return ref[:loc[1]]
	}
	return ref
}

// Source fetches image bytes by mapped name. Implementations report a missing
// file with ErrNotFound.
type Source interface {
	Fetch(ctx context.Context, name string) ([]byte, error)
}

// Resolver maps raw image references to stored files and fetches their bytes.
type Resolver struct {
	catalog catalog.System
	source  Source
	logger  *slog.Logger
}

// NewResolver creates a Resolver over the catalog mapping table and the given
// byte source.
func NewResolver(catalog catalog.System, source Source, logger *slog.Logger) *Resolver {
	return &Resolver{
		catalog: catalog,
		source:  source,
		logger:  logger.With("system", "images"),
	}
}

// Resolve trims ref, looks up its mapped file name, and fetches the bytes.
// A mapping miss returns (nil, ""); a mapped name whose bytes are missing
// returns (nil, name) so callers can record the attempted file. Resolve never
// fails on absence, only on infrastructure errors.
func (r *Resolver) Resolve(ctx context.Context, ref string) ([]byte, string, error) {
	trimmed := TrimReference(ref)

	name, err := r.catalog.ImagePath(ctx, trimmed)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			r.logger.Warn("no image mapping", "reference", trimmed)
			return nil, "", nil
		}
		return nil, "", fmt.Errorf("lookup image mapping: %w", err)
	}

	data, err := r.Fetch(ctx, name)
	if err != nil {
		return nil, name, err
	}
	if data == nil {
		return nil, name, nil
	}

	return data, name, nil
}

// Fetch retrieves the bytes for an already-mapped file name. A missing file
// returns (nil, nil) after a warning; infrastructure failures are returned.
func (r *Resolver) Fetch(ctx context.Context, name string) ([]byte, error) {
	data, err := r.source.Fetch(ctx, name)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			r.logger.Warn("image file not found", "name", name)
			return nil, nil
		}
		return nil, fmt.Errorf("fetch image %s: %w", name, err)
	}
	return data, nil
}
