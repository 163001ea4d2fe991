package images

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/JaimeStill/prism/pkg/storage"
)

// DirSource fetches image files from a local directory root.
type DirSource struct {
	root string
}

// NewDirSource creates a Source rooted at the given directory.
func NewDirSource(root string) *DirSource {
	return &DirSource{root: root}
}

func (d *DirSource) Fetch(_ context.Context, name string) ([]byte, error) {
	if name == "" || strings.Contains(name, "..") {
		return nil, fmt.Errorf("invalid image name %q", name)
	}

	data, err := os.ReadFile(filepath.Join(d.root, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read image %s: %w", name, err)
	}

	return data, nil
}

// BlobSource fetches image files from blob storage.
type BlobSource struct {
	storage storage.System
}

// NewBlobSource creates a Source backed by the given storage system.
func NewBlobSource(sys storage.System) *BlobSource {
	return &BlobSource{storage: sys}
}

func (b *BlobSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	reader, err := b.storage.Download(ctx, name)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read image %s: %w", name, err)
	}

	return data, nil
}
