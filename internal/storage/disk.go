package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// BlobStore persists uploaded binary content under an opaque generated name.
type BlobStore interface {
	Store(ctx context.Context, originalName string, r io.Reader) (string, error)
	Retrieve(ctx context.Context, name string) (io.ReadCloser, error)
}

// DiskStore keeps blobs as flat files under a root directory. Names are
// random, with the original extension preserved so served files keep a
// sensible content type.
type DiskStore struct {
	root string
}

// NewDiskStore builds a store rooted at dir, creating it if needed.
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStore{root: dir}, nil
}

// Store writes the content to disk and returns the generated name.
func (s *DiskStore) Store(_ context.Context, originalName string, r io.Reader) (string, error) {
	name := uuid.NewString() + strings.ToLower(filepath.Ext(originalName))

	f, err := os.Create(filepath.Join(s.root, name))
	if err != nil {
		return "", fmt.Errorf("create blob: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("write blob: %w", err)
	}
	return name, nil
}

// Retrieve opens a previously stored blob. Names containing path separators
// are rejected so a crafted name cannot escape the root.
func (s *DiskStore) Retrieve(_ context.Context, name string) (io.ReadCloser, error) {
	if name == "" || name != filepath.Base(name) {
		return nil, os.ErrNotExist
	}
	return os.Open(filepath.Join(s.root, name))
}
