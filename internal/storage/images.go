package storage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const (
	// DefaultImage is the placeholder ref used when a recipe has no image.
	DefaultImage = "/assets/default-recipe.jpg"
	// ManagedPrefix marks refs whose underlying file this service owns.
	ManagedPrefix = "/uploads/"
)

// Managed reports whether ref points at a file the service is responsible
// for deleting. External URLs and the default placeholder are not managed.
func Managed(ref string) bool {
	return strings.HasPrefix(ref, ManagedPrefix)
}

// ImageStore persists managed recipe images.
type ImageStore interface {
	Save(file *multipart.FileHeader) (string, error)
	Remove(ref string) error
}

// DiskStore stores managed images in a local directory.
type DiskStore struct {
	dir string
}

// NewDiskStore creates the upload directory if needed and returns a store
// rooted there.
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

// Save streams an uploaded file into the store under a fresh UUID name and
// returns its managed ref.
func (s *DiskStore) Save(file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	name := uuid.New().String() + strings.ToLower(filepath.Ext(file.Filename))
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write image file: %w", err)
	}
	return ManagedPrefix + name, nil
}

// Remove deletes the file behind a managed ref. Unmanaged refs are a no-op
// and an already-missing file counts as success, so removal is idempotent
// and safe to repeat.
func (s *DiskStore) Remove(ref string) error {
	if !Managed(ref) {
		return nil
	}
	// Base strips any path segments a hostile ref could smuggle in.
	name := filepath.Base(strings.TrimPrefix(ref, ManagedPrefix))
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove image file: %w", err)
	}
	return nil
}
