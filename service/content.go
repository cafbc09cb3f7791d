package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"regexp"

	"github.com/kevinaaaquil/myb/backend/apperr"
)

// ContentStore holds uploaded cover images and PDFs under the names the upload handler
// generates. Open returns apperr.ErrNotFound for unknown names.
type ContentStore interface {
	Put(ctx context.Context, name string, data []byte, contentType string) error
	Open(ctx context.Context, name string) (body io.ReadCloser, contentType string, err error)
}

var storedName = regexp.MustCompile(`^[A-Za-z0-9_-][A-Za-z0-9._-]*$`)

// ValidName reports whether name could have been produced by the upload handler. It never
// contains a path separator and never starts with a dot.
func ValidName(name string) bool {
	return len(name) <= 255 && storedName.MatchString(name)
}

// ContentTypeFor guesses a type from the file extension.
func ContentTypeFor(name string) string {
	if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// DiskStore keeps uploads as plain files in Dir.
type DiskStore struct {
	Dir string
}

func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}
	return &DiskStore{Dir: dir}, nil
}

func (d *DiskStore) Put(_ context.Context, name string, data []byte, _ string) error {
	if !ValidName(name) {
		return apperr.InvalidPayload("invalid file name")
	}
	f, err := os.OpenFile(filepath.Join(d.Dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return apperr.Conflict("file already exists")
		}
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return err
	}
	return f.Close()
}

func (d *DiskStore) Open(_ context.Context, name string) (io.ReadCloser, string, error) {
	if !ValidName(name) {
		return nil, "", apperr.ErrNotFound
	}
	f, err := os.Open(filepath.Join(d.Dir, name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, "", apperr.ErrNotFound
		}
		return nil, "", err
	}
	return f, ContentTypeFor(name), nil
}
