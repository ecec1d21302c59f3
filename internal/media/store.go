// Package media stores uploaded product images on disk and hands back
// the public reference path served under /media.
package media

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

type DiskStore struct {
	dir string
}

func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(filepath.Join(dir, "products"), 0o755); err != nil {
		return nil, err
	}
	return &DiskStore{dir: dir}, nil
}

// Save writes the upload under a fresh uuid name, keeping only the
// original extension. The stored name never derives from client input
// beyond that, so traversal is impossible by construction.
func (s *DiskStore) Save(filename string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if len(ext) > 10 || strings.ContainsAny(ext, `/\`) {
		ext = ""
	}
	name := uuid.NewString() + ext

	f, err := os.Create(filepath.Join(s.dir, "products", name))
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", err
	}
	return "/media/products/" + name, nil
}
