// Package storage persists attachment bytes on disk under a date-partitioned
// layout and maps stored paths to public URLs.
package storage

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// FileStore writes files below Root and serves them below BaseURL.
type FileStore struct {
	Root    string
	BaseURL string
}

func New(root, baseURL string) *FileStore {
	return &FileStore{Root: root, BaseURL: strings.TrimRight(baseURL, "/")}
}

// Save writes data under <root>/YYYY/MM/DD/<uuid><ext> and returns the
// relative stored path. ext must include the leading dot.
func (fs *FileStore) Save(ext string, data []byte) (string, error) {
	rel := path.Join(time.Now().UTC().Format("2006/01/02"), uuid.NewString()+ext)
	abs := fs.Abs(rel)
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	if err := os.WriteFile(abs, data, 0o644); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	return rel, nil
}

// Remove deletes a previously stored file. Missing files are not an error.
func (fs *FileStore) Remove(rel string) error {
	err := os.Remove(fs.Abs(rel))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Abs resolves a stored relative path to a filesystem path.
func (fs *FileStore) Abs(rel string) string {
	return filepath.Join(fs.Root, filepath.FromSlash(rel))
}

// URL resolves a stored relative path to the public URL callers receive.
func (fs *FileStore) URL(rel string) string {
	return fs.BaseURL + "/" + rel
}
