package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FSBlobStore keeps backup blobs as files in one directory.
type FSBlobStore struct {
	Dir string
}

// NewFSBlobStore creates the directory if needed.
func NewFSBlobStore(dir string) (*FSBlobStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create backup directory: %w", err)
	}
	return &FSBlobStore{Dir: dir}, nil
}

// List returns the JSON blob names in the directory, sorted.
func (f *FSBlobStore) List() ([]string, error) {
	entries, err := os.ReadDir(f.Dir)
	if err != nil {
		return nil, fmt.Errorf("list backups: %w", err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".json") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Create writes a named blob, refusing path separators in the name.
func (f *FSBlobStore) Create(name string, data []byte) error {
	if name != filepath.Base(name) {
		return fmt.Errorf("invalid backup name %q", name)
	}
	return os.WriteFile(filepath.Join(f.Dir, name), data, 0o644)
}

// Read returns the contents of a named blob.
func (f *FSBlobStore) Read(name string) ([]byte, error) {
	if name != filepath.Base(name) {
		return nil, fmt.Errorf("invalid backup name %q", name)
	}
	return os.ReadFile(filepath.Join(f.Dir, name))
}

// Delete removes a named blob.
func (f *FSBlobStore) Delete(name string) error {
	if name != filepath.Base(name) {
		return fmt.Errorf("invalid backup name %q", name)
	}
	return os.Remove(filepath.Join(f.Dir, name))
}
