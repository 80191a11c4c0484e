package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"cookbook-go/internal/cookbook"
)

// FileSystemStore keeps every record in a single JSON document:
//
//	<root>/
//	  cookbook.json
//
// The document is replaced with a temp file + rename on every write.
type FileSystemStore struct {
	*documentStore
	root string
}

// NewFileSystemStore opens (or creates) the store rooted at the given path.
func NewFileSystemStore(root string) (*FileSystemStore, error) {
	if err := ensureDir(root); err != nil {
		return nil, err
	}

	doc, err := openDocument(fileBlob{path: filepath.Join(root, DocumentName)})
	if err != nil {
		return nil, fmt.Errorf("opening filesystem store at %s: %w", root, err)
	}
	return &FileSystemStore{documentStore: doc, root: root}, nil
}

// Path returns the location of the document.
func (s *FileSystemStore) Path() string {
	return filepath.Join(s.root, DocumentName)
}

func ensureDir(dir string) error {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}
	return nil
}

type fileBlob struct {
	path string
}

func (b fileBlob) load() ([]byte, error) {
	data, err := os.ReadFile(b.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", b.path, err)
	}
	return data, nil
}

// save writes data to the document path using atomic write (temp file + rename).
func (b fileBlob) save(data []byte) error {
	// Create temp file in the same directory to ensure atomic rename works
	tmpFile, err := os.CreateTemp(filepath.Dir(b.path), ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write data: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, b.path); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	success = true
	return nil
}

// Compile-time check that FileSystemStore implements cookbook.Store interface
var _ cookbook.Store = (*FileSystemStore)(nil)
