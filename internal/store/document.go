package store

import (
	"encoding/json"
	"fmt"
	"maps"
	"sync"
)

const (
	// DocumentName is the name of the file or object holding every record.
	DocumentName = "cookbook.json"

	documentVersion = 1
)

// document is the on-disk layout shared by the filesystem and S3 stores.
type document struct {
	Version int               `json:"version"`
	Records map[string][]byte `json:"records"`
}

// blob persists a whole document. Implementations must replace it atomically.
type blob interface {
	// load returns the stored document, or nil when none exists yet.
	load() ([]byte, error)
	save(data []byte) error
}

// documentStore keeps every record in memory and rewrites the whole document
// on each mutation, so any single call is stored all-or-nothing.
type documentStore struct {
	mu      sync.Mutex
	blob    blob
	records map[string][]byte
}

func openDocument(b blob) (*documentStore, error) {
	data, err := b.load()
	if err != nil {
		return nil, fmt.Errorf("loading document: %w", err)
	}

	records := make(map[string][]byte)
	if len(data) > 0 {
		var doc document
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decoding document: %w", err)
		}
		if doc.Version > documentVersion {
			return nil, fmt.Errorf("document version %d is newer than supported version %d", doc.Version, documentVersion)
		}
		if doc.Records != nil {
			records = doc.Records
		}
	}

	return &documentStore{blob: b, records: records}, nil
}

// Get returns the value stored under key, or nil when absent.
func (d *documentStore) Get(key string) ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	data, ok := d.records[key]
	if !ok {
		return nil, nil
	}
	return cloneValue(data), nil
}

func (d *documentStore) Set(key string, value []byte) error {
	return d.SetMany(map[string][]byte{key: value})
}

// SetMany rewrites the document once with every value applied.
func (d *documentStore) SetMany(values map[string][]byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	next := maps.Clone(d.records)
	for key, value := range values {
		next[key] = cloneValue(value)
	}
	return d.commit(next)
}

// Delete rewrites the document without key. Absent keys are a no-op.
func (d *documentStore) Delete(key string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.records[key]; !ok {
		return nil
	}
	next := maps.Clone(d.records)
	delete(next, key)
	return d.commit(next)
}

func (d *documentStore) Close() error {
	return nil
}

// commit saves next and makes it current only when the save succeeded.
func (d *documentStore) commit(next map[string][]byte) error {
	data, err := json.Marshal(document{Version: documentVersion, Records: next})
	if err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}
	if err := d.blob.save(data); err != nil {
		return fmt.Errorf("saving document: %w", err)
	}
	d.records = next
	return nil
}
