package cookbook

import (
	"encoding/json"
	"fmt"
)

// loadRecord decodes the JSON document stored under key into dst.
// An absent key leaves dst untouched and reports false.
func loadRecord(store Store, key string, dst any) (bool, error) {
	data, err := store.Get(key)
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", key, err)
	}
	if data == nil {
		return false, nil
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("decoding %s: %w", key, err)
	}
	return true, nil
}

// batch collects encoded documents for one SetMany call.
type batch map[string][]byte

func (b batch) put(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	b[key] = data
	return nil
}

// write encodes every record and stores them with a single SetMany.
func write(store Store, records map[string]any) error {
	b := batch{}
	for key, v := range records {
		if err := b.put(key, v); err != nil {
			return err
		}
	}
	if err := store.SetMany(b); err != nil {
		return fmt.Errorf("writing %d record(s): %w", len(b), err)
	}
	return nil
}
