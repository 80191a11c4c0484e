package store

import (
	"context"
	"path/filepath"
	"testing"

	"cookbook-go/internal/config"
	"cookbook-go/internal/database"
)

func TestNewStoreFromConfig(t *testing.T) {
	ctx := context.Background()

	t.Run("memory store", func(t *testing.T) {
		got, err := NewStoreFromConfig(ctx, config.StorageConfig{Type: "memory"}, nil)
		if err != nil {
			t.Fatalf("NewStoreFromConfig() error = %v", err)
		}
		defer got.Close()
		if _, ok := got.(*MemoryStore); !ok {
			t.Errorf("NewStoreFromConfig() = %T, want *MemoryStore", got)
		}
	})

	t.Run("filesystem store", func(t *testing.T) {
		root := filepath.Join(t.TempDir(), "data")
		got, err := NewStoreFromConfig(ctx, config.StorageConfig{Type: "filesystem", FSRoot: root}, nil)
		if err != nil {
			t.Fatalf("NewStoreFromConfig() error = %v", err)
		}
		defer got.Close()
		fs, ok := got.(*FileSystemStore)
		if !ok {
			t.Fatalf("NewStoreFromConfig() = %T, want *FileSystemStore", got)
		}
		if fs.Path() != filepath.Join(root, DocumentName) {
			t.Errorf("Path() = %q", fs.Path())
		}
	})

	t.Run("sqlite store", func(t *testing.T) {
		dir := t.TempDir()
		got, err := NewStoreFromConfig(ctx, config.StorageConfig{Type: "sqlite", DataDir: dir}, nil)
		if err != nil {
			t.Fatalf("NewStoreFromConfig() error = %v", err)
		}
		defer got.Close()
		db, ok := got.(*database.SQLiteStore)
		if !ok {
			t.Fatalf("NewStoreFromConfig() = %T, want *database.SQLiteStore", got)
		}
		if db.Path() != filepath.Join(dir, SQLiteFileName) {
			t.Errorf("Path() = %q", db.Path())
		}
	})

	t.Run("in-memory sqlite store", func(t *testing.T) {
		got, err := NewStoreFromConfig(ctx, config.StorageConfig{Type: "sqlite", DataDir: ":memory:"}, nil)
		if err != nil {
			t.Fatalf("NewStoreFromConfig() error = %v", err)
		}
		got.Close()
	})

	errorCases := []struct {
		name string
		cfg  config.StorageConfig
	}{
		{"filesystem without root", config.StorageConfig{Type: "filesystem"}},
		{"sqlite without data dir", config.StorageConfig{Type: "sqlite"}},
		{"s3 without bucket", config.StorageConfig{Type: "s3"}},
		{"unknown type", config.StorageConfig{Type: "floppy"}},
	}
	for _, tt := range errorCases {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewStoreFromConfig(ctx, tt.cfg, nil); err == nil {
				t.Error("NewStoreFromConfig() expected error")
			}
		})
	}
}
