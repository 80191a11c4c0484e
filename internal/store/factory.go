package store

import (
	"context"
	"fmt"
	"path/filepath"

	"cookbook-go/internal/config"
	"cookbook-go/internal/cookbook"
	"cookbook-go/internal/database"
)

// SQLiteFileName is the database file created under data_dir.
const SQLiteFileName = "cookbook.db"

// NewStoreFromConfig creates a Store implementation based on the storage config type.
func NewStoreFromConfig(ctx context.Context, cfg config.StorageConfig, logger cookbook.Logger) (cookbook.Store, error) {
	switch cfg.Type {
	case "memory":
		return NewMemoryStore(), nil
	case "filesystem":
		if cfg.FSRoot == "" {
			return nil, fmt.Errorf("filesystem storage requires fs_root to be set")
		}
		return NewFileSystemStore(cfg.FSRoot)
	case "sqlite":
		if cfg.DataDir == "" {
			return nil, fmt.Errorf("sqlite storage requires data_dir to be set")
		}
		path := cfg.DataDir
		if path != ":memory:" {
			path = filepath.Join(cfg.DataDir, SQLiteFileName)
			if err := ensureDir(cfg.DataDir); err != nil {
				return nil, err
			}
		}
		return database.NewSQLiteStore(path, logger)
	case "s3":
		opts := S3Options{
			Bucket:          cfg.S3Bucket,
			Prefix:          cfg.S3Prefix,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
		}
		if opts.Bucket == "" {
			return nil, fmt.Errorf("s3 storage requires s3_bucket to be set")
		}
		client, err := NewS3Client(ctx, opts)
		if err != nil {
			return nil, err
		}
		return NewS3Store(client, opts)
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}
