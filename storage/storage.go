// Package storage provides binary object storage behind a small interface,
// with local-filesystem and S3 backends.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrNotExist is returned when the requested object is missing from the
// backing store.
var ErrNotExist = errors.New("object does not exist")

// Storage stores binary objects under caller-chosen keys. Derived assets
// (thumbnails) are stored under keys computed from the original key, so the
// key is fully under the caller's control rather than generated here.
type Storage interface {
	// Save stores an object under the given key, overwriting any previous
	// content.
	Save(ctx context.Context, key string, data io.Reader) error

	// Open returns the object's content. The caller must close the reader.
	// Returns ErrNotExist if the key is absent.
	Open(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes an object. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

// Type represents the storage backend type
type Type string

const (
	TypeLocal Type = "local"
	TypeS3    Type = "s3"
)

// Config holds configuration for storage backends.
type Config struct {
	Type         Type
	LocalPath    string // For local storage
	S3Bucket     string // For S3 storage
	S3Region     string // For S3 storage
	AWSAccessKey string
	AWSSecretKey string
}

// New creates a storage instance based on configuration.
func New(cfg Config) (Storage, error) {
	switch cfg.Type {
	case TypeLocal:
		return NewLocalStorage(cfg.LocalPath)
	case TypeS3:
		return NewS3Storage(cfg)
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}

// NewFromEnv creates a storage instance from environment variables.
func NewFromEnv() (Storage, error) {
	storageType := os.Getenv("STORAGE_TYPE")
	if storageType == "" {
		storageType = "local" // Default to local for development
	}

	switch Type(storageType) {
	case TypeLocal:
		localPath := os.Getenv("FOLDER_PATH")
		if localPath == "" {
			localPath = "/tmp/files_manager"
		}
		return NewLocalStorage(localPath)

	case TypeS3:
		cfg := Config{
			Type:         TypeS3,
			S3Bucket:     os.Getenv("AWS_S3_BUCKET"),
			S3Region:     os.Getenv("AWS_REGION"),
			AWSAccessKey: os.Getenv("AWS_ACCESS_KEY_ID"),
			AWSSecretKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		}
		if cfg.S3Region == "" {
			cfg.S3Region = "us-east-1"
		}
		if cfg.S3Bucket == "" {
			return nil, errors.New("AWS_S3_BUCKET environment variable is required for S3 storage")
		}
		return NewS3Storage(cfg)

	default:
		return nil, fmt.Errorf("unknown storage type: %s", storageType)
	}
}
