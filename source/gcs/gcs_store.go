package gcs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/hupe1980/nslscan/source"
)

// Client opens object readers. StorageClient adapts *storage.Client.
type Client interface {
	NewReader(ctx context.Context, bucket, key string) (io.ReadCloser, error)
}

// StorageClient adapts a *storage.Client to Client.
type StorageClient struct {
	*storage.Client
}

// NewReader opens a reader for gs://bucket/key.
func (c StorageClient) NewReader(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	return c.Bucket(bucket).Object(key).NewReader(ctx)
}

// NewClient creates a storage client. An empty credentialsFile uses
// application default credentials.
func NewClient(ctx context.Context, credentialsFile string) (StorageClient, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	c, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return StorageClient{}, fmt.Errorf("failed to create GCS storage client: %w", err)
	}
	return StorageClient{Client: c}, nil
}

// Store implements source.Store for Google Cloud Storage.
type Store struct {
	client Client
	bucket string
	prefix string
}

// NewStore creates a new GCS store.
// rootPrefix is prepended to all keys.
func NewStore(client Client, bucket, rootPrefix string) *Store {
	return &Store{
		client: client,
		bucket: bucket,
		prefix: rootPrefix,
	}
}

// Open opens the named object for streaming reads.
func (s *Store) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	rc, err := s.client.NewReader(ctx, s.bucket, path.Join(s.prefix, name))
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) || errors.Is(err, storage.ErrBucketNotExist) {
			return nil, source.ErrNotFound
		}
		return nil, err
	}
	return rc, nil
}
