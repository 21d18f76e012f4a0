package blobstore

import (
	"context"
	"errors"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// GCSStore is a Blobstore backed by Google Cloud Storage.
type GCSStore struct {
	client *storage.Client
	bucket string
	prefix string
}

var _ Blobstore = &GCSStore{}

// NewGCSStore creates a new GCS blobstore from the configuration.
// When no service account JSON is configured, application default
// credentials are used.
func NewGCSStore(ctx context.Context, cfg GCSConfig) (*GCSStore, error) {
	var opts []option.ClientOption
	if cfg.CredentialsJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create gcs client: %w", err)
	}

	return &GCSStore{client: client, bucket: cfg.Bucket, prefix: cfg.Prefix}, nil
}

func (g *GCSStore) Name() string {
	return "gcs"
}

func (g *GCSStore) Exists(ctx context.Context, key string) (bool, error) {
	obj := g.client.Bucket(g.bucket).Object(joinPrefix(g.prefix, key))
	_, err := obj.Attrs(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("stat %q: %w", key, err)
	}
	return true, nil
}

func (g *GCSStore) Get(ctx context.Context, key string) ([]byte, error) {
	obj := g.client.Bucket(g.bucket).Object(joinPrefix(g.prefix, key))
	r, err := obj.NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, NotFound{Key: key}
		}
		return nil, fmt.Errorf("get %q: %w", key, err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", key, err)
	}
	return data, nil
}

func (g *GCSStore) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	objKey := joinPrefix(g.prefix, key)
	w := g.client.Bucket(g.bucket).Object(objKey).NewWriter(ctx)
	w.ContentType = contentType

	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("put %q: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("put %q: %w", key, err)
	}
	return fmt.Sprintf("gs://%s/%s", g.bucket, objKey), nil
}

// Close releases the underlying GCS client.
func (g *GCSStore) Close() error {
	return g.client.Close()
}
