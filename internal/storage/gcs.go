package storage

import (
	"context"
	"fmt"
	"mime"
	"path"
	"path/filepath"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

type GCSStorage struct {
	client *storage.Client
	bucket string
	prefix string
}

func NewGCSStorage(ctx context.Context, bucket, prefix string, opts ...option.ClientOption) (*GCSStorage, error) {
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}

	return &GCSStorage{
		client: client,
		bucket: bucket,
		prefix: prefix,
	}, nil
}

func (s *GCSStorage) Close() error {
	return s.client.Close()
}

func (s *GCSStorage) Save(ctx context.Context, name string, data []byte) (string, error) {
	object := ObjectName(s.prefix, name)

	w := s.client.Bucket(s.bucket).Object(object).NewWriter(ctx)
	if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
		w.ContentType = ct
	}

	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("failed to upload %s: %w", object, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize %s: %w", object, err)
	}

	return fmt.Sprintf("gs://%s/%s", s.bucket, object), nil
}

// ObjectName joins prefix and the base of name with a slash.
func ObjectName(prefix, name string) string {
	base := path.Base(filepath.ToSlash(name))
	if prefix == "" {
		return base
	}
	return path.Join(prefix, base)
}
