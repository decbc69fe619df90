package storage

import (
	"context"
	"io"
	"time"
)

// PutOptions describes an object to store.
type PutOptions struct {
	Bucket      string
	Key         string
	ContentType string
	Size        int64
}

// Service keeps receipt files in remote object storage.
type Service interface {
	PutObject(ctx context.Context, body io.Reader, opts PutOptions) (string, error)
	DeletePrefix(ctx context.Context, bucket, prefix string) error
	GetObjectURL(ctx context.Context, bucket, key string, expires time.Duration) (string, error)
}
