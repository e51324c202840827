// Package storage keeps uploaded photos in an S3-compatible object store.
package storage

import (
	"context"
	"errors"
	"io"
	"path"
)

// ErrObjectExists is returned by Upload when the key is already taken. Uploads never overwrite.
var ErrObjectExists = errors.New("object already exists")

type UploadResult struct {
	Key      string
	Location string
	ETag     string
}

// FileUploader stores objects under keys and exposes them at public URLs.
// Keys are built with ObjectKey so every logical bucket lives under its own prefix.
type FileUploader interface {
	Upload(ctx context.Context, key string, contentType string, size int64, reader io.Reader) (*UploadResult, error)
	Delete(ctx context.Context, key string) error
	GetPublicURL(key string) string
}

// ObjectKey places key under the prefix of a logical bucket, e.g. housing-photos/<uuid>.jpg.
func ObjectKey(bucket, key string) string {
	return path.Join(bucket, key)
}
