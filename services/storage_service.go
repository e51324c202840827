package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/utdisa/isa-portal/models"
	"github.com/utdisa/isa-portal/storage"
)

const (
	MaxUploadSize = 10 << 20

	publicObjectPrefix = "/storage/v1/object/public/"
)

var allowedBuckets = map[string]bool{
	models.BucketHousingPhotos: true,
}

type StoredObject struct {
	Bucket string `json:"bucket"`
	// Key is relative to the bucket and starts with the owner's id.
	Key string `json:"key"`
	// URL is the portal URL that redirects to the stored object.
	URL string `json:"url"`
}

// StorageService keeps every user's uploads under <bucket>/<user id>/ so that
// ownership of an object can be read off its key.
type StorageService interface {
	// Upload stores body under ownerID's prefix. Existing keys are never overwritten.
	Upload(ctx context.Context, ownerID uuid.UUID, bucket, key, contentType string, size int64, body io.Reader) (*StoredObject, error)
	// ObjectURL resolves a public portal path to the object store's own URL.
	ObjectURL(bucket, key string) (string, error)
	// CheckOwnedURL fails unless publicURL is a portal object URL under ownerID's prefix.
	CheckOwnedURL(ownerID uuid.UUID, publicURL string) error
	// RemoveOwned deletes the object behind publicURL if ownerID uploaded it.
	RemoveOwned(ctx context.Context, ownerID uuid.UUID, publicURL string) error
}

type storageService struct {
	uploader  storage.FileUploader
	publicURL string
	logger    *slog.Logger
}

// NewStorageService works without an uploader; every call then fails with
// ErrStorageUnavailable.
func NewStorageService(uploader storage.FileUploader, publicURL string, logger *slog.Logger) StorageService {
	return &storageService{
		uploader:  uploader,
		publicURL: strings.TrimRight(publicURL, "/"),
		logger:    logger,
	}
}

func (s *storageService) Upload(ctx context.Context, ownerID uuid.UUID, bucket, key, contentType string, size int64, body io.Reader) (*StoredObject, error) {
	if s.uploader == nil {
		return nil, ErrStorageUnavailable
	}
	if err := checkObjectPath(bucket, key); err != nil {
		return nil, err
	}
	if size > MaxUploadSize {
		return nil, fmt.Errorf("%w: limit is %d bytes", ErrPayloadTooLarge, MaxUploadSize)
	}
	if size <= 0 {
		return nil, fmt.Errorf("%w: empty upload", ErrValidationFailed)
	}
	ext, err := GetExtensionFromContentType(contentType)
	if err != nil {
		return nil, err
	}
	if path.Ext(key) == "" {
		key += ext
	}
	key = path.Join(ownerID.String(), key)

	result, err := s.uploader.Upload(ctx, storage.ObjectKey(bucket, key), contentType, size, body)
	if err != nil {
		if errors.Is(err, storage.ErrObjectExists) {
			return nil, fmt.Errorf("%w: %s/%s", ErrObjectExists, bucket, key)
		}
		return nil, fmt.Errorf("failed to upload object: %w", err)
	}
	s.logger.InfoContext(ctx, "object uploaded",
		slog.String("bucket", bucket), slog.String("key", key), slog.String("location", result.Location))

	return &StoredObject{Bucket: bucket, Key: key, URL: s.portalURL(bucket, key)}, nil
}

func (s *storageService) ObjectURL(bucket, key string) (string, error) {
	if s.uploader == nil {
		return "", ErrStorageUnavailable
	}
	if err := checkObjectPath(bucket, key); err != nil {
		return "", err
	}
	return s.uploader.GetPublicURL(storage.ObjectKey(bucket, key)), nil
}

func (s *storageService) CheckOwnedURL(ownerID uuid.UUID, publicURL string) error {
	_, _, err := s.ownedObject(ownerID, publicURL)
	return err
}

func (s *storageService) RemoveOwned(ctx context.Context, ownerID uuid.UUID, publicURL string) error {
	if s.uploader == nil {
		return ErrStorageUnavailable
	}
	bucket, key, err := s.ownedObject(ownerID, publicURL)
	if err != nil {
		return err
	}
	if err := s.uploader.Delete(ctx, storage.ObjectKey(bucket, key)); err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

func (s *storageService) ownedObject(ownerID uuid.UUID, publicURL string) (bucket, key string, err error) {
	bucket, key, ok := splitPublicURL(publicURL)
	if !ok {
		return "", "", fmt.Errorf("%w: %q is not a portal object URL", ErrValidationFailed, publicURL)
	}
	if err := checkObjectPath(bucket, key); err != nil {
		return "", "", err
	}
	if !strings.HasPrefix(key, ownerID.String()+"/") {
		return "", "", fmt.Errorf("%w: %s/%s", ErrObjectNotOwned, bucket, key)
	}
	return bucket, key, nil
}

func (s *storageService) portalURL(bucket, key string) string {
	return s.publicURL + publicObjectPrefix + bucket + "/" + key
}

func checkObjectPath(bucket, key string) error {
	if !allowedBuckets[bucket] {
		return ErrBucketNotFound
	}
	if key == "" || strings.HasPrefix(key, "/") || strings.Contains(key, "..") {
		return fmt.Errorf("%w: invalid object key %q", ErrValidationFailed, key)
	}
	return nil
}

// splitPublicURL extracts bucket and key from <base>/storage/v1/object/public/<bucket>/<key>.
func splitPublicURL(raw string) (bucket, key string, ok bool) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", false
	}
	_, rest, found := strings.Cut(u.Path, publicObjectPrefix)
	if !found {
		return "", "", false
	}
	bucket, key, found = strings.Cut(rest, "/")
	if !found || bucket == "" || key == "" {
		return "", "", false
	}
	return bucket, key, true
}

// GetExtensionFromContentType maps the accepted image content types to file extensions.
func GetExtensionFromContentType(contentType string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(contentType)) {
	case "image/jpeg", "image/jpg":
		return ".jpg", nil
	case "image/png":
		return ".png", nil
	case "image/gif":
		return ".gif", nil
	case "image/webp":
		return ".webp", nil
	case "image/heic":
		return ".heic", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedMediaType, contentType)
	}
}
