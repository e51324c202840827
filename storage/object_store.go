package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

// ObjectStoreConfig describes an S3-compatible bucket. Either AccountID (Cloudflare R2)
// or Endpoint (any S3 API such as MinIO) must be set.
type ObjectStoreConfig struct {
	AccountID       string
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	PublicBaseURL   string
}

type objectStoreUploader struct {
	s3Client      *s3.Client
	bucketName    string
	publicBaseURL *url.URL
}

func NewObjectStoreUploader(ctx context.Context, cfg ObjectStoreConfig) (FileUploader, error) {
	if cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" || cfg.BucketName == "" {
		return nil, errors.New("invalid object storage configuration: access key, secret key and bucket are required")
	}

	endpoint := strings.TrimRight(cfg.Endpoint, "/")
	pathStyle := true
	if endpoint == "" {
		if cfg.AccountID == "" {
			return nil, errors.New("invalid object storage configuration: account id or endpoint is required")
		}
		endpoint = fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.AccountID)
		pathStyle = false
	}
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}

	publicBase := cfg.PublicBaseURL
	if publicBase == "" {
		publicBase = endpoint + "/" + cfg.BucketName
	}
	baseURL, err := url.Parse(strings.TrimRight(publicBase, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("invalid public base URL %q: %w", publicBase, err)
	}

	region := cfg.Region
	if region == "" {
		region = "auto"
	}

	sdkCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")),
		config.WithHTTPClient(&http.Client{Timeout: 60 * time.Second}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS SDK config for object storage: %w", err)
	}

	client := s3.NewFromConfig(sdkCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = pathStyle
	})

	return &objectStoreUploader{
		s3Client:      client,
		bucketName:    cfg.BucketName,
		publicBaseURL: baseURL,
	}, nil
}

func (u *objectStoreUploader) Upload(ctx context.Context, key string, contentType string, size int64, reader io.Reader) (*UploadResult, error) {
	input := &s3.PutObjectInput{
		Bucket:        aws.String(u.bucketName),
		Key:           aws.String(key),
		Body:          reader,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
		IfNoneMatch:   aws.String("*"),
	}

	result, err := u.s3Client.PutObject(ctx, input)
	if err != nil {
		if isPreconditionFailure(err) {
			return nil, fmt.Errorf("%w (key: %s)", ErrObjectExists, key)
		}
		return nil, fmt.Errorf("failed to upload object (key: %s): %w", key, err)
	}

	etag := ""
	if result.ETag != nil {
		etag = strings.Trim(*result.ETag, "\"")
	}

	return &UploadResult{
		Key:      key,
		Location: u.GetPublicURL(key),
		ETag:     etag,
	}, nil
}

// isPreconditionFailure reports a rejected If-None-Match, including the 409 some
// stores return while a concurrent write to the same key is in flight.
func isPreconditionFailure(err error) bool {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	switch apiErr.ErrorCode() {
	case "PreconditionFailed", "ConditionalRequestConflict":
		return true
	}
	return false
}

func (u *objectStoreUploader) Delete(ctx context.Context, key string) error {
	_, err := u.s3Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(u.bucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object (key: %s): %w", key, err)
	}
	return nil
}

func (u *objectStoreUploader) GetPublicURL(key string) string {
	return resolvePublicURL(u.publicBaseURL, key)
}

func resolvePublicURL(base *url.URL, key string) string {
	key = strings.TrimPrefix(key, "/")
	if base == nil || key == "" {
		return ""
	}
	return base.ResolveReference(&url.URL{Path: key}).String()
}
