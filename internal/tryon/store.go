package tryon

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/tayloredroots/salon-api/pkg/logging"
)

// S3Client is the subset of the S3 API the store needs (allows mocking in
// tests).
type S3Client interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// PreviewStore persists generated previews and returns a shareable URL.
type PreviewStore interface {
	Put(ctx context.Context, img Image) (string, error)
}

// S3PreviewStore uploads previews to S3 so booking requests can link to them.
type S3PreviewStore struct {
	s3      S3Client
	bucket  string
	baseURL string
	logger  *logging.Logger
}

// NewS3PreviewStore creates a preview store, or nil when no bucket is
// configured. baseURL defaults to the bucket's virtual-hosted URL.
func NewS3PreviewStore(client S3Client, bucket, baseURL string, logger *logging.Logger) *S3PreviewStore {
	if client == nil || bucket == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.amazonaws.com", bucket)
	}
	return &S3PreviewStore{
		s3:      client,
		bucket:  bucket,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}
}

// Put uploads a preview image and returns its public URL.
func (s *S3PreviewStore) Put(ctx context.Context, img Image) (string, error) {
	now := time.Now().UTC()
	key := fmt.Sprintf("previews/%d/%02d/%s%s",
		now.Year(), now.Month(), uuid.NewString(), extensionFor(img.MIMEType))

	_, err := s.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(img.Data),
		ContentType: aws.String(img.MIMEType),
	})
	if err != nil {
		return "", fmt.Errorf("tryon: upload preview: %w", err)
	}

	url := s.baseURL + "/" + key
	s.logger.Info("preview stored", "key", key, "bytes", len(img.Data))
	return url, nil
}

func extensionFor(mimeType string) string {
	switch mimeType {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}
