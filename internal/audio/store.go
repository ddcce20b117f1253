package audio

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/medconnect/hospital-booking/pkg/logging"
)

// S3API is the subset of the S3 client used by Store.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Store keeps patient voice recordings in S3 and hands back public URLs.
// With no bucket configured the store is disabled and uploads fail, which
// callers treat as a soft failure.
type Store struct {
	bucket    string
	keyPrefix string
	region    string
	baseURL   string
	s3Client  S3API
	logger    *logging.Logger
}

// Config holds audio store settings.
type Config struct {
	Bucket    string
	KeyPrefix string
	Region    string
	// BaseURL overrides the default virtual-hosted S3 URL, e.g. for a CDN
	// or a LocalStack endpoint.
	BaseURL string
}

// NewStore creates an audio blob store.
func NewStore(s3Client S3API, cfg Config, logger *logging.Logger) *Store {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = "audio-recordings"
	}
	return &Store{
		bucket:    cfg.Bucket,
		keyPrefix: strings.Trim(cfg.KeyPrefix, "/"),
		region:    cfg.Region,
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		s3Client:  s3Client,
		logger:    logger,
	}
}

// Enabled reports whether the store is configured.
func (s *Store) Enabled() bool {
	return s != nil && s.bucket != "" && s.s3Client != nil
}

// Upload stores one recording and returns its public URL. The key is a
// fresh uuid so uploads never collide.
func (s *Store) Upload(ctx context.Context, data []byte, contentType string) (string, error) {
	if !s.Enabled() {
		return "", fmt.Errorf("audio: store not configured")
	}
	if len(data) == 0 {
		return "", fmt.Errorf("audio: empty recording")
	}
	if contentType == "" {
		contentType = "audio/wav"
	}

	key := fmt.Sprintf("%s/%s%s", s.keyPrefix, uuid.NewString(), extensionFor(contentType))
	_, err := s.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("audio: s3 put %s: %w", key, err)
	}

	url := s.publicURL(key)
	s.logger.Info("audio recording stored", "key", key, "bytes", len(data))
	return url, nil
}

func (s *Store) publicURL(key string) string {
	if s.baseURL != "" {
		return fmt.Sprintf("%s/%s", s.baseURL, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}

func extensionFor(contentType string) string {
	switch contentType {
	case "audio/wav", "audio/x-wav", "audio/wave":
		return ".wav"
	case "audio/webm":
		return ".webm"
	case "audio/mpeg", "audio/mp3":
		return ".mp3"
	case "audio/ogg":
		return ".ogg"
	default:
		return ""
	}
}
