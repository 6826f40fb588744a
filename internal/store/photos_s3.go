package store

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/fast-home/internal/config"
	"github.com/MKhiriev/fast-home/internal/logger"
	"github.com/MKhiriev/fast-home/models"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// s3API is the subset of *s3.Client used by [s3PhotoStorage].
type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

type s3PhotoStorage struct {
	client    s3API
	bucket    string
	publicURL string
	logger    *logger.Logger
}

// NewS3PhotoStorage builds a [PhotoStorage] writing to an S3-compatible
// bucket. Static credentials are used when both keys are configured,
// otherwise the default AWS credential chain applies.
func NewS3PhotoStorage(ctx context.Context, cfg config.Photos, log *logger.Logger) (PhotoStorage, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.S3Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.S3Region))
	}
	if cfg.S3AccessKey != "" && cfg.S3SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		log.Err(err).Str("func", "NewS3PhotoStorage").Msg("error loading aws config")
		return nil, fmt.Errorf("error loading aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		}
	})

	return newS3PhotoStorage(client, cfg.S3Bucket, cfg.PublicURL, log), nil
}

func newS3PhotoStorage(client s3API, bucket, publicURL string, log *logger.Logger) *s3PhotoStorage {
	return &s3PhotoStorage{
		client:    client,
		bucket:    bucket,
		publicURL: strings.TrimSuffix(publicURL, "/"),
		logger:    log,
	}
}

// Save uploads the photo under key and returns its public URL.
func (s *s3PhotoStorage) Save(ctx context.Context, key string, upload models.PhotoUpload) (string, error) {
	log := logger.FromContext(ctx)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(upload.Content),
		ContentLength: aws.Int64(int64(len(upload.Content))),
		ContentType:   aws.String(upload.ContentType),
	})
	if err != nil {
		log.Err(err).Str("func", "*s3PhotoStorage.Save").Str("key", key).Msg("error uploading photo")
		return "", fmt.Errorf("%w: %w", ErrPhotoNotStored, err)
	}

	return s.publicURL + "/" + key, nil
}

// Delete removes the object stored under key.
func (s *s3PhotoStorage) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*s3PhotoStorage.Delete").Str("key", key).Msg("error deleting photo")
		return fmt.Errorf("error deleting photo %s: %w", key, err)
	}
	return nil
}
