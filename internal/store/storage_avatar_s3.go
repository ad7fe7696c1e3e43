package store

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/MKhiriev/finance-flow/internal/config"
	"github.com/MKhiriev/finance-flow/internal/logger"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const avatarKeyPrefix = "avatars"

// S3ObjectAPI is the part of *s3.Client the avatar storage needs.
type S3ObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// s3AvatarStorage uploads avatars into an S3 compatible bucket (AWS, MinIO).
type s3AvatarStorage struct {
	client    S3ObjectAPI
	bucket    string
	publicURL string
	logger    *logger.Logger
}

// NewS3AvatarStorage builds an S3 client from cfg. Static credentials are
// used when both keys are set, otherwise the default AWS credential chain.
func NewS3AvatarStorage(ctx context.Context, cfg config.S3, logger *logger.Logger) (AvatarStorage, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("error loading aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	logger.Debug().Str("bucket", cfg.Bucket).Msg("creating s3 avatar storage")
	return newS3AvatarStorage(client, cfg.Bucket, cfg.PublicURL, logger), nil
}

func newS3AvatarStorage(client S3ObjectAPI, bucket, publicURL string, logger *logger.Logger) *s3AvatarStorage {
	return &s3AvatarStorage{
		client:    client,
		bucket:    bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
		logger:    logger,
	}
}

// Save uploads r as avatars/<name> and returns its public URL.
func (s *s3AvatarStorage) Save(ctx context.Context, name string, contentType string, r io.Reader) (string, error) {
	name = path.Base(name)
	if name == "." || name == "/" {
		return "", ErrInvalidFile
	}
	key := path.Join(avatarKeyPrefix, name)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        r,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*s3AvatarStorage.Save").Str("key", key).Msg("error uploading avatar")
		return "", fmt.Errorf("error uploading avatar: %w", err)
	}

	return s.publicURL + "/" + key, nil
}

// Delete removes an object previously returned by Save. URLs outside the
// bucket's public URL are ignored.
func (s *s3AvatarStorage) Delete(ctx context.Context, publicPath string) error {
	key, ok := strings.CutPrefix(publicPath, s.publicURL+"/")
	if !ok || !strings.HasPrefix(key, avatarKeyPrefix+"/") {
		return nil
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*s3AvatarStorage.Delete").Str("key", key).Msg("error deleting avatar")
		return fmt.Errorf("error deleting avatar: %w", err)
	}

	return nil
}
