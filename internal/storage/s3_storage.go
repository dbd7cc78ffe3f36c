package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	appconfig "github.com/ekaraca/mekanbul-backend/config"
	"github.com/ekaraca/mekanbul-backend/pkg/logger"
	"github.com/google/uuid"
)

// MaxUploadSize caps image uploads at 5 MB
const MaxUploadSize = 5 << 20

var allowedContentTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

var (
	ErrInvalidFileType = fmt.Errorf("only jpeg, png and webp images are allowed")
	ErrFileTooLarge    = fmt.Errorf("file exceeds the %d byte limit", MaxUploadSize)
)

// S3Storage uploads images to an S3 bucket under randomized keys
type S3Storage struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

func NewS3Storage(ctx context.Context, cfg *appconfig.S3Config) (*S3Storage, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}

	return &S3Storage{
		client:  s3.NewFromConfig(awsCfg),
		bucket:  cfg.Bucket,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// UploadImage stores the image under a random key inside the given folder
// and returns its public URL.
func (s *S3Storage) UploadImage(ctx context.Context, folder, contentType string, size int64, body io.Reader) (string, error) {
	ext, ok := allowedContentTypes[contentType]
	if !ok {
		return "", ErrInvalidFileType
	}
	if size > MaxUploadSize {
		return "", ErrFileTooLarge
	}

	key := filepath.ToSlash(filepath.Join(folder, uuid.NewString()+ext))

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		logger.Error("Failed to upload image to S3", err, map[string]interface{}{
			"bucket": s.bucket,
			"key":    key,
		})
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	url := fmt.Sprintf("%s/%s", s.baseURL, key)
	logger.Info("Image uploaded", map[string]interface{}{
		"bucket": s.bucket,
		"key":    key,
	})
	return url, nil
}
