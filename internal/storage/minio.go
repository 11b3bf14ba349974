package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"github.com/spec-kit/content-service/internal/config"
	"github.com/spec-kit/content-service/internal/media"
)

const publicReadPolicy = `{
  "Version": "2012-10-17",
  "Statement": [{
    "Effect": "Allow",
    "Principal": {"AWS": ["*"]},
    "Action": ["s3:GetObject"],
    "Resource": ["arn:aws:s3:::%s/*"]
  }]
}`

// MinioHost stores media on an S3-compatible bucket (MinIO, AWS S3, R2).
type MinioHost struct {
	client  *minio.Client
	bucket  string
	baseURL string
}

var _ media.Host = (*MinioHost)(nil)

// NewMinioHost connects to the endpoint and makes sure the bucket exists and
// is publicly readable.
func NewMinioHost(ctx context.Context, cfg config.MediaConfig, logger *zap.Logger) (*MinioHost, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("media endpoint is required")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, errors.New("media credentials are required")
	}

	endpoint := cfg.Endpoint
	useSSL := cfg.UseSSL
	if strings.HasPrefix(endpoint, "http") {
		u, err := url.Parse(endpoint)
		if err != nil {
			return nil, fmt.Errorf("parse endpoint: %w", err)
		}
		endpoint = u.Host
		useSSL = u.Scheme == "https"
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: useSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("init minio: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", cfg.Bucket, err)
		}
		if err := client.SetBucketPolicy(ctx, cfg.Bucket, fmt.Sprintf(publicReadPolicy, cfg.Bucket)); err != nil {
			logger.Warn("unable to make media bucket public", zap.String("bucket", cfg.Bucket), zap.Error(err))
		}
		logger.Info("created media bucket", zap.String("bucket", cfg.Bucket))
	}

	return &MinioHost{
		client:  client,
		bucket:  cfg.Bucket,
		baseURL: publicBaseURL(cfg, endpoint, useSSL),
	}, nil
}

// Upload stores the image under folder/<uuid><ext>.
func (h *MinioHost) Upload(ctx context.Context, upload media.Upload, folder string) (media.Asset, error) {
	key := path.Join(folder, uuid.NewString()+upload.Extension)
	_, err := h.client.PutObject(ctx, h.bucket, key, bytes.NewReader(upload.Data), int64(len(upload.Data)), minio.PutObjectOptions{
		ContentType:  upload.ContentType,
		CacheControl: "public, max-age=31536000, immutable",
	})
	if err != nil {
		return media.Asset{}, fmt.Errorf("put object %s: %w", key, err)
	}
	return media.Asset{URL: h.baseURL + "/" + key, ExternalID: key}, nil
}

// Destroy deletes an object. S3 deletes are idempotent, so the object is
// looked up first to report "not found" for missing keys.
func (h *MinioHost) Destroy(ctx context.Context, externalID string) (string, error) {
	if _, err := h.client.StatObject(ctx, h.bucket, externalID, minio.StatObjectOptions{}); err != nil {
		if isNotFound(err) {
			return media.ResultNotFound, nil
		}
		return "", fmt.Errorf("stat object %s: %w", externalID, err)
	}
	if err := h.client.RemoveObject(ctx, h.bucket, externalID, minio.RemoveObjectOptions{}); err != nil {
		return "", fmt.Errorf("remove object %s: %w", externalID, err)
	}
	return media.ResultOK, nil
}

// Ping checks that the bucket is reachable.
func (h *MinioHost) Ping(ctx context.Context) error {
	_, err := h.client.BucketExists(ctx, h.bucket)
	return err
}

func isNotFound(err error) bool {
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NotFound":
		return true
	}
	return false
}

func publicBaseURL(cfg config.MediaConfig, endpoint string, useSSL bool) string {
	if cfg.PublicBaseURL != "" {
		return strings.TrimRight(cfg.PublicBaseURL, "/")
	}
	scheme := "http"
	if useSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s", scheme, endpoint, cfg.Bucket)
}
