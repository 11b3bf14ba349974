package storage

import (
	"errors"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/content-service/internal/config"
)

func TestPublicBaseURL(t *testing.T) {
	cfg := config.MediaConfig{Bucket: "content-media"}
	assert.Equal(t, "http://localhost:9000/content-media", publicBaseURL(cfg, "localhost:9000", false))
	assert.Equal(t, "https://s3.example.com/content-media", publicBaseURL(cfg, "s3.example.com", true))

	cfg.PublicBaseURL = "https://cdn.example.com/media/"
	assert.Equal(t, "https://cdn.example.com/media", publicBaseURL(cfg, "localhost:9000", false))
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, isNotFound(minio.ErrorResponse{Code: "NoSuchKey"}))
	assert.False(t, isNotFound(minio.ErrorResponse{Code: "AccessDenied"}))
	assert.False(t, isNotFound(errors.New("dial tcp: connection refused")))
}
