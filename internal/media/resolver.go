package media

import (
	"context"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/content-service/internal/domain"
	"github.com/spec-kit/content-service/internal/observability"
	apperrors "github.com/spec-kit/content-service/pkg/util/errorutil"
)

const cleanupTimeout = 10 * time.Second

// File is an uploaded image as received from the client.
type File struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Input carries the two ways a client can attach an image.
type Input struct {
	URL  string
	File *File
}

// Resolver turns request input into a MediaReference and cleans up assets it
// no longer needs.
type Resolver struct {
	host    Host
	logger  *zap.Logger
	metrics *observability.Metrics
}

// NewResolver builds a resolver on top of a media host.
func NewResolver(host Host, logger *zap.Logger, metrics *observability.Metrics) *Resolver {
	return &Resolver{host: host, logger: logger, metrics: metrics}
}

// Resolve picks the image source for a request. An uploaded file wins over a
// URL. When neither is supplied it returns supplied=false, or a bad request
// error when the constraints require an image.
func (r *Resolver) Resolve(ctx context.Context, in Input, c Constraints) (domain.MediaReference, bool, error) {
	if in.File != nil && len(in.File.Data) > 0 {
		upload, err := prepare(in.File, c)
		if err != nil {
			return domain.MediaReference{}, false, err
		}
		asset, err := r.host.Upload(ctx, upload, c.Folder)
		if err != nil {
			return domain.MediaReference{}, false, apperrors.NewInternalError(err)
		}
		return domain.MediaReference{URL: asset.URL, ExternalID: asset.ExternalID}, true, nil
	}

	if raw := strings.TrimSpace(in.URL); raw != "" {
		if !isHTTPURL(raw) {
			return domain.MediaReference{}, false, apperrors.NewValidationError("imageUrl must be an absolute http(s) URL",
				map[string]any{"field": "imageUrl"})
		}
		return domain.MediaReference{URL: raw}, true, nil
	}

	if c.Required {
		return domain.MediaReference{}, false, apperrors.NewBadRequest("IMAGE_REQUIRED", "an image file or imageUrl is required")
	}
	return domain.MediaReference{}, false, nil
}

// Supersede deletes the old owned asset when the new reference replaces it.
// Failures are logged only.
func (r *Resolver) Supersede(ctx context.Context, old, next domain.MediaReference) {
	if !old.Owned() {
		return
	}
	if next.ExternalID == old.ExternalID && next.URL == old.URL {
		return
	}
	r.Release(ctx, old)
}

// Release deletes an owned asset in the background of the current request.
// The caller's cancellation does not abort the deletion.
func (r *Resolver) Release(ctx context.Context, ref domain.MediaReference) {
	if !ref.Owned() {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cleanupTimeout)
	defer cancel()
	if _, err := r.DeleteExternal(ctx, ref.ExternalID); err != nil {
		r.logger.Warn("failed to delete media asset", zap.String("external_id", ref.ExternalID), zap.Error(err))
	}
}

// DeleteExternal removes an asset from the host. It returns true when the host
// deleted it and false without error when the asset was already gone.
func (r *Resolver) DeleteExternal(ctx context.Context, externalID string) (bool, error) {
	result, err := r.host.Destroy(ctx, externalID)
	if err != nil {
		r.metrics.RecordMediaDeletion("error")
		return false, err
	}
	r.metrics.RecordMediaDeletion(result)
	switch result {
	case ResultOK:
		return true, nil
	case ResultNotFound:
		return false, nil
	default:
		r.logger.Warn("unexpected media deletion result", zap.String("external_id", externalID), zap.String("result", result))
		return false, nil
	}
}

// Keep returns old when next points at the same asset without owning it, so
// re-submitting the current URL does not drop ownership.
func Keep(old, next domain.MediaReference) domain.MediaReference {
	if next.ExternalID == "" && next.URL == old.URL {
		return old
	}
	return next
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
