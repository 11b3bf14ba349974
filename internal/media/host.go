package media

import (
	"context"
	"errors"
)

// Results reported by Host.Destroy.
const (
	ResultOK       = "ok"
	ResultNotFound = "not found"
)

// Upload is an image ready to be stored on the media host.
type Upload struct {
	Data        []byte
	ContentType string
	Extension   string
}

// Asset identifies a stored image.
type Asset struct {
	URL        string
	ExternalID string
}

// Host stores images and serves them from a public URL.
type Host interface {
	Upload(ctx context.Context, upload Upload, folder string) (Asset, error)
	// Destroy removes an asset and reports ResultOK, ResultNotFound or a
	// host-specific result.
	Destroy(ctx context.Context, externalID string) (string, error)
}

// ErrHostUnavailable is returned by UnavailableHost.
var ErrHostUnavailable = errors.New("media host not configured")

// UnavailableHost rejects uploads. It stands in when no media endpoint is
// configured, so URL-only images keep working.
type UnavailableHost struct{}

func (UnavailableHost) Upload(context.Context, Upload, string) (Asset, error) {
	return Asset{}, ErrHostUnavailable
}

func (UnavailableHost) Destroy(context.Context, string) (string, error) {
	return "", ErrHostUnavailable
}
