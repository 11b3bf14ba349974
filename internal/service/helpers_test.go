package service_test

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/content-service/internal/events"
	"github.com/spec-kit/content-service/internal/media"
	"github.com/spec-kit/content-service/internal/media/mocks"
	"github.com/spec-kit/content-service/internal/repository"
	apperrors "github.com/spec-kit/content-service/pkg/util/errorutil"
)

type fixture struct {
	store    *repository.Store
	host     *mocks.FakeHost
	resolver *media.Resolver
}

func newFixture() *fixture {
	host := mocks.NewFakeHost()
	return &fixture{
		store:    repository.NewMemoryStore(),
		host:     host,
		resolver: media.NewResolver(host, zap.NewNop(), nil),
	}
}

func pngFile(t *testing.T, w, h int) *media.File {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{G: 180, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return &media.File{Filename: "photo.png", ContentType: "image/png", Data: buf.Bytes()}
}

func requireDomainError(t *testing.T, err error, status int, code string) {
	t.Helper()
	require.Error(t, err)
	de := apperrors.ToDomainError(err)
	require.Equal(t, status, de.HTTPStatus, de.Message)
	if code != "" {
		require.Equal(t, code, de.Code)
	}
}

func requireBadRequest(t *testing.T, err error, code string) {
	t.Helper()
	requireDomainError(t, err, http.StatusBadRequest, code)
}

type recordingDispatcher struct {
	mu        sync.Mutex
	published []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.published = append(d.published, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}
