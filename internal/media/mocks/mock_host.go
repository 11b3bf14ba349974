package mocks

import (
	"context"
	"fmt"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/spec-kit/content-service/internal/media"
)

type MockHost struct {
	mock.Mock
}

func (m *MockHost) Upload(ctx context.Context, upload media.Upload, folder string) (media.Asset, error) {
	args := m.Called(ctx, upload, folder)
	return args.Get(0).(media.Asset), args.Error(1)
}

func (m *MockHost) Destroy(ctx context.Context, externalID string) (string, error) {
	args := m.Called(ctx, externalID)
	return args.String(0), args.Error(1)
}

// FakeHost keeps uploaded assets in memory and reports "not found" for
// unknown ids, like a real host.
type FakeHost struct {
	mu        sync.Mutex
	seq       int
	Assets    map[string]media.Upload
	Destroyed []string
}

func NewFakeHost() *FakeHost {
	return &FakeHost{Assets: make(map[string]media.Upload)}
}

func (h *FakeHost) Upload(_ context.Context, upload media.Upload, folder string) (media.Asset, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.seq++
	id := fmt.Sprintf("%s/asset-%d%s", folder, h.seq, upload.Extension)
	h.Assets[id] = upload
	return media.Asset{URL: "https://media.example.com/" + id, ExternalID: id}, nil
}

func (h *FakeHost) Destroy(_ context.Context, externalID string) (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Destroyed = append(h.Destroyed, externalID)
	if _, ok := h.Assets[externalID]; !ok {
		return media.ResultNotFound, nil
	}
	delete(h.Assets, externalID)
	return media.ResultOK, nil
}

func (h *FakeHost) Has(externalID string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ok := h.Assets[externalID]
	return ok
}
