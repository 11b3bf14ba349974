package mail

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomail "github.com/wneessen/go-mail"
	"go.uber.org/zap"

	"github.com/spec-kit/content-service/internal/config"
	"github.com/spec-kit/content-service/internal/domain"
)

type fakeTransport struct {
	sendErr error
	delay   time.Duration
	sent    atomic.Int32
	closed  atomic.Bool
}

func (f *fakeTransport) DialWithContext(context.Context) error { return nil }

func (f *fakeTransport) Send(msgs ...*gomail.Msg) error {
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent.Add(int32(len(msgs)))
	return nil
}

func (f *fakeTransport) Close() error {
	f.closed.Store(true)
	return nil
}

type factory struct {
	mu      sync.Mutex
	created []*fakeTransport
	make    func() *fakeTransport
}

func (f *factory) newClient() (transport, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := &fakeTransport{}
	if f.make != nil {
		t = f.make()
	}
	f.created = append(f.created, t)
	return t, nil
}

func testConfig() config.MailConfig {
	return config.MailConfig{
		User:           "noreply@example.com",
		FromName:       "RRP s.r.o.",
		MaxConnections: 2,
		MaxMessages:    3,
		Timeout:        time.Second,
	}
}

func testMessage() *Message {
	return &Message{To: "client@example.com", Subject: "hi", Text: "hello"}
}

func TestPool_RecyclesAfterMaxMessages(t *testing.T) {
	f := &factory{}
	p := newPool(testConfig(), f.newClient, zap.NewNop())

	for i := 0; i < 4; i++ {
		require.NoError(t, p.Send(context.Background(), testMessage()))
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	require.GreaterOrEqual(t, len(f.created), 2)
	var total int32
	for _, c := range f.created {
		total += c.sent.Load()
		assert.LessOrEqual(t, c.sent.Load(), int32(3))
	}
	assert.Equal(t, int32(4), total)
}

func TestPool_CapsConnections(t *testing.T) {
	f := &factory{make: func() *fakeTransport { return &fakeTransport{delay: 20 * time.Millisecond} }}
	p := newPool(testConfig(), f.newClient, zap.NewNop())

	var wg sync.WaitGroup
	for i := 0; i < 6; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, p.Send(context.Background(), testMessage()))
		}()
	}
	wg.Wait()

	f.mu.Lock()
	defer f.mu.Unlock()
	open := 0
	for _, c := range f.created {
		if !c.closed.Load() {
			open++
		}
	}
	assert.LessOrEqual(t, open, 2)
}

func TestPool_SendErrorDropsConnection(t *testing.T) {
	f := &factory{make: func() *fakeTransport { return &fakeTransport{sendErr: errors.New("550 rejected")} }}
	cfg := testConfig()
	cfg.MaxConnections = 1
	p := newPool(cfg, f.newClient, zap.NewNop())

	err := p.Send(context.Background(), testMessage())
	assert.ErrorContains(t, err, "550 rejected")

	_ = p.Send(context.Background(), testMessage())
	f.mu.Lock()
	defer f.mu.Unlock()
	assert.Len(t, f.created, 2)
	assert.True(t, f.created[0].closed.Load())
}

func TestPool_Timeout(t *testing.T) {
	f := &factory{make: func() *fakeTransport { return &fakeTransport{delay: 200 * time.Millisecond} }}
	cfg := testConfig()
	cfg.Timeout = 20 * time.Millisecond
	p := newPool(cfg, f.newClient, zap.NewNop())

	err := p.Send(context.Background(), testMessage())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestPool_InvalidRecipient(t *testing.T) {
	p := newPool(testConfig(), (&factory{}).newClient, zap.NewNop())
	err := p.Send(context.Background(), &Message{To: "not an address", Subject: "x", Text: "y"})
	assert.ErrorContains(t, err, "set recipient")
}

func TestMessages(t *testing.T) {
	sub := domain.ContactSubmission{
		Meta:    domain.Meta{CreatedAt: time.Date(2025, 5, 4, 9, 30, 0, 0, time.UTC)},
		Name:    "Jan <b>Novák</b>",
		Email:   "jan@example.cz",
		Phone:   "+420123456789",
		Message: "Dobrý den",
	}

	client := ClientConfirmation(sub, "RRP s.r.o.")
	assert.Equal(t, "jan@example.cz", client.To)
	assert.Contains(t, client.HTML, "Jan &lt;b&gt;Novák&lt;/b&gt;")
	assert.False(t, strings.Contains(client.HTML, "<b>Novák"))

	owner := OwnerNotification(sub, "owner@example.cz", time.UTC)
	assert.Equal(t, "owner@example.cz", owner.To)
	assert.Equal(t, "jan@example.cz", owner.ReplyTo)
	assert.Contains(t, owner.Text, "+420123456789")
	assert.Contains(t, owner.Text, "04.05.2025 09:30:00")
}
