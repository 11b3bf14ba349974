package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/content-service/internal/events"
	"github.com/spec-kit/content-service/internal/mail"
	"github.com/spec-kit/content-service/internal/observability"
)

// NotificationConfig addresses contact notifications.
type NotificationConfig struct {
	Company    string
	OwnerEmail string
	Location   *time.Location
}

// NotificationService emails the client and the owner for every contact
// submission.
type NotificationService struct {
	dispatcher events.Dispatcher
	sender     mail.Sender
	metrics    *observability.Metrics
	logger     *zap.Logger
	cfg        NotificationConfig
}

// NewNotificationService creates the service. A nil sender disables email.
func NewNotificationService(dispatcher events.Dispatcher, sender mail.Sender, metrics *observability.Metrics, logger *zap.Logger, cfg NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		sender:     sender,
		metrics:    metrics,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventContactSubmitted, n.handleContactSubmitted)
}

func (n *NotificationService) handleContactSubmitted(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.ContactSubmittedPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T for %s", event.Payload, event.Type)
	}
	if n.sender == nil {
		n.logger.Debug("mail disabled, skipping contact notification", zap.String("submission_id", payload.Submission.ID))
		return nil
	}

	sub := payload.Submission
	outgoing := map[string]*mail.Message{
		"client": mail.ClientConfirmation(sub, n.cfg.Company),
	}
	if n.cfg.OwnerEmail != "" {
		outgoing["owner"] = mail.OwnerNotification(sub, n.cfg.OwnerEmail, n.cfg.Location)
	}

	var wg sync.WaitGroup
	for kind, msg := range outgoing {
		wg.Add(1)
		go func(kind string, msg *mail.Message) {
			defer wg.Done()
			err := n.sender.Send(ctx, msg)
			n.metrics.RecordEmail(kind, err)
			if err != nil {
				n.logger.Error("contact email failed",
					zap.String("kind", kind),
					zap.String("submission_id", sub.ID),
					zap.Error(err))
				return
			}
			n.logger.Info("contact email sent", zap.String("kind", kind), zap.String("submission_id", sub.ID))
		}(kind, msg)
	}
	wg.Wait()
	return nil
}
