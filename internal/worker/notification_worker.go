package worker

import (
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/content-service/internal/events"
	"github.com/spec-kit/content-service/internal/service"
)

// StartNotificationWorker registers notification handlers.
func StartNotificationWorker(notificationService *service.NotificationService) {
	if notificationService == nil {
		return
	}
	notificationService.RegisterHandlers()
}

// StopNotificationWorker waits up to timeout for in-flight notifications.
func StopNotificationWorker(dispatcher *events.AsyncDispatcher, timeout time.Duration, logger *zap.Logger) {
	if dispatcher == nil {
		return
	}
	if !dispatcher.Drain(timeout) {
		logger.Warn("notification worker stopped with deliveries in flight", zap.Duration("timeout", timeout))
		return
	}
	logger.Info("notification worker drained")
}
