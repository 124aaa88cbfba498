package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/hostel-cms/complaint-service/internal/events"
	"github.com/hostel-cms/complaint-service/internal/service"
)

// NotificationWorker owns the background delivery of complaint events.
type NotificationWorker struct {
	dispatcher *events.AsyncDispatcher
	logger     *zap.Logger
}

// StartNotificationWorker registers notification handlers on the dispatcher
// whose workers deliver them.
func StartNotificationWorker(dispatcher *events.AsyncDispatcher, notificationService *service.NotificationService, logger *zap.Logger) *NotificationWorker {
	if logger == nil {
		logger = zap.NewNop()
	}
	if notificationService != nil {
		notificationService.RegisterHandlers()
		logger.Info("notification worker started", zap.Strings("sinks", notificationService.Sinks()))
	}
	return &NotificationWorker{dispatcher: dispatcher, logger: logger}
}

// Stop drains queued notifications until ctx expires.
func (w *NotificationWorker) Stop(ctx context.Context) error {
	if w == nil || w.dispatcher == nil {
		return nil
	}
	if err := w.dispatcher.Close(ctx); err != nil {
		w.logger.Warn("notification queue not drained", zap.Error(err))
		return err
	}
	w.logger.Info("notification worker stopped")
	return nil
}
