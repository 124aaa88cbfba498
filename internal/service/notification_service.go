package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/hostel-cms/complaint-service/internal/events"
	"github.com/hostel-cms/complaint-service/internal/notify"
	apperrors "github.com/hostel-cms/complaint-service/pkg/util/errorutil"
)

// NotificationService fans complaint events out to the configured sinks.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	sinks      []notify.Sink
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, sinks ...notify.Sink) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		sinks:      sinks,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventComplaintCreated, n.deliver)
	n.dispatcher.Subscribe(events.EventComplaintStatusChanged, n.deliver)
}

// Sinks lists the names of the active sinks.
func (n *NotificationService) Sinks() []string {
	names := make([]string, 0, len(n.sinks))
	for _, sink := range n.sinks {
		names = append(names, sink.Name())
	}
	return names
}

// deliver tries every sink once. Failures are logged and never returned so a
// broken sink cannot affect the others or the publisher.
func (n *NotificationService) deliver(ctx context.Context, event events.Event) error {
	for _, sink := range n.sinks {
		if err := sink.Send(ctx, event); err != nil {
			sinkErr := apperrors.NewNotificationSinkError(sink.Name(), err)
			n.logger.Warn("notification delivery failed",
				zap.String("code", apperrors.CodeNotificationSink),
				zap.String("sink", sink.Name()),
				zap.String("event_type", string(event.Type)),
				zap.String("complaint_id", event.ComplaintID),
				zap.Error(sinkErr))
		}
	}
	return nil
}
