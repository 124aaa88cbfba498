// Package notify delivers complaint events to external destinations.
// Delivery is best effort: a sink is tried once and its error is only logged.
package notify

import (
	"context"

	"go.uber.org/zap"

	"github.com/hostel-cms/complaint-service/internal/events"
)

// Sink receives complaint events.
type Sink interface {
	Name() string
	Send(ctx context.Context, event events.Event) error
}

// LogSink writes every event to the application log.
type LogSink struct {
	logger *zap.Logger
}

// NewLogSink returns a sink backed by logger.
func NewLogSink(logger *zap.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Name() string { return "log" }

func (s *LogSink) Send(_ context.Context, event events.Event) error {
	s.logger.Info("complaint notification",
		zap.String("event_type", string(event.Type)),
		zap.String("event_id", event.ID),
		zap.String("complaint_id", event.ComplaintID),
		zap.Any("payload", event.Payload))
	return nil
}
