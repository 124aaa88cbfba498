package worker

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hostel-cms/complaint-service/internal/events"
	"github.com/hostel-cms/complaint-service/internal/service"
)

type captureSink struct {
	mu     sync.Mutex
	events []events.Event
}

func (s *captureSink) Name() string { return "capture" }

func (s *captureSink) Send(_ context.Context, event events.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func TestNotificationWorker_DeliversAndDrains(t *testing.T) {
	dispatcher := events.NewAsyncDispatcher(events.NewInMemoryDispatcher(nil), zap.NewNop(), 8, 1)
	sink := &captureSink{}
	w := StartNotificationWorker(dispatcher, service.NewNotificationService(dispatcher, zap.NewNop(), sink), zap.NewNop())

	require.NoError(t, dispatcher.Publish(context.Background(), events.Event{ID: "1", Type: events.EventComplaintCreated}))
	require.NoError(t, dispatcher.Publish(context.Background(), events.Event{ID: "2", Type: events.EventComplaintStatusChanged}))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, w.Stop(ctx))

	sink.mu.Lock()
	defer sink.mu.Unlock()
	assert.Len(t, sink.events, 2)
}

func TestNotificationWorker_NilSafe(t *testing.T) {
	var w *NotificationWorker
	assert.NoError(t, w.Stop(context.Background()))
}
