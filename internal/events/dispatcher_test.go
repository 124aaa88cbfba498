package events

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/hostel-cms/complaint-service/internal/domain"
)

func TestInMemoryDispatcher_ContinuesAfterHandlerError(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	d := NewInMemoryDispatcher(zap.New(core))

	var calls int32
	d.Subscribe(EventComplaintCreated, func(context.Context, Event) error {
		atomic.AddInt32(&calls, 1)
		return errors.New("sink down")
	})
	d.Subscribe(EventComplaintCreated, func(context.Context, Event) error {
		atomic.AddInt32(&calls, 1)
		return nil
	})
	d.Subscribe(EventComplaintStatusChanged, func(context.Context, Event) error {
		t.Fatal("unexpected handler")
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{ID: "e1", Type: EventComplaintCreated}))
	assert.Equal(t, int32(2), calls)
	assert.Equal(t, 1, logs.FilterMessage("event handler failed").Len())
}

func TestAsyncDispatcher_DeliversAndDrainsOnClose(t *testing.T) {
	inner := NewInMemoryDispatcher(nil)
	d := NewAsyncDispatcher(inner, zap.NewNop(), 16, 2)

	var mu sync.Mutex
	var seen []string
	d.Subscribe(EventComplaintCreated, func(_ context.Context, e Event) error {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, e.ID)
		return nil
	})

	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, d.Publish(context.Background(), Event{ID: id, Type: EventComplaintCreated}))
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, d.Close(ctx))

	mu.Lock()
	defer mu.Unlock()
	assert.ElementsMatch(t, []string{"a", "b", "c"}, seen)

	assert.ErrorIs(t, d.Publish(context.Background(), Event{ID: "late", Type: EventComplaintCreated}), ErrDispatcherClosed)
}

func TestAsyncDispatcher_DropsWhenQueueFull(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	d := NewAsyncDispatcher(NewInMemoryDispatcher(nil), zap.New(core), 1, 1)

	release := make(chan struct{})
	started := make(chan struct{}, 1)
	d.Subscribe(EventComplaintCreated, func(context.Context, Event) error {
		select {
		case started <- struct{}{}:
		default:
		}
		<-release
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{ID: "1", Type: EventComplaintCreated}))
	<-started
	require.NoError(t, d.Publish(context.Background(), Event{ID: "2", Type: EventComplaintCreated}))

	start := time.Now()
	require.NoError(t, d.Publish(context.Background(), Event{ID: "3", Type: EventComplaintCreated}))
	assert.Less(t, time.Since(start), 100*time.Millisecond)
	assert.Equal(t, 1, logs.FilterMessage("notification queue full; dropping event").Len())

	close(release)
	require.NoError(t, d.Close(context.Background()))
}

func TestAsyncDispatcher_HandlersGetDetachedDeadline(t *testing.T) {
	d := NewAsyncDispatcher(NewInMemoryDispatcher(nil), zap.NewNop(), 4, 1, WithHandlerTimeout(50*time.Millisecond))

	errs := make(chan error, 1)
	d.Subscribe(EventComplaintCreated, func(ctx context.Context, _ Event) error {
		_, hasDeadline := ctx.Deadline()
		if !hasDeadline {
			errs <- errors.New("no deadline")
			return nil
		}
		errs <- ctx.Err()
		return nil
	})

	reqCtx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, d.Publish(reqCtx, Event{ID: "1", Type: EventComplaintCreated}))

	select {
	case err := <-errs:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("handler not invoked")
	}
	require.NoError(t, d.Close(context.Background()))
}

func TestNewComplaintNotification(t *testing.T) {
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	n := NewComplaintNotification(&domain.Complaint{
		Title:       "Fan broken",
		Description: "Ceiling fan stopped",
		StudentName: "Asha",
		RoomNumber:  "A-204",
		Hostel:      "Block A",
		RollNumber:  "R-1",
		Status:      domain.ComplaintStatusPending,
		CreatedAt:   created,
	})

	assert.Equal(t, ComplaintNotification{
		Title:       "Fan broken",
		Description: "Ceiling fan stopped",
		StudentName: "Asha",
		RoomNumber:  "A-204",
		Hostel:      "Block A",
		RollNumber:  "R-1",
		Status:      "pending",
		CreatedAt:   created,
	}, n)
}
