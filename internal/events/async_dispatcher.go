package events

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrDispatcherClosed is returned by Publish after Close.
var ErrDispatcherClosed = errors.New("dispatcher closed")

const (
	defaultQueueSize      = 256
	defaultWorkers        = 2
	defaultHandlerTimeout = 5 * time.Second
)

// AsyncDispatcher hands events to a pool of workers so publishers never wait
// on handlers. Events that do not fit in the queue are dropped.
type AsyncDispatcher struct {
	inner   Dispatcher
	logger  *zap.Logger
	queue   chan Event
	timeout time.Duration

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// AsyncOption customizes an AsyncDispatcher.
type AsyncOption func(*AsyncDispatcher)

// WithHandlerTimeout bounds how long the handlers of one event may run.
func WithHandlerTimeout(timeout time.Duration) AsyncOption {
	return func(d *AsyncDispatcher) {
		if timeout > 0 {
			d.timeout = timeout
		}
	}
}

// NewAsyncDispatcher starts workers that deliver queued events through inner.
func NewAsyncDispatcher(inner Dispatcher, logger *zap.Logger, queueSize, workers int, opts ...AsyncOption) *AsyncDispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	if workers <= 0 {
		workers = defaultWorkers
	}

	d := &AsyncDispatcher{
		inner:   inner,
		logger:  logger,
		queue:   make(chan Event, queueSize),
		timeout: defaultHandlerTimeout,
	}
	for _, opt := range opts {
		opt(d)
	}

	d.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go d.run()
	}
	return d
}

// Publish enqueues the event without blocking. The caller's context is not
// carried over: handlers run on their own deadline after the request ends.
func (d *AsyncDispatcher) Publish(_ context.Context, event Event) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.logger.Warn("dropping event after shutdown",
			zap.String("event_type", string(event.Type)),
			zap.String("event_id", event.ID))
		return ErrDispatcherClosed
	}

	select {
	case d.queue <- event:
		return nil
	default:
		d.logger.Warn("notification queue full; dropping event",
			zap.String("event_type", string(event.Type)),
			zap.String("event_id", event.ID),
			zap.Int("capacity", cap(d.queue)))
		return nil
	}
}

// Subscribe registers handler on the wrapped dispatcher.
func (d *AsyncDispatcher) Subscribe(eventType EventType, handler EventHandler) {
	d.inner.Subscribe(eventType, handler)
}

// Close stops accepting events and waits until queued ones are delivered or
// ctx expires.
func (d *AsyncDispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *AsyncDispatcher) run() {
	defer d.wg.Done()
	for event := range d.queue {
		d.deliver(event)
	}
}

func (d *AsyncDispatcher) deliver(event Event) {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("event handler panicked",
				zap.String("event_type", string(event.Type)),
				zap.Any("panic", r))
		}
	}()

	if err := d.inner.Publish(ctx, event); err != nil {
		d.logger.Warn("event delivery failed",
			zap.String("event_type", string(event.Type)),
			zap.String("event_id", event.ID),
			zap.Error(err))
	}
}
