package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/hostel-cms/complaint-service/internal/events"
)

const defaultWebhookTimeout = 5 * time.Second

// WebhookSink POSTs the notification payload as JSON to a fixed URL. The
// event type and ids travel in headers.
type WebhookSink struct {
	url string
}

// NewWebhookSink returns a sink posting to url.
func NewWebhookSink(url string) *WebhookSink {
	return &WebhookSink{url: url}
}

func (s *WebhookSink) Name() string { return "webhook" }

// Send posts the event payload. The request timeout follows the ctx deadline; any
// non-2xx answer counts as a failure.
func (s *WebhookSink) Send(ctx context.Context, event events.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	timeout := defaultWebhookTimeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return context.DeadlineExceeded
		}
	}

	agent := fiber.Post(s.url)
	agent.Set("X-Event-Type", string(event.Type))
	agent.Set("X-Event-ID", event.ID)
	agent.Set("X-Complaint-ID", event.ComplaintID)
	agent.JSON(event.Payload)
	agent.Timeout(timeout)

	status, _, errs := agent.Bytes()
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	if status < fiber.StatusOK || status >= fiber.StatusMultipleChoices {
		return fmt.Errorf("webhook responded with status %d", status)
	}
	return nil
}
