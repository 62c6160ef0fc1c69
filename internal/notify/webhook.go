package notify

import (
	"context"
	"time"

	"FreightIQ/internal/domain/models"
	xhttp "FreightIQ/pkg/http"
	applogger "FreightIQ/pkg/logger"
)

// WebhookNotifier POSTs each logged event to a configured endpoint.
// Delivery is best-effort and fire-and-forget from the caller's view.
type WebhookNotifier struct {
	client  *xhttp.Client
	url     string
	headers map[string]string
	logger  *applogger.Logger
}

type Option func(*WebhookNotifier)

// WithHeaders sets extra request headers (e.g. an auth token).
func WithHeaders(headers map[string]string) Option {
	return func(n *WebhookNotifier) { n.headers = headers }
}

// WithTimeout bounds each delivery attempt.
func WithTimeout(d time.Duration) Option {
	return func(n *WebhookNotifier) { n.client = xhttp.NewClient(xhttp.WithTimeout(d)) }
}

func NewWebhookNotifier(url string, logger *applogger.Logger, opts ...Option) *WebhookNotifier {
	n := &WebhookNotifier{
		client: xhttp.NewClient(xhttp.WithTimeout(5 * time.Second)),
		url:    url,
		logger: logger,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

type webhookPayload struct {
	Event     models.TrainingEvent `json:"event"`
	Source    string               `json:"source"`
	Timestamp time.Time            `json:"timestamp"`
}

func (n *WebhookNotifier) NotifyEvent(ctx context.Context, ev models.TrainingEvent) error {
	payload := webhookPayload{
		Event:     ev,
		Source:    "freight-rate-api",
		Timestamp: time.Now().UTC(),
	}
	if err := n.client.PostJSON(ctx, n.url, payload, n.headers); err != nil {
		return err
	}
	if n.logger != nil {
		n.logger.Debug("webhook delivered",
			applogger.String("event_id", ev.ID),
			applogger.String("type", string(ev.Type)),
		)
	}
	return nil
}
