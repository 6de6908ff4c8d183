// Package notification delivers posting activity notifications to the
// downstream notification service over HTTP. Delivery is best effort by
// contract; callers log and continue on failure.
package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/praxio/fundledger/internal/core/domain"
	portssvc "github.com/praxio/fundledger/internal/core/ports/services"
)

const defaultTimeout = 5 * time.Second

type httpNotifier struct {
	endpoint string
	client   *http.Client
}

// NewHTTPNotifier creates a notifier POSTing to the given endpoint.
// Returns nil when no endpoint is configured so callers can skip
// notification wiring entirely.
func NewHTTPNotifier(endpoint string) portssvc.NotifierSvc {
	if endpoint == "" {
		return nil
	}
	return &httpNotifier{
		endpoint: endpoint,
		client:   &http.Client{Timeout: defaultTimeout},
	}
}

// Ensure httpNotifier implements the portssvc.NotifierSvc interface
var _ portssvc.NotifierSvc = (*httpNotifier)(nil)

func (n *httpNotifier) NotifyPostingActivity(ctx context.Context, notification domain.PostingNotification) error {
	payload, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("failed to marshal posting notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to deliver posting notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("notification service responded %d", resp.StatusCode)
	}
	return nil
}
