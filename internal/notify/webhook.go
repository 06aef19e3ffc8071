// Package notify pushes completed inspections to an external endpoint.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/autocheck-dev/autocheck/internal/inspection"
)

// Webhook POSTs each completed inspection as JSON. A failed delivery
// is reported to the caller but never retried here.
type Webhook struct {
	url    string
	client *http.Client
}

func NewWebhook(url string, timeout time.Duration) *Webhook {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Webhook{url: url, client: &http.Client{Timeout: timeout}}
}

func (w *Webhook) Enabled() bool { return w != nil && w.url != "" }

func (w *Webhook) InspectionCompleted(ctx context.Context, rec inspection.Record) error {
	if !w.Enabled() {
		return nil
	}
	buf, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(buf))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook: status %d", resp.StatusCode)
	}
	return nil
}
