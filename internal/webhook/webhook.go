// Package webhook sends best-effort access-request notifications to the
// external automation endpoint.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// notifyPayload is the wire shape the automation flow expects.
type notifyPayload struct {
	Email      string `json:"email"`
	TemplateID string `json:"templateId"`
}

// Client posts access-request notifications to a fixed webhook URL.
type Client struct {
	url        string
	httpClient *http.Client
}

// NewClient creates a webhook client for the given URL. The timeout bounds
// the whole request; the caller is expected to treat failures as
// non-fatal.
func NewClient(url string) *Client {
	return &Client{
		url: url,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Notify posts {email, templateId} to the webhook. The response body is
// discarded; a non-2xx status is reported as an error so the caller can log
// it, but nothing is retried.
func (c *Client) Notify(ctx context.Context, email, templateID string) error {
	body, err := json.Marshal(notifyPayload{Email: email, TemplateID: templateID})
	if err != nil {
		return fmt.Errorf("encoding webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("calling webhook: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}
