// Package webhook implements the outbound HTTP client that delivers event
// payloads to subscriber endpoints.
package webhook

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const userAgent = "TumaFast-Webhooks/1.0"

// Client delivers event payloads over HTTP. One Send call is one attempt;
// scheduling retries belongs to the relay job.
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a webhook client with the given per-attempt timeout.
func NewClient(timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Send POSTs the JSON payload to url. Any status outside 2xx counts as a
// failed attempt. The response body is drained so connections can be reused.
func (c *Client) Send(ctx context.Context, url string, payload []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		c.logger.WarnContext(ctx, "webhook endpoint rejected delivery",
			"url", url,
			"status", resp.StatusCode,
		)
		return fmt.Errorf("webhook delivery failed: endpoint returned %d", resp.StatusCode)
	}

	return nil
}
