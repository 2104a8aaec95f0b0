// Package callback reports detection outcomes back to the API over HTTP.
// The worker deliberately goes through the public endpoints instead of the
// repositories so outcomes follow the same path as any other client write.
package callback

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

// Client posts history and notification records to the API's own endpoints.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// HistoryRequest is the body for POST /api/history/.
type HistoryRequest struct {
	UserID     string `json:"user_id"`
	ResultPath string `json:"result_path"`
	Status     bool   `json:"status"`
}

// NotificationRequest is the body for POST /api/notification/.
type NotificationRequest struct {
	UserID        string `json:"user_id"`
	DetectionPath string `json:"detection_path"`
}

// NewClient builds a callback client targeting the API at host:port.
func NewClient(host string, port int, logger *slog.Logger) *Client {
	return &Client{
		baseURL: fmt.Sprintf("http://%s:%d", host, port),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// ReportHistory records a completed detection outcome.
func (c *Client) ReportHistory(ctx context.Context, req *HistoryRequest) error {
	return c.post(ctx, "/api/history/", req)
}

// ReportNotification records a notification, which triggers the push flow.
func (c *Client) ReportNotification(ctx context.Context, req *NotificationRequest) error {
	return c.post(ctx, "/api/notification/", req)
}

func (c *Client) post(ctx context.Context, path string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return errors.WithStack(err)
	}

	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "callback %s", path)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Error("callback rejected",
			slog.String("path", path),
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(payload)),
		)

		return errors.Errorf("callback %s returned %d", path, resp.StatusCode)
	}

	return nil
}
