// Package upstream is the HTTP client for the Habitora system-of-record REST
// API. The backend owns persistence and the authoritative availability rules;
// the gateway only submits payloads that already passed local validation and
// interprets the backend's verdict.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Ivoox45/habitora-gateway/pkg/config"
	"github.com/Ivoox45/habitora-gateway/prometheus"
)

// Client talks to the system-of-record API.
type Client struct {
	baseURL      string
	serviceToken string
	httpClient   *http.Client
}

// NewClient creates a client from upstream configuration.
func NewClient(cfg *config.UpstreamConfig) *Client {
	return &Client{
		baseURL:      cfg.BaseURL,
		serviceToken: cfg.ServiceToken,
		httpClient:   &http.Client{Timeout: cfg.Timeout},
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// do performs one round trip: marshal the payload, send it, map the status
// code onto the error taxonomy, decode the response into out.
func (c *Client) do(ctx context.Context, operation, method, path string, payload any, out any) error {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encoding %s payload: %w", operation, err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("building %s request: %w", operation, err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.serviceToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.serviceToken)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		prometheus.TrackUpstreamOperation(operation, "transport_error")(start)
		return fmt.Errorf("calling backend for %s: %w", operation, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		prometheus.TrackUpstreamOperation(operation, "transport_error")(start)
		return fmt.Errorf("reading %s response: %w", operation, err)
	}

	switch {
	case resp.StatusCode == http.StatusConflict || resp.StatusCode == http.StatusUnprocessableEntity:
		prometheus.TrackUpstreamOperation(operation, "conflict")(start)
		prometheus.UpstreamConflictCounter.Inc()
		return &ConflictError{Reason: decodeReason(respBody)}
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		prometheus.TrackUpstreamOperation(operation, "rejected")(start)
		return &RequestError{Status: resp.StatusCode, Reason: decodeReason(respBody)}
	case resp.StatusCode >= 500:
		prometheus.TrackUpstreamOperation(operation, "backend_error")(start)
		return fmt.Errorf("backend error on %s: %d %s", operation, resp.StatusCode, string(respBody))
	}

	prometheus.TrackUpstreamOperation(operation, "ok")(start)

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("decoding %s response: %w", operation, err)
		}
	}
	return nil
}

func decodeReason(body []byte) string {
	var errResp errorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return errResp.Error
	}
	return string(body)
}
