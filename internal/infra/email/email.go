// Package email delivers notification emails through an HTTP mail relay and
// renders their content.
package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/KasumiMercury/primind-treatment-schedule/internal/observability/logging"
	"github.com/KasumiMercury/primind-treatment-schedule/internal/observability/tracing"
)

type Message struct {
	To      string
	Subject string
	HTML    string
}

// SendResult is the relay's verdict on one message. A failed delivery is a
// result with Success false, not an error.
type SendResult struct {
	Success bool
	ID      string
	Error   string
}

type Config struct {
	APIURL string
	APIKey string
	From   string
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

type sendResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

type Client struct {
	apiURL     string
	apiKey     string
	from       string
	httpClient *http.Client
}

func NewClient(cfg Config) *Client {
	return &Client{
		apiURL:     strings.TrimRight(cfg.APIURL, "/"),
		apiKey:     cfg.APIKey,
		from:       cfg.From,
		httpClient: newHTTPClient(cfg.APIURL),
	}
}

func (c *Client) Configured() bool {
	return c != nil && c.apiURL != "" && c.apiKey != ""
}

// Send returns (nil, nil) when the client is not configured.
func (c *Client) Send(ctx context.Context, msg Message) (*SendResult, error) {
	if !c.Configured() {
		return nil, nil
	}

	url := c.apiURL + "/emails"
	ctx, span := tracing.StartExternalAPISpan(ctx, "send_email", url)
	defer span.End()

	body, err := json.Marshal(sendRequest{
		From:    c.from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		HTML:    msg.HTML,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal email request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", c.apiKey)
	requestID := logging.ValidateAndExtractRequestID(logging.RequestIDFromContext(ctx))
	req.Header.Set("x-request-id", requestID)
	tracing.InjectToHTTPRequest(ctx, req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.ErrorContext(ctx, "failed to send request to mail relay",
			slog.String("url", url),
			slog.String("error", err.Error()),
		)
		tracing.RecordError(span, err)
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var decoded sendResponse
	if len(respBody) > 0 {
		if err := json.Unmarshal(respBody, &decoded); err != nil {
			slog.DebugContext(ctx, "failed to decode mail relay response",
				slog.Int("status_code", resp.StatusCode),
				slog.String("error", err.Error()),
			)
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		slog.WarnContext(ctx, "mail relay rejected email",
			slog.Int("status_code", resp.StatusCode),
		)
		reason := decoded.Message
		if reason == "" {
			reason = fmt.Sprintf("unexpected status code: %d", resp.StatusCode)
		}
		tracing.RecordError(span, fmt.Errorf("%s", reason))
		return &SendResult{Success: false, Error: reason}, nil
	}

	slog.DebugContext(ctx, "email accepted by mail relay",
		slog.String("provider_id", decoded.ID),
	)
	tracing.RecordError(span, nil)

	return &SendResult{Success: true, ID: decoded.ID}, nil
}
