//go:build gcloud

package email

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"google.golang.org/api/idtoken"
)

// newHTTPClient creates an HTTP client that authenticates to the mail relay
// with a GCP ID token.
func newHTTPClient(audience string) *http.Client {
	if audience == "" {
		return &http.Client{Timeout: 30 * time.Second}
	}

	httpClient, err := idtoken.NewClient(context.Background(), audience)
	if err != nil {
		slog.Error("failed to create idtoken client, falling back to unauthenticated client",
			slog.String("error", err.Error()),
		)
		return &http.Client{
			Timeout: 30 * time.Second,
		}
	}
	httpClient.Timeout = 30 * time.Second
	return httpClient
}
