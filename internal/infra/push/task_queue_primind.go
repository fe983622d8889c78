//go:build !gcloud

package push

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// PrimindTasksClient enqueues push deliveries on a Primind Tasks server.
type PrimindTasksClient struct {
	url        string
	httpClient *http.Client
	maxRetries int
}

func NewPrimindTasksClient(baseURL, queueName string, maxRetries int) *PrimindTasksClient {
	url := baseURL + "/tasks"
	if queueName != "" && queueName != "default" {
		url += "/" + queueName
	}
	return &PrimindTasksClient{
		url:        url,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		maxRetries: maxRetries,
	}
}

func (c *PrimindTasksClient) RegisterNotification(ctx context.Context, task *NotificationTask) (*TaskResponse, error) {
	body, err := encodePrimindTask(task)
	if err != nil {
		return nil, err
	}
	return registerWithRetry(ctx, task, c.maxRetries, func(ctx context.Context) (*TaskResponse, error) {
		return c.post(ctx, body, task)
	})
}

// encodePrimindTask wraps the push payload as a base64 HTTP body, the shape
// Primind Tasks forwards to the push worker.
func encodePrimindTask(task *NotificationTask) ([]byte, error) {
	payload, err := json.Marshal(task)
	if err != nil {
		return nil, fmt.Errorf("marshal push payload: %w", err)
	}
	body, err := json.Marshal(PrimindTaskRequest{
		Task: PrimindTask{
			Name: task.Name,
			HTTPRequest: PrimindHTTPRequest{
				Body:    base64.StdEncoding.EncodeToString(payload),
				Headers: map[string]string{"Content-Type": "application/json"},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal primind task: %w", err)
	}
	return body, nil
}

func (c *PrimindTasksClient) post(ctx context.Context, body []byte, task *NotificationTask) (*TaskResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.WarnContext(ctx, "push task request failed",
			slog.String("user_id", task.UserID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusConflict:
		slog.DebugContext(ctx, "push task already queued",
			slog.String("user_id", task.UserID),
			slog.String("task_name", task.Name),
		)
		return &TaskResponse{Name: task.Name, Duplicate: true}, nil
	case http.StatusOK, http.StatusCreated:
	default:
		slog.WarnContext(ctx, "push task rejected",
			slog.String("user_id", task.UserID),
			slog.Int("status_code", resp.StatusCode),
		)
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var created PrimindTaskResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	createTime, _ := time.Parse(time.RFC3339, created.CreateTime)

	slog.InfoContext(ctx, "push task queued",
		slog.String("user_id", task.UserID),
		slog.String("task_name", created.Name),
	)
	return &TaskResponse{Name: created.Name, CreateTime: createTime}, nil
}
