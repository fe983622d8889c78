//go:build gcloud

package push

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	cloudtasks "cloud.google.com/go/cloudtasks/apiv2"
	taskspb "cloud.google.com/go/cloudtasks/apiv2/cloudtaskspb"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// CloudTasksClient enqueues push deliveries as HTTP tasks aimed at the push
// worker.
type CloudTasksClient struct {
	client     *cloudtasks.Client
	queuePath  string
	targetURL  string
	maxRetries int
}

type CloudTasksConfig struct {
	ProjectID  string
	LocationID string
	QueueID    string
	TargetURL  string
	MaxRetries int
}

func NewCloudTasksClient(ctx context.Context, cfg CloudTasksConfig) (*CloudTasksClient, error) {
	client, err := cloudtasks.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloud tasks client: %w", err)
	}

	return &CloudTasksClient{
		client:     client,
		queuePath:  fmt.Sprintf("projects/%s/locations/%s/queues/%s", cfg.ProjectID, cfg.LocationID, cfg.QueueID),
		targetURL:  cfg.TargetURL,
		maxRetries: cfg.MaxRetries,
	}, nil
}

func (c *CloudTasksClient) RegisterNotification(ctx context.Context, task *NotificationTask) (*TaskResponse, error) {
	req, err := c.createRequest(task)
	if err != nil {
		return nil, err
	}
	return registerWithRetry(ctx, task, c.maxRetries, func(ctx context.Context) (*TaskResponse, error) {
		return c.create(ctx, req, task)
	})
}

func (c *CloudTasksClient) createRequest(task *NotificationTask) (*taskspb.CreateTaskRequest, error) {
	payload, err := json.Marshal(task)
	if err != nil {
		return nil, fmt.Errorf("marshal push payload: %w", err)
	}

	pushTask := &taskspb.Task{
		MessageType: &taskspb.Task_HttpRequest{
			HttpRequest: &taskspb.HttpRequest{
				HttpMethod: taskspb.HttpMethod_POST,
				Url:        c.targetURL,
				Headers:    map[string]string{"Content-Type": "application/json"},
				Body:       payload,
			},
		},
	}
	// Named tasks let Cloud Tasks reject a second delivery of the same reminder.
	if task.Name != "" {
		pushTask.Name = c.queuePath + "/tasks/" + task.Name
	}

	return &taskspb.CreateTaskRequest{Parent: c.queuePath, Task: pushTask}, nil
}

func (c *CloudTasksClient) create(ctx context.Context, req *taskspb.CreateTaskRequest, task *NotificationTask) (*TaskResponse, error) {
	created, err := c.client.CreateTask(ctx, req)
	if status.Code(err) == codes.AlreadyExists {
		slog.DebugContext(ctx, "push task already queued",
			slog.String("user_id", task.UserID),
			slog.String("task_name", req.Task.Name),
		)
		return &TaskResponse{Name: req.Task.Name, Duplicate: true}, nil
	}
	if err != nil {
		slog.WarnContext(ctx, "push task rejected",
			slog.String("user_id", task.UserID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("create cloud task: %w", err)
	}

	var createTime time.Time
	if created.GetCreateTime() != nil {
		createTime = created.GetCreateTime().AsTime()
	}

	slog.InfoContext(ctx, "push task queued",
		slog.String("user_id", task.UserID),
		slog.String("task_name", created.GetName()),
	)
	return &TaskResponse{Name: created.GetName(), CreateTime: createTime}, nil
}

func (c *CloudTasksClient) Close() error {
	return c.client.Close()
}
