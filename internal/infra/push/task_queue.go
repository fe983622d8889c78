package push

import "context"

//go:generate mockgen -source=task_queue.go -destination=task_queue_mock.go -package=push

// TaskQueue enqueues push deliveries for the push worker.
type TaskQueue interface {
	RegisterNotification(ctx context.Context, task *NotificationTask) (*TaskResponse, error)
}
