//go:build !gcloud

package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/KasumiMercury/primind-treatment-schedule/internal/config"
	"github.com/KasumiMercury/primind-treatment-schedule/internal/infra/push"
	"github.com/KasumiMercury/primind-treatment-schedule/internal/observability"
	"github.com/KasumiMercury/primind-treatment-schedule/internal/observability/logging"
)

func initTaskQueue(_ context.Context, cfg *config.Config) (push.TaskQueue, func() error, error) {
	if !cfg.TaskQueue.Enabled() {
		slog.Warn("PRIMIND_TASKS_URL not set, push delivery disabled")

		return nil, nil, nil
	}

	tq := push.NewPrimindTasksClient(
		cfg.TaskQueue.PrimindTasksURL,
		cfg.TaskQueue.QueueName,
		cfg.TaskQueue.MaxRetries,
	)

	slog.Info("task queue initialized",
		slog.String("type", "primind_tasks"),
		slog.String("url", cfg.TaskQueue.PrimindTasksURL),
		slog.String("queue", cfg.TaskQueue.QueueName),
	)

	return tq, nil, nil
}

func initObservability(ctx context.Context, level slog.Level) (*observability.Resources, error) {
	serviceName := os.Getenv("SERVICE_NAME")
	if serviceName == "" {
		serviceName = "treatment-schedule"
	}

	env := logging.EnvDev
	if e := os.Getenv("ENV"); e != "" {
		env = logging.Environment(e)
	}

	return observability.Init(ctx, observability.Config{
		ServiceInfo: logging.ServiceInfo{
			Name:     serviceName,
			Version:  Version,
			Revision: "",
		},
		Environment:   env,
		LogLevel:      level,
		GCPProjectID:  "",
		SamplingRate:  1.0,
		DefaultModule: module,
	})
}
