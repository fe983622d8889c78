package main

import (
	"context"
	"crypto/tls"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"connectrpc.com/grpchealth"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/KasumiMercury/primind-treatment-schedule/internal/config"
	"github.com/KasumiMercury/primind-treatment-schedule/internal/database"
	"github.com/KasumiMercury/primind-treatment-schedule/internal/domain"
	"github.com/KasumiMercury/primind-treatment-schedule/internal/handler"
	"github.com/KasumiMercury/primind-treatment-schedule/internal/health"
	"github.com/KasumiMercury/primind-treatment-schedule/internal/infra/email"
	"github.com/KasumiMercury/primind-treatment-schedule/internal/infra/ledger"
	"github.com/KasumiMercury/primind-treatment-schedule/internal/infra/push"
	"github.com/KasumiMercury/primind-treatment-schedule/internal/infra/repository"
	"github.com/KasumiMercury/primind-treatment-schedule/internal/infra/runrecorder"
	"github.com/KasumiMercury/primind-treatment-schedule/internal/observability/logging"
	"github.com/KasumiMercury/primind-treatment-schedule/internal/observability/metrics"
	"github.com/KasumiMercury/primind-treatment-schedule/internal/observability/middleware"
	"github.com/KasumiMercury/primind-treatment-schedule/internal/service/notify"
	"github.com/KasumiMercury/primind-treatment-schedule/internal/service/stats"
)

// Version is set via ldflags at build time
var Version = "dev"

const module = logging.Module("treatment-schedule")

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		return 1
	}

	obs, err := initObservability(ctx, cfg.LogLevel)
	if err != nil {
		slog.Error("failed to initialize observability", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := obs.Shutdown(shutdownCtx); err != nil {
			slog.Warn("observability shutdown error", slog.String("error", err.Error()))
		}
	}()

	slog.SetDefault(obs.Logger())

	if err := config.ValidateForRun(cfg); err != nil {
		slog.Error("configuration validation error", slog.String("error", err.Error()))
		return 1
	}

	if err := cfg.TaskQueue.Validate(); err != nil {
		slog.Error("task queue configuration error", slog.String("error", err.Error()))
		return 1
	}

	httpMetrics, err := metrics.NewHTTPMetrics()
	if err != nil {
		slog.Error("failed to initialize HTTP metrics", slog.String("error", err.Error()))
		return 1
	}

	notifyMetrics, err := metrics.NewNotifyMetrics()
	if err != nil {
		slog.Error("failed to initialize notify metrics", slog.String("error", err.Error()))
		return 1
	}

	// Run result recorder (InfluxDB for local, BigQuery for gcloud)
	runRecorder, err := runrecorder.NewRecorder(ctx, runrecorder.LoadConfig())
	if err != nil {
		slog.Error("failed to initialize run result recorder", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		if err := runRecorder.Close(); err != nil {
			slog.Warn("failed to close run result recorder", slog.String("error", err.Error()))
		}
	}()

	db, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		slog.Error("failed to connect database",
			slog.String("event", "db.connect.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}
	defer func() {
		if err := database.Close(db); err != nil {
			slog.Warn("failed to close database", slog.String("error", err.Error()))
		}
	}()

	userStore := repository.NewUserStore(db)

	taskQueue, cleanup, err := initTaskQueue(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize task queue", slog.String("error", err.Error()))
		return 1
	}
	if cleanup != nil {
		defer func() {
			if err := cleanup(); err != nil {
				slog.Error("task queue cleanup error", slog.String("error", err.Error()))
			}
		}()
	}

	redisClient, err := initRedis(ctx, cfg.Redis)
	if err != nil {
		return 1
	}
	var sentLedger domain.SentLedger
	if redisClient != nil {
		defer func() {
			if err := redisClient.Close(); err != nil {
				slog.Warn("failed to close redis client", slog.String("error", err.Error()))
			}
		}()
		sentLedger = ledger.NewRedisLedger(redisClient)
	} else {
		slog.Warn("REDIS_ADDR not set, sent ledger disabled")
	}

	emailClient := email.NewClient(email.Config{
		APIURL: cfg.Email.APIURL,
		APIKey: cfg.Email.APIKey,
		From:   cfg.Email.From,
	})
	if !emailClient.Configured() {
		slog.Warn("EMAIL_API_URL or EMAIL_API_KEY not set, email delivery disabled")
	}
	pushSender := push.NewSender(userStore, taskQueue)

	notifyService := notify.NewService(
		userStore,
		emailClient,
		pushSender,
		sentLedger,
		notifyMetrics,
		notify.Options{
			Location:           cfg.Notify.Location,
			WeightReminderHour: cfg.Notify.WeightReminderHour,
			SummaryWeekday:     cfg.Notify.SummaryWeekday,
			DedupDisabled:      cfg.Notify.DedupDisabled,
		},
	)
	statsService := stats.NewService(userStore, cfg.Notify.Location, cfg.Notify.WeekStartsOn)

	notifyHandler := handler.NewNotifyHandler(notifyService, cfg.Notify.CronSecret, runRecorder)
	statsHandler := handler.NewStatsHandler(statsService)

	// Setup router with observability middleware
	r := gin.New()
	r.Use(middleware.Gin(middleware.GinConfig{
		SkipPaths:  []string{"/health", "/health/live", "/health/ready", "/grpc.health.v1.Health/Check"},
		Module:     module,
		Worker:     false,
		TracerName: "github.com/KasumiMercury/primind-treatment-schedule/internal/observability/middleware",
		JobNameResolver: func(c *gin.Context) string {
			if c.Request.Header.Get(handler.RunIDHeader) != "" {
				return "notification-run"
			}
			return c.Request.URL.Path
		},
		HTTPMetrics: httpMetrics,
	}))
	r.Use(middleware.PanicRecoveryGin())

	// Health check endpoints
	deps := []health.Dependency{
		{Name: "database", Ping: func(ctx context.Context) error { return database.Ping(ctx, db) }},
	}
	if redisClient != nil {
		deps = append(deps, health.Dependency{
			Name: "redis",
			Ping: func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
		})
	}
	healthChecker := health.NewChecker(Version, deps...)
	r.GET("/health/live", healthChecker.LiveHandler())
	r.GET("/health/ready", healthChecker.ReadyHandler())
	r.GET("/health", healthChecker.ReadyHandler())

	grpcHealthPath, grpcHealthHandler := grpchealth.NewHandler(healthChecker.GRPCChecker())
	r.POST(grpcHealthPath+"*method", gin.WrapH(grpcHealthHandler))

	// API routes
	v1 := r.Group("/api/v1")
	{
		v1.POST("/cron/notifications", notifyHandler.HandleNotify)
		v1.GET("/stats/weight", statsHandler.HandleWeightStats)
		v1.GET("/stats/injections", statsHandler.HandleInjectionStats)
	}

	// h2c lets gRPC health clients speak HTTP/2 without TLS.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           h2c.NewHandler(r, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Port),
			slog.String("timezone", cfg.Notify.Location.String()),
			slog.Int("weight_reminder_hour", cfg.Notify.WeightReminderHour),
			slog.String("summary_weekday", cfg.Notify.SummaryWeekday.String()),
			slog.Bool("email_configured", notifyService.EmailConfigured()),
			slog.Bool("push_configured", notifyService.PushConfigured()),
			slog.Bool("ledger_enabled", sentLedger != nil && !cfg.Notify.DedupDisabled),
		)
		serverErr <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shutdown server", slog.String("error", err.Error()))
			return 1
		}

		slog.Info("server exited properly")
		return 0

	case err := <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return 0
		}
		slog.Error("server exited with error", slog.String("error", err.Error()))
		return 1
	}
}

// initRedis returns a nil client when no address is configured. Failures are
// logged here.
func initRedis(ctx context.Context, cfg *config.RedisConfig) (*redis.Client, error) {
	if !cfg.Enabled() {
		return nil, nil
	}

	opts := &redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
	if cfg.TLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	client := redis.NewClient(opts)

	if err := redisotel.InstrumentTracing(client); err != nil {
		slog.Error("failed to instrument redis tracing",
			slog.String("event", "redis.otel.tracing.fail"),
			slog.String("error", err.Error()),
		)
		_ = client.Close()
		return nil, err
	}

	if err := redisotel.InstrumentMetrics(client); err != nil {
		slog.Error("failed to instrument redis metrics",
			slog.String("event", "redis.otel.metrics.fail"),
			slog.String("error", err.Error()),
		)
		_ = client.Close()
		return nil, err
	}

	if err := client.Ping(ctx).Err(); err != nil {
		slog.Error("failed to connect redis",
			slog.String("event", "redis.connect.fail"),
			slog.String("error", err.Error()),
		)
		_ = client.Close()
		return nil, err
	}

	slog.Info("redis connected",
		slog.String("addr", cfg.Addr),
	)

	return client, nil
}
