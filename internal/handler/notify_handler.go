package handler

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-treatment-schedule/internal/domain"
	"github.com/KasumiMercury/primind-treatment-schedule/internal/observability/logging"
	"github.com/KasumiMercury/primind-treatment-schedule/internal/service/notify"
)

const RunIDHeader = "X-Run-ID"

// NotifyRunner is the batch runner behind the cron trigger.
type NotifyRunner interface {
	Run(ctx context.Context, now time.Time) (*notify.Result, error)
	EmailConfigured() bool
	PushConfigured() bool
}

type NotifyHandler struct {
	runner     NotifyRunner
	cronSecret string
	recorder   domain.RunRecorder
}

type notifyResponse struct {
	Success         bool           `json:"success"`
	Timestamp       string         `json:"timestamp"`
	EmailConfigured bool           `json:"emailConfigured"`
	PushConfigured  bool           `json:"pushConfigured"`
	Results         *notify.Result `json:"results"`
}

// NewNotifyHandler builds the cron trigger. An empty cronSecret leaves the
// endpoint unauthenticated. recorder may be nil.
func NewNotifyHandler(runner NotifyRunner, cronSecret string, recorder domain.RunRecorder) *NotifyHandler {
	return &NotifyHandler{
		runner:     runner,
		cronSecret: cronSecret,
		recorder:   recorder,
	}
}

func (h *NotifyHandler) authorized(c *gin.Context) bool {
	if h.cronSecret == "" {
		slog.WarnContext(c.Request.Context(), "CRON_SECRET not set, notification trigger is unauthenticated")
		return true
	}

	token, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
	if !ok {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(h.cronSecret)) == 1
}

func (h *NotifyHandler) HandleNotify(c *gin.Context) {
	if !h.authorized(c) {
		slog.WarnContext(c.Request.Context(), "notification trigger rejected",
			slog.String("reason", "authorization mismatch"),
		)
		respondError(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	runID := c.GetHeader(RunIDHeader)
	if runID == "" {
		runID = logging.NewID()
	}
	c.Header(RunIDHeader, runID)
	ctx := logging.WithRunID(c.Request.Context(), runID)

	now := time.Now()
	if nowStr := c.Query("now"); nowStr != "" {
		parsed, err := time.Parse(time.RFC3339, nowStr)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid now time format, expected RFC3339")
			return
		}
		now = parsed
		slog.InfoContext(ctx, "using virtual time",
			slog.Time("virtual_now", now),
		)
	}

	started := time.Now()
	result, err := h.runner.Run(ctx, now)
	if err != nil {
		slog.ErrorContext(ctx, "notification run failed",
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, "failed to process notifications")
		return
	}

	if h.recorder != nil {
		record := domain.RunRecord{
			RunID:              runID,
			RanAt:              now,
			Duration:           time.Since(started),
			UserCount:          result.UsersProcessed,
			InjectionReminders: result.InjectionReminders,
			InjectionOverdue:   result.InjectionOverdue,
			WeightReminders:    result.WeightReminders,
			WeeklySummaries:    result.WeeklySummaries,
			PushNotifications:  result.PushNotifications,
			ErrorCount:         len(result.Errors),
		}
		if err := h.recorder.RecordRun(ctx, record); err != nil {
			slog.WarnContext(ctx, "failed to record run result",
				slog.String("error", err.Error()),
			)
		}
	}

	c.JSON(http.StatusOK, notifyResponse{
		Success:         true,
		Timestamp:       time.Now().UTC().Format(time.RFC3339),
		EmailConfigured: h.runner.EmailConfigured(),
		PushConfigured:  h.runner.PushConfigured(),
		Results:         result,
	})
}
