package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-treatment-schedule/internal/service/stats"
)

// UserIDHeader carries the caller identity resolved by the gateway.
const UserIDHeader = "X-User-ID"

type StatsReader interface {
	WeightStats(ctx context.Context, userID string, q stats.Query) (*stats.WeightStats, error)
	InjectionStats(ctx context.Context, userID string, q stats.Query) (*stats.InjectionStats, error)
}

type StatsHandler struct {
	reader StatsReader
	clock  func() time.Time
}

func NewStatsHandler(reader StatsReader) *StatsHandler {
	return &StatsHandler{
		reader: reader,
		clock:  time.Now,
	}
}

func (h *StatsHandler) query(c *gin.Context) stats.Query {
	return stats.Query{
		Period:    c.Query("period"),
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
		Now:       h.clock(),
	}
}

func userID(c *gin.Context) (string, bool) {
	id := c.GetHeader(UserIDHeader)
	return id, id != ""
}

func (h *StatsHandler) HandleWeightStats(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := userID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	res, err := h.reader.WeightStats(ctx, id, h.query(c))
	if err != nil {
		slog.ErrorContext(ctx, "failed to build weight stats",
			slog.String("user_id", id),
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, "failed to load weight stats")
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *StatsHandler) HandleInjectionStats(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := userID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	res, err := h.reader.InjectionStats(ctx, id, h.query(c))
	if err != nil {
		slog.ErrorContext(ctx, "failed to build injection stats",
			slog.String("user_id", id),
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, "failed to load injection stats")
		return
	}

	c.JSON(http.StatusOK, res)
}
