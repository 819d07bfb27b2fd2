package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "homebudget/internal/errors"
)

// Pinger reports whether the database answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves liveness and database checks.
type HealthHandler struct {
	db Pinger
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// Health reports that the process is up
// @Summary     Liveness check
// @Tags        health
// @Produce     json
// @Success     200 {object} map[string]string
// @Router      /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Database pings the database
// @Summary     Database check
// @Tags        health
// @Produce     json
// @Success     200 {object} map[string]string
// @Failure     503 {object} ErrorResponse "Database unavailable"
// @Router      /health/db [get]
func (h *HealthHandler) Database(c *gin.Context) {
	if err := h.db.Ping(c.Request.Context()); err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrUnavailable, err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "database": "reachable"})
}
