package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/studysync/studysync-backend/internal/response"
)

// HealthHandler reports service and database health.
type HealthHandler struct {
	db *pgxpool.Pool
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db *pgxpool.Pool) *HealthHandler {
	return &HealthHandler{db: db}
}

// Health godoc
// GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	dbStatus := "healthy"
	status := http.StatusOK

	if err := h.db.Ping(c.Request.Context()); err != nil {
		dbStatus = "unhealthy"
		status = http.StatusServiceUnavailable
	}

	response.Success(c, status, gin.H{
		"status":    dbStatus,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"database":  gin.H{"status": dbStatus},
	})
}
