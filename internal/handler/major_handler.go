package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/studysync/studysync-backend/internal/response"
	"github.com/studysync/studysync-backend/internal/service"
)

// defaultRankingLimit caps class rankings when the caller does not ask for
// a specific result count.
const defaultRankingLimit = 50

// MajorHandler serves the major-scoped aggregation reads.
type MajorHandler struct {
	ratingService *service.RatingService
}

// NewMajorHandler creates a new MajorHandler.
func NewMajorHandler(ratingService *service.RatingService) *MajorHandler {
	return &MajorHandler{ratingService: ratingService}
}

// ListMajors godoc
// GET /api/v1/majors
// Lists every major that has at least one submission, sorted ascending.
func (h *MajorHandler) ListMajors(c *gin.Context) {
	majors, err := h.ratingService.GetAllMajors(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"majors": majors})
}

// GetMajorStats godoc
// GET /api/v1/majors/:major/stats
// An unknown major yields zero statistics, not an error.
func (h *MajorHandler) GetMajorStats(c *gin.Context) {
	major := c.Param("major")

	stats, err := h.ratingService.GetMajorStats(c.Request.Context(), major)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"stats": stats})
}

// GetClassRankings godoc
// GET /api/v1/majors/:major/classes?limit=50
// Returns the major's classes ranked by average difficulty, each with its
// professor sub-ranking.
func (h *MajorHandler) GetClassRankings(c *gin.Context) {
	major := c.Param("major")

	limit := defaultRankingLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
			return
		}
		limit = n
	}

	rankings, err := h.ratingService.GetClassRankings(c.Request.Context(), major, limit)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"rankings": rankings})
}
