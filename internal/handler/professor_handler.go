package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/studysync/studysync-backend/internal/response"
	"github.com/studysync/studysync-backend/internal/service"
)

// ProfessorHandler serves raw professor rating lookups.
type ProfessorHandler struct {
	ratingService *service.RatingService
}

// NewProfessorHandler creates a new ProfessorHandler.
func NewProfessorHandler(ratingService *service.RatingService) *ProfessorHandler {
	return &ProfessorHandler{ratingService: ratingService}
}

// GetProfessorRatings godoc
// GET /api/v1/professors/:professor/ratings?class_code=COMP%20550
// Returns the professor's raw rating records, optionally narrowed to one
// class, alongside the echoed query parameters.
func (h *ProfessorHandler) GetProfessorRatings(c *gin.Context) {
	professor := c.Param("professor")
	classCode := c.Query("class_code")

	ratings, err := h.ratingService.GetProfessorRatings(c.Request.Context(), professor, classCode)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"professor":  professor,
		"class_code": classCode,
		"ratings":    ratings,
	})
}
