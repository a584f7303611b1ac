package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/studysync/studysync-backend/internal/middleware"
	"github.com/studysync/studysync-backend/internal/model"
	"github.com/studysync/studysync-backend/internal/response"
	"github.com/studysync/studysync-backend/internal/service"
	"github.com/studysync/studysync-backend/internal/validator"
)

// SubmissionHandler handles the two rating write paths.
type SubmissionHandler struct {
	ratingService *service.RatingService
}

// NewSubmissionHandler creates a new SubmissionHandler.
func NewSubmissionHandler(ratingService *service.RatingService) *SubmissionHandler {
	return &SubmissionHandler{ratingService: ratingService}
}

// SubmitDifficulty godoc
// POST /api/v1/submissions/difficulty
// Records the authenticated user's difficulty rating for a class.
// A repeat submission for the same class replaces the earlier one.
func (h *SubmissionHandler) SubmitDifficulty(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
		return
	}

	var req model.ClassDifficultyRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.ratingService.SubmitClassDifficulty(c.Request.Context(), claims.UserID, &req); err != nil {
		failSubmission(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Difficulty rating submitted successfully"})
}

// SubmitProfessorRating godoc
// POST /api/v1/submissions/professor
// Records the authenticated user's quality rating for a professor.
func (h *SubmissionHandler) SubmitProfessorRating(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
		return
	}

	var req model.ProfessorRatingRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.ratingService.SubmitProfessorRating(c.Request.Context(), claims.UserID, &req); err != nil {
		failSubmission(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Professor rating submitted successfully"})
}

// failSubmission maps rating write errors onto the response envelope.
func failSubmission(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, service.ErrMajorMismatch):
		response.Fail(c, http.StatusBadRequest, response.ErrMajorMismatch)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
