package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fitness-intake-backend/internal/middleware"
	"fitness-intake-backend/internal/models"
	"fitness-intake-backend/internal/supabase"
)

type SubmissionsHandler struct {
	dbClient *supabase.DatabaseClient
}

func NewSubmissionsHandler(dbClient *supabase.DatabaseClient) *SubmissionsHandler {
	return &SubmissionsHandler{dbClient: dbClient}
}

// List returns submission summaries for the admin dashboard, newest first.
func (h *SubmissionsHandler) List(c *gin.Context) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}
	if _, exists := c.Get(middleware.UserIDKey); !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}

	summaries, err := h.dbClient.ListSubmissions(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to list submissions",
			Message: err.Error(),
		})
		return
	}
	if summaries == nil {
		summaries = []models.SubmissionSummary{}
	}

	c.JSON(http.StatusOK, models.SubmissionListResponse{Submissions: summaries})
}

// Get returns one submission joined with its measurements and body images.
func (h *SubmissionsHandler) Get(c *gin.Context) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}
	if _, exists := c.Get(middleware.UserIDKey); !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}

	submissionID := c.Param("submission_id")
	detail, err := h.dbClient.GetSubmission(c.Request.Context(), submissionID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "submission not found",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, detail)
}
