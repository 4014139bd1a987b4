package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fitness-intake-backend/internal/export"
	"fitness-intake-backend/internal/middleware"
	"fitness-intake-backend/internal/models"
	"fitness-intake-backend/internal/supabase"
)

type ExportHandler struct {
	dbClient *supabase.DatabaseClient
}

func NewExportHandler(dbClient *supabase.DatabaseClient) *ExportHandler {
	return &ExportHandler{dbClient: dbClient}
}

// Export streams all submissions as a CSV attachment. An empty data set is a
// no-op with a notification rather than an empty file.
func (h *ExportHandler) Export(c *gin.Context) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}
	if _, exists := c.Get(middleware.UserIDKey); !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}

	details, err := h.dbClient.ListSubmissionDetails(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to load submissions",
			Message: err.Error(),
		})
		return
	}

	if len(details) == 0 {
		c.JSON(http.StatusOK, gin.H{"message": "no data to export"})
		return
	}

	csv := export.FormatCSV(details)
	filename := fmt.Sprintf("fitness-submissions-%s.csv", time.Now().Format("2006-01-02"))

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(csv))
}
