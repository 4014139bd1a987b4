package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fitness-intake-backend/internal/models"
)

// HealthHandler returns the health status of the API.
func HealthHandler(c *gin.Context) {
	response := models.HealthResponse{
		Status: "ok",
	}
	c.JSON(http.StatusOK, response)
}
