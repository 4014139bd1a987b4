package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"fitness-intake-backend/internal/handlers"
	"fitness-intake-backend/internal/middleware"
)

// The admin handlers require a live database client; without one every
// endpoint reports unavailability instead of panicking.
func TestAdminHandlers_NoDatabase(t *testing.T) {
	gin.SetMode(gin.TestMode)

	submissions := handlers.NewSubmissionsHandler(nil)
	exportHandler := handlers.NewExportHandler(nil)

	router := gin.New()
	// Simulate an authenticated admin.
	router.Use(func(c *gin.Context) {
		c.Set(middleware.UserIDKey, "user-123")
	})
	router.GET("/admin/submissions", submissions.List)
	router.GET("/admin/submissions/:submission_id", submissions.Get)
	router.GET("/admin/export", exportHandler.Export)

	for _, path := range []string{
		"/admin/submissions",
		"/admin/submissions/FIT-1700000000-7",
		"/admin/export",
	} {
		req, _ := http.NewRequest("GET", path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code, path)
		assert.Contains(t, w.Body.String(), "database not available", path)
	}
}
