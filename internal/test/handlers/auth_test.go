package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitness-intake-backend/internal/handlers"
	"fitness-intake-backend/internal/models"
	"fitness-intake-backend/internal/supabase"
)

func loginRouter(goTrueURL string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := handlers.NewAuthHandler(supabase.NewAuthClient(goTrueURL, "anon-key"))
	router := gin.New()
	router.POST("/api/v1/auth/login", h.Login)
	return router
}

func postLogin(router *gin.Engine, body interface{}) *httptest.ResponseRecorder {
	data, _ := json.Marshal(body)
	req, _ := http.NewRequest("POST", "/api/v1/auth/login", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestLogin_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": "jwt-token",
			"token_type":   "bearer",
			"expires_in":   3600,
			"user": map[string]string{
				"id":    "user-123",
				"email": "admin@example.com",
			},
		})
	}))
	defer server.Close()

	router := loginRouter(server.URL)
	w := postLogin(router, models.LoginRequest{Email: "admin@example.com", Password: "secret"})

	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "jwt-token", resp.AccessToken)
	assert.Equal(t, "admin@example.com", resp.Email)
}

func TestLogin_BadCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{
			"error_description": "Invalid login credentials",
		})
	}))
	defer server.Close()

	router := loginRouter(server.URL)
	w := postLogin(router, models.LoginRequest{Email: "admin@example.com", Password: "wrong"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "login failed")
}

func TestLogin_MissingFields(t *testing.T) {
	router := loginRouter("http://localhost:1")
	w := postLogin(router, map[string]string{"email": "admin@example.com"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
