package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fitness-intake-backend/internal/models"
	"fitness-intake-backend/internal/supabase"
)

type AuthHandler struct {
	authClient *supabase.AuthClient
}

func NewAuthHandler(authClient *supabase.AuthClient) *AuthHandler {
	return &AuthHandler{authClient: authClient}
}

// Login exchanges admin credentials for a Supabase session token. Errors are
// surfaced inline; there is no retry logic.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request",
			Message: err.Error(),
		})
		return
	}

	session, err := h.authClient.SignInWithPassword(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Error:   "login failed",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.LoginResponse{
		AccessToken: session.AccessToken,
		TokenType:   session.TokenType,
		ExpiresIn:   session.ExpiresIn,
		UserID:      session.User.ID,
		Email:       session.User.Email,
	})
}
