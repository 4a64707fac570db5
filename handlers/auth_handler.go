package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"filesmanager-backend/service"
)

// AuthHandler handles sign-in and sign-out.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// GetConnect handles GET /connect. Credentials arrive as HTTP Basic auth;
// a fresh token is issued on success.
func (h *AuthHandler) GetConnect(c *gin.Context) {
	email, password, ok := c.Request.BasicAuth()
	if !ok {
		respondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	token, err := h.auth.SignIn(c.Request.Context(), email, password)
	if err != nil {
		mapError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// GetDisconnect handles GET /disconnect. The token must still be valid;
// revocation itself is idempotent.
func (h *AuthHandler) GetDisconnect(c *gin.Context) {
	token := c.GetHeader(tokenHeader)
	if token == "" {
		respondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if _, err := h.auth.ResolveToken(c.Request.Context(), token); err != nil {
		mapError(c, err)
		return
	}

	if err := h.auth.SignOut(c.Request.Context(), token); err != nil {
		mapError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
