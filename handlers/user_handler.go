package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"filesmanager-backend/models"
	"filesmanager-backend/service"
)

// UserHandler handles registration and the current-user endpoint.
type UserHandler struct {
	auth *service.AuthService
}

// NewUserHandler creates a new user handler
func NewUserHandler(auth *service.AuthService) *UserHandler {
	return &UserHandler{auth: auth}
}

type createUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// PostNew handles POST /users. Empty or malformed bodies surface as the
// missing-field validation messages.
func (h *UserHandler) PostNew(c *gin.Context) {
	var req createUserRequest
	_ = c.ShouldBindJSON(&req)

	user, err := h.auth.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if models.IsValidation(err) || errors.Is(err, models.ErrConflict) {
			mapError(c, err)
			return
		}
		respondError(c, http.StatusInternalServerError, "Error creating user.")
		return
	}

	c.JSON(http.StatusCreated, user.Projection())
}

// GetMe handles GET /users/me
func (h *UserHandler) GetMe(c *gin.Context) {
	token := c.GetHeader(tokenHeader)
	if token == "" {
		respondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := h.auth.ResolveUser(c.Request.Context(), token)
	if err != nil {
		mapError(c, err)
		return
	}

	c.JSON(http.StatusOK, user.Projection())
}
