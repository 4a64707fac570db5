package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"filesmanager-backend/models"
)

// tokenHeader carries the session token on authenticated requests.
const tokenHeader = "X-Token"

func respondError(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}

// mapError translates domain errors to HTTP responses. ErrForbidden is
// deliberately reported as 404 so private files don't leak their existence.
func mapError(c *gin.Context, err error) {
	var ve *models.ValidationError
	switch {
	case errors.As(err, &ve):
		respondError(c, http.StatusBadRequest, ve.Message)
	case errors.Is(err, models.ErrConflict):
		respondError(c, http.StatusBadRequest, "Already exist")
	case errors.Is(err, models.ErrUnauthorized):
		respondError(c, http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, models.ErrNotFound), errors.Is(err, models.ErrForbidden):
		respondError(c, http.StatusNotFound, "Not found")
	default:
		respondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
