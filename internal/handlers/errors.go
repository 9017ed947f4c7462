package handlers

import (
	"errors"
	"net/http"

	"github.com/Rajveerchoubisa/Zidio-TaskManager/internal/errs"

	"github.com/gin-gonic/gin"
)

// handleServiceError maps the service error kinds onto HTTP statuses. Every
// handler funnels failures through here so the mapping stays in one place.
func handleServiceError(c *gin.Context, err error) {
	var ve *errs.ValidationError
	switch {
	case errors.Is(err, errs.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
	case errors.Is(err, errs.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "operation not permitted"})
	case errors.Is(err, errs.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "resource not found"})
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Error(), "field": ve.Field})
	case errors.Is(err, errs.ErrUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage unavailable, try again later"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process request"})
	}
}
