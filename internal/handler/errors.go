package handler

import (
	"errors"
	"net/http"

	"github.com/artstack/creative-showcase/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// respondError maps service errors onto the HTTP error taxonomy.
// Unexpected failures become a generic 500 so internals never leak.
func respondError(c *gin.Context, err error) {
	var ve *service.ValidationError

	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrArtworkNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrCommentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotArtworkOwner),
		errors.Is(err, service.ErrCommentsDisabled):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrWrongPassword):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrEmailAlreadyExists),
		errors.Is(err, service.ErrUsernameAlreadyExists),
		errors.Is(err, service.ErrEmailInUse):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
	}
}

// currentUserID reads the identity attached by the auth middleware.
func currentUserID(c *gin.Context) uuid.UUID {
	val, _ := c.Get("user_id")
	id, _ := val.(uuid.UUID)
	return id
}
