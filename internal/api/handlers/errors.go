package handlers

import (
	"errors"
	"net/http"

	"github.com/andresuchdata/supplychain-whatif/backend-go/internal/auth"
	"github.com/andresuchdata/supplychain-whatif/backend-go/internal/importer"
	"github.com/andresuchdata/supplychain-whatif/backend-go/internal/service"
	"github.com/andresuchdata/supplychain-whatif/backend-go/internal/storage"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// statusFor maps service errors onto HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrCompanyNotFound), errors.Is(err, storage.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrDuplicateNode):
		return http.StatusConflict
	case errors.Is(err, service.ErrInvalidNode), errors.Is(err, importer.ErrMissingSheet):
		return http.StatusBadRequest
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrNotLoaded):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func respondError(c *gin.Context, message string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.FullPath()).Msg(message)
	}
	c.JSON(status, gin.H{"error": message, "details": err.Error()})
}

func badRequest(c *gin.Context, message string, err error) {
	body := gin.H{"error": message}
	if err != nil {
		body["details"] = err.Error()
	}
	c.JSON(http.StatusBadRequest, body)
}

func forbidden(c *gin.Context) {
	c.JSON(http.StatusForbidden, gin.H{"error": "not allowed for this user"})
}
