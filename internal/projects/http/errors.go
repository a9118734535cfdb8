package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GoSim-25-26J-441/projects-catalog/internal/attachments"
	authdomain "github.com/GoSim-25-26J-441/projects-catalog/internal/auth/domain"
	"github.com/GoSim-25-26J-441/projects-catalog/internal/logging"
	"github.com/GoSim-25-26J-441/projects-catalog/internal/projects/domain"
)

// API error codes returned in JSON { "error": "...", "code": "..." }.
const (
	ErrCodeMalformedInput   = "malformed_input"
	ErrCodeUnauthenticated  = "unauthenticated"
	ErrCodeForbidden        = "forbidden"
	ErrCodeNotFound         = "not_found"
	ErrCodeFileTooLarge     = "file_too_large"
	ErrCodeUnsupportedMedia = "unsupported_media_type"
	ErrCodeInvalidImage     = "invalid_image"
	ErrCodeStorage          = "storage_error"
	ErrCodeInternal         = "internal_error"
)

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrMalformedInput):
		return http.StatusUnprocessableEntity, ErrCodeMalformedInput
	case errors.Is(err, authdomain.ErrUnauthenticated):
		return http.StatusUnauthorized, ErrCodeUnauthenticated
	case errors.Is(err, authdomain.ErrForbidden):
		return http.StatusForbidden, ErrCodeForbidden
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, ErrCodeNotFound
	case errors.Is(err, attachments.ErrTooLarge):
		return http.StatusRequestEntityTooLarge, ErrCodeFileTooLarge
	case errors.Is(err, attachments.ErrUnsupportedType):
		return http.StatusUnsupportedMediaType, ErrCodeUnsupportedMedia
	case errors.Is(err, attachments.ErrDecode):
		return http.StatusUnprocessableEntity, ErrCodeInvalidImage
	case errors.Is(err, attachments.ErrBackend):
		return http.StatusInternalServerError, ErrCodeStorage
	default:
		return http.StatusInternalServerError, ErrCodeInternal
	}
}

// writeError maps err onto a status and stable code. Server-side failures are
// logged and their details withheld.
func writeError(c *gin.Context, err error) {
	status, code := classify(err)

	msg := err.Error()
	if status >= http.StatusInternalServerError {
		logging.FromContext(c.Request.Context()).Error().Err(err).Str("code", code).Msg("request failed")
		msg = "internal server error"
		if code == ErrCodeStorage {
			msg = "image storage unavailable"
		}
	}

	c.AbortWithStatusJSON(status, gin.H{"error": msg, "code": code})
}
