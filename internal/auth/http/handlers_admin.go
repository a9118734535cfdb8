package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GoSim-25-26J-441/projects-catalog/internal/auth"
	"github.com/GoSim-25-26J-441/projects-catalog/internal/logging"
)

// CheckAdmin reports whether the sso_id query parameter (or the resolved
// caller when it is absent) is an active admin. It never requires auth.
func (h *Handler) CheckAdmin(c *gin.Context) {
	ssoID := c.Query(auth.QuerySSOID)
	if ssoID == "" {
		ssoID = auth.CallerID(c)
	}

	ok, err := h.gate.IsAdmin(c.Request.Context(), ssoID)
	if err != nil {
		logging.FromContext(c.Request.Context()).Error().Err(err).Msg("admin check failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "admin check failed", "code": "internal_error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"is_admin": ok})
}
