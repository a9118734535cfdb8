package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newContext(target string, header string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	if header != "" {
		c.Request.Header.Set(HeaderUserID, header)
	}
	return c
}

func TestCallerID(t *testing.T) {
	t.Run("header", func(t *testing.T) {
		assert.Equal(t, "admin-1", CallerID(newContext("/projects", " admin-1 ")))
	})

	t.Run("query fallback", func(t *testing.T) {
		assert.Equal(t, "admin-2", CallerID(newContext("/projects?sso_id=admin-2", "")))
	})

	t.Run("header wins over query", func(t *testing.T) {
		assert.Equal(t, "admin-1", CallerID(newContext("/projects?sso_id=admin-2", "admin-1")))
	})

	t.Run("firebase uid wins", func(t *testing.T) {
		c := newContext("/projects?sso_id=admin-2", "admin-1")
		c.Set(CtxFirebaseUID, "uid-9")
		assert.Equal(t, "uid-9", CallerID(c))
	})

	t.Run("verified only ignores hints", func(t *testing.T) {
		c := newContext("/projects?sso_id=admin-2", "admin-1")
		c.Set(CtxVerifiedOnly, true)
		assert.Empty(t, CallerID(c))
	})

	t.Run("anonymous", func(t *testing.T) {
		assert.Empty(t, CallerID(newContext("/projects", "")))
	})
}
