package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubChecker struct {
	admins map[string]bool
	err    error
	seen   string
}

func (s *stubChecker) IsAdmin(ctx context.Context, callerID string) (bool, error) {
	s.seen = callerID
	if s.err != nil {
		return false, s.err
	}
	return s.admins[callerID], nil
}

func serve(h *Handler, target string, header map[string]string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h.Register(r.Group("/admin"))

	req := httptest.NewRequest(http.MethodGet, target, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCheckAdmin(t *testing.T) {
	checker := &stubChecker{admins: map[string]bool{"admin-1": true}}
	h := New(checker)

	tests := []struct {
		name   string
		target string
		header map[string]string
		want   string
	}{
		{"active admin", "/admin/check?sso_id=admin-1", nil, `{"is_admin":true}`},
		{"unknown", "/admin/check?sso_id=someone", nil, `{"is_admin":false}`},
		{"missing id", "/admin/check", nil, `{"is_admin":false}`},
		{"header fallback", "/admin/check", map[string]string{"X-User-Id": "admin-1"}, `{"is_admin":true}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(h, tt.target, tt.header)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.JSONEq(t, tt.want, w.Body.String())
		})
	}
}

func TestCheckAdmin_LookupFailure(t *testing.T) {
	h := New(&stubChecker{err: errors.New("db down")})

	w := serve(h, "/admin/check?sso_id=admin-1", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "internal_error")
}
