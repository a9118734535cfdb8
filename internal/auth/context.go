package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	CtxFirebaseUID = "firebase_uid"
	// CtxVerifiedOnly is set when token verification is enabled; unverified
	// identity hints are then ignored.
	CtxVerifiedOnly = "auth_verified_only"

	HeaderUserID = "X-User-Id"
	QuerySSOID   = "sso_id"
)

// UserFirebaseUID extracts the Firebase UID from the Gin context
// This is set by FirebaseAuthMiddleware
func UserFirebaseUID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxFirebaseUID))
}

// CallerID resolves the identity used by the admin gate: the verified
// Firebase UID, else the X-User-Id header, else the sso_id query parameter.
// With verification enabled only the Firebase UID is considered.
func CallerID(c *gin.Context) string {
	if uid := UserFirebaseUID(c); uid != "" {
		return uid
	}
	if c.GetBool(CtxVerifiedOnly) {
		return ""
	}
	if id := strings.TrimSpace(c.GetHeader(HeaderUserID)); id != "" {
		return id
	}
	return strings.TrimSpace(c.Query(QuerySSOID))
}
