package domain

import "errors"

var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("admin privileges required")
	ErrAdminNotFound   = errors.New("admin not found")
)
