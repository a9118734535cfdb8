package attachments

import (
	"errors"
	"fmt"
)

// Sentinel errors for handlers to map to HTTP status.
var (
	ErrValidation      = errors.New("attachment rejected")
	ErrTooLarge        = fmt.Errorf("%w: file too large", ErrValidation)
	ErrUnsupportedType = fmt.Errorf("%w: unsupported content type", ErrValidation)

	ErrDecode = errors.New("unprocessable image")

	ErrBackend       = errors.New("storage backend error")
	ErrNotConfigured = fmt.Errorf("%w: not configured", ErrBackend)
)
