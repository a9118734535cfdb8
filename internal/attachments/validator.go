package attachments

import (
	"fmt"
	"mime"
	"strings"
)

const (
	DefaultMaxBytes int64 = 5 * 1024 * 1024
)

var DefaultAllowedTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

// Validator rejects uploads that are too large or of a content type outside
// the allow-list. It has no side effects.
type Validator struct {
	maxBytes int64
	allowed  map[string]struct{}
	list     []string
}

func NewValidator(maxBytes int64, allowedTypes []string) *Validator {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if len(allowedTypes) == 0 {
		allowedTypes = DefaultAllowedTypes
	}

	v := &Validator{maxBytes: maxBytes, allowed: make(map[string]struct{}, len(allowedTypes))}
	for _, t := range allowedTypes {
		mt := mediaType(t)
		if mt == "" {
			continue
		}
		if _, dup := v.allowed[mt]; !dup {
			v.allowed[mt] = struct{}{}
			v.list = append(v.list, mt)
		}
	}
	return v
}

func (v *Validator) MaxBytes() int64 { return v.maxBytes }

// Validate checks size first, then content type.
func (v *Validator) Validate(contentType string, size int64) error {
	if size > v.maxBytes {
		return fmt.Errorf("%w: maximum size is %.1fMB", ErrTooLarge, float64(v.maxBytes)/(1024*1024))
	}
	if _, ok := v.allowed[mediaType(contentType)]; !ok {
		return fmt.Errorf("%w: allowed types: %s", ErrUnsupportedType, strings.Join(v.list, ", "))
	}
	return nil
}

func mediaType(contentType string) string {
	contentType = strings.TrimSpace(contentType)
	if contentType == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(contentType)
	}
	return mt
}
