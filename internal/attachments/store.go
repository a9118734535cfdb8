package attachments

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/GoSim-25-26J-441/projects-catalog/internal/metrics"
)

const (
	keyPrefix = "projects"
	tempScope = "temp"
)

// Upload is one attachment as received from a client.
type Upload struct {
	Data        []byte
	ContentType string
	Size        int64
	Filename    string
	OwnerID     string
}

// Empty reports whether no file content was supplied.
func (u *Upload) Empty() bool {
	return u == nil || (len(u.Data) == 0 && u.Size == 0)
}

func (u *Upload) size() int64 {
	if n := int64(len(u.Data)); n > u.Size {
		return n
	}
	return u.Size
}

// StoredObject identifies a persisted attachment.
type StoredObject struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// Store persists normalized images and deletes them by URL. Both
// implementations share the same contract:
//   - Upload validates, normalizes and persists, returning a URL that maps
//     back to the object key.
//   - Delete returns false for URLs outside the store's namespace or for
//     objects that are already gone, and true only when an object was removed.
type Store interface {
	Upload(ctx context.Context, u Upload) (*StoredObject, error)
	Delete(ctx context.Context, url string) bool
	Name() string
}

// Pipeline is the validate and normalize stage shared by every Store.
type Pipeline struct {
	Validator *Validator
	Codec     *Codec
	MaxWidth  int
	MaxHeight int
}

func NewPipeline(v *Validator, c *Codec, maxWidth, maxHeight int) Pipeline {
	if v == nil {
		v = NewValidator(DefaultMaxBytes, DefaultAllowedTypes)
	}
	if c == nil {
		c = NewCodec(DefaultJPEGQuality)
	}
	if maxWidth <= 0 {
		maxWidth = DefaultMaxWidth
	}
	if maxHeight <= 0 {
		maxHeight = DefaultMaxHeight
	}
	return Pipeline{Validator: v, Codec: c, MaxWidth: maxWidth, MaxHeight: maxHeight}
}

type prepared struct {
	key  string
	body []byte
}

func (p Pipeline) prepare(u Upload) (*prepared, error) {
	if err := p.Validator.Validate(u.ContentType, u.size()); err != nil {
		return nil, err
	}
	body, err := p.Codec.Normalize(u.Data, p.MaxWidth, p.MaxHeight)
	if err != nil {
		return nil, err
	}
	return &prepared{key: ObjectKey(u.OwnerID), body: body}, nil
}

// ObjectKey returns projects/{owner}/{uuid}.jpg. Owners that are empty or
// could escape their directory are scoped under "temp".
func ObjectKey(ownerID string) string {
	return fmt.Sprintf("%s/%s/%s.%s", keyPrefix, ownerScope(ownerID), uuid.NewString(), OutputExtension)
}

func ownerScope(ownerID string) string {
	s := strings.TrimSpace(ownerID)
	if s == "" || s == "." || s == ".." || strings.ContainsAny(s, `/\`) {
		return tempScope
	}
	return s
}

func observeUpload(backend string, err error) {
	outcome := "ok"
	switch {
	case err == nil:
	case errors.Is(err, ErrValidation):
		outcome = "rejected"
	case errors.Is(err, ErrDecode):
		outcome = "invalid_image"
	default:
		outcome = "backend_error"
	}
	metrics.RecordImageUpload(backend, outcome)
}
