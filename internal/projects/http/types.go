package http

import (
	"context"

	"github.com/GoSim-25-26J-441/projects-catalog/internal/attachments"
	"github.com/GoSim-25-26J-441/projects-catalog/internal/projects/domain"
)

// ProjectService is implemented by *service.ProjectService.
type ProjectService interface {
	Create(ctx context.Context, callerID string, payload []byte, upload *attachments.Upload) (*domain.Project, error)
	Update(ctx context.Context, callerID, id string, payload []byte, upload *attachments.Upload) (*domain.Project, error)
	ReplaceImage(ctx context.Context, callerID, id string, upload *attachments.Upload) (*domain.Project, error)
	RemoveImage(ctx context.Context, callerID, id string) (*domain.Project, error)
	Delete(ctx context.Context, callerID, id string) error
	Get(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context, skip, limit int) ([]domain.Project, error)
}

// Handler bundles the dependencies for projects HTTP endpoints.
type Handler struct {
	svc      ProjectService
	maxBytes int64
}

// New builds the handler. maxBytes bounds how much of an upload is read into
// memory; larger files are still reported with their true size.
func New(svc ProjectService, maxBytes int64) *Handler {
	if maxBytes <= 0 {
		maxBytes = attachments.DefaultMaxBytes
	}
	return &Handler{svc: svc, maxBytes: maxBytes}
}
