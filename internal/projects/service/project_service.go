package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/GoSim-25-26J-441/projects-catalog/internal/attachments"
	"github.com/GoSim-25-26J-441/projects-catalog/internal/logging"
	"github.com/GoSim-25-26J-441/projects-catalog/internal/projects/domain"
)

const (
	DefaultListLimit = 100
	MaxListLimit     = 1000
)

// Repository is the persistence the service needs. It is satisfied by
// *repository.ProjectRepository.
type Repository interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context, skip, limit int) ([]domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	SetImage(ctx context.Context, id, key, url string) (*domain.Project, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// Authorizer decides whether a caller may mutate the catalog.
type Authorizer interface {
	Authorize(ctx context.Context, callerID string) error
}

// ProjectService handles project-related business logic and keeps each
// project's image consistent with its record.
type ProjectService struct {
	repo  Repository
	store attachments.Store
	gate  Authorizer
}

// NewProjectService creates a new project service
func NewProjectService(repo Repository, store attachments.Store, gate Authorizer) *ProjectService {
	return &ProjectService{
		repo:  repo,
		store: store,
		gate:  gate,
	}
}

// Create inserts a project from a project_data payload. The record is
// persisted first; an attached image is uploaded afterwards under the new id
// and any upload failure only costs the image.
func (s *ProjectService) Create(ctx context.Context, callerID string, payload []byte, upload *attachments.Upload) (*domain.Project, error) {
	if err := s.gate.Authorize(ctx, callerID); err != nil {
		return nil, err
	}

	in, err := domain.ParseInput(payload)
	if err != nil {
		return nil, err
	}
	p, err := domain.NewProject(in, callerID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	log := logging.FromContext(ctx).With().Str("project_id", p.ID).Logger()
	log.Info().Str("title", p.Title).Msg("project created")

	if upload.Empty() {
		return p, nil
	}

	obj, err := s.upload(ctx, p.ID, upload)
	if err != nil {
		log.Warn().Err(err).Str("backend", s.store.Name()).Msg("image upload failed, project kept without image")
		return p, nil
	}

	updated, err := s.repo.SetImage(ctx, p.ID, obj.Key, obj.URL)
	if err != nil {
		log.Warn().Err(err).Str("url", obj.URL).Msg("failed to record image, discarding upload")
		if !s.store.Delete(ctx, obj.URL) {
			log.Warn().Str("url", obj.URL).Msg("orphaned image left in storage")
		}
		return p, nil
	}
	return updated, nil
}

// Update applies a partial payload; an empty payload changes no fields. When
// an image is attached the current object is deleted before the replacement
// is uploaded; if that upload then fails the project is left without an
// image.
func (s *ProjectService) Update(ctx context.Context, callerID, id string, payload []byte, upload *attachments.Upload) (*domain.Project, error) {
	if err := s.gate.Authorize(ctx, callerID); err != nil {
		return nil, err
	}

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// an image-only update carries no project_data
	if len(bytes.TrimSpace(payload)) == 0 {
		payload = []byte(`{}`)
	}
	in, err := domain.ParseInput(payload)
	if err != nil {
		return nil, err
	}
	if err := in.Apply(p); err != nil {
		return nil, err
	}

	log := logging.FromContext(ctx).With().Str("project_id", p.ID).Logger()
	var uploaded *attachments.StoredObject

	if !upload.Empty() {

		if p.HasImage() {
			old := *p.ImageURL
			if s.store.Delete(ctx, old) {
				p.SetImage("", "")
			} else {
				log.Warn().Str("url", old).Msg("previous image not removed from storage")
			}
		}

		obj, err := s.upload(ctx, p.ID, upload)
		if err != nil {
			log.Warn().Err(err).Str("backend", s.store.Name()).Msg("image upload failed during update")
		} else {
			p.SetImage(obj.Key, obj.URL)
			uploaded = obj
		}
	}

	if err := s.repo.Update(ctx, p); err != nil {
		if uploaded != nil && !s.store.Delete(ctx, uploaded.URL) {
			log.Warn().Str("url", uploaded.URL).Msg("orphaned image left in storage")
		}
		return nil, err
	}
	return p, nil
}

// ReplaceImage uploads a new image for an existing project. Unlike Create and
// Update, upload errors are returned. The previous object is removed only
// after the new one is recorded.
func (s *ProjectService) ReplaceImage(ctx context.Context, callerID, id string, upload *attachments.Upload) (*domain.Project, error) {
	if err := s.gate.Authorize(ctx, callerID); err != nil {
		return nil, err
	}
	if upload.Empty() {
		return nil, fmt.Errorf("%w: image file is required", domain.ErrMalformedInput)
	}

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	obj, err := s.upload(ctx, p.ID, upload)
	if err != nil {
		return nil, err
	}

	log := logging.FromContext(ctx).With().Str("project_id", p.ID).Logger()

	updated, err := s.repo.SetImage(ctx, p.ID, obj.Key, obj.URL)
	if err != nil {
		if !s.store.Delete(ctx, obj.URL) {
			log.Warn().Str("url", obj.URL).Msg("orphaned image left in storage")
		}
		return nil, err
	}

	if p.HasImage() && !s.store.Delete(ctx, *p.ImageURL) {
		log.Warn().Str("url", *p.ImageURL).Msg("previous image not removed from storage")
	}
	return updated, nil
}

// RemoveImage deletes the project's image object and clears its image fields.
func (s *ProjectService) RemoveImage(ctx context.Context, callerID, id string) (*domain.Project, error) {
	if err := s.gate.Authorize(ctx, callerID); err != nil {
		return nil, err
	}

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.HasImage() {
		return p, nil
	}

	if !s.store.Delete(ctx, *p.ImageURL) {
		logging.FromContext(ctx).Warn().
			Str("project_id", p.ID).
			Str("url", *p.ImageURL).
			Msg("image not removed from storage")
	}
	return s.repo.SetImage(ctx, p.ID, "", "")
}

// Delete removes the project and, best effort, its image.
func (s *ProjectService) Delete(ctx context.Context, callerID, id string) error {
	if err := s.gate.Authorize(ctx, callerID); err != nil {
		return err
	}

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	log := logging.FromContext(ctx).With().Str("project_id", p.ID).Logger()

	if p.HasImage() && !s.store.Delete(ctx, *p.ImageURL) {
		log.Warn().Str("url", *p.ImageURL).Msg("image not removed from storage, deleting project anyway")
	}

	ok, err := s.repo.Delete(ctx, p.ID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	log.Info().Msg("project deleted")
	return nil
}

func (s *ProjectService) Get(ctx context.Context, id string) (*domain.Project, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns a page of projects. A non-positive limit selects the default.
func (s *ProjectService) List(ctx context.Context, skip, limit int) ([]domain.Project, error) {
	if skip < 0 {
		skip = 0
	}
	switch {
	case limit <= 0:
		limit = DefaultListLimit
	case limit > MaxListLimit:
		limit = MaxListLimit
	}
	return s.repo.List(ctx, skip, limit)
}

func (s *ProjectService) upload(ctx context.Context, projectID string, u *attachments.Upload) (*attachments.StoredObject, error) {
	req := *u
	req.OwnerID = projectID
	obj, err := s.store.Upload(ctx, req)
	if err != nil {
		return nil, err
	}
	if obj == nil || obj.URL == "" {
		return nil, fmt.Errorf("%w: storage returned no url", attachments.ErrBackend)
	}
	return obj, nil
}
