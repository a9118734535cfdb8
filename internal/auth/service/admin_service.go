package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/GoSim-25-26J-441/projects-catalog/internal/auth/domain"
)

// AdminStore is the admin table as seen by operators.
type AdminStore interface {
	GetBySSOID(ctx context.Context, ssoID string) (*domain.Admin, error)
	Upsert(ctx context.Context, ssoID string) (*domain.Admin, error)
	Deactivate(ctx context.Context, ssoID string) error
	List(ctx context.Context) ([]domain.Admin, error)
}

// CacheInvalidator drops a memoized decision.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, ssoID string) error
}

// AdminService manages the admin set and keeps the decision cache honest.
type AdminService struct {
	store AdminStore
	cache CacheInvalidator
}

func NewAdminService(store AdminStore, cache CacheInvalidator) *AdminService {
	return &AdminService{store: store, cache: cache}
}

// Grant adds ssoID as an active admin, reactivating it if needed.
func (s *AdminService) Grant(ctx context.Context, ssoID string) (*domain.Admin, error) {
	ssoID = strings.TrimSpace(ssoID)
	if ssoID == "" {
		return nil, fmt.Errorf("sso id is required")
	}

	admin, err := s.store.Upsert(ctx, ssoID)
	if err != nil {
		return nil, err
	}
	return admin, s.invalidate(ctx, ssoID)
}

func (s *AdminService) Revoke(ctx context.Context, ssoID string) error {
	ssoID = strings.TrimSpace(ssoID)
	if err := s.store.Deactivate(ctx, ssoID); err != nil {
		return err
	}
	return s.invalidate(ctx, ssoID)
}

// Get returns one admin whether or not it is active.
func (s *AdminService) Get(ctx context.Context, ssoID string) (*domain.Admin, error) {
	return s.store.GetBySSOID(ctx, strings.TrimSpace(ssoID))
}

func (s *AdminService) List(ctx context.Context) ([]domain.Admin, error) {
	return s.store.List(ctx)
}

func (s *AdminService) invalidate(ctx context.Context, ssoID string) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Invalidate(ctx, ssoID)
}
