package service

import (
	"context"
	"strings"

	"github.com/GoSim-25-26J-441/projects-catalog/internal/auth/domain"
	"github.com/GoSim-25-26J-441/projects-catalog/internal/logging"
)

// AdminLookup answers whether an identifier belongs to an active admin.
type AdminLookup interface {
	IsActive(ctx context.Context, ssoID string) (bool, error)
}

// DecisionCache stores admin decisions for a short time.
type DecisionCache interface {
	Get(ctx context.Context, ssoID string) (active, found bool, err error)
	Set(ctx context.Context, ssoID string, active bool) error
}

// Gate is the precondition for every mutating catalog operation.
type Gate struct {
	admins AdminLookup
	cache  DecisionCache
}

// NewGate builds a gate. cache may be nil.
func NewGate(admins AdminLookup, cache DecisionCache) *Gate {
	return &Gate{admins: admins, cache: cache}
}

// Authorize returns ErrUnauthenticated for an empty caller and ErrForbidden
// for callers that are unknown or inactive.
func (g *Gate) Authorize(ctx context.Context, callerID string) error {
	if strings.TrimSpace(callerID) == "" {
		return domain.ErrUnauthenticated
	}

	ok, err := g.IsAdmin(ctx, callerID)
	if err != nil {
		return err
	}
	if !ok {
		logging.FromContext(ctx).Warn().Str("caller_id", callerID).Msg("mutation denied")
		return domain.ErrForbidden
	}
	return nil
}

// IsAdmin reports whether callerID is an active admin. Cache failures fall
// through to the lookup.
func (g *Gate) IsAdmin(ctx context.Context, callerID string) (bool, error) {
	callerID = strings.TrimSpace(callerID)
	if callerID == "" {
		return false, nil
	}

	log := logging.FromContext(ctx)

	if g.cache != nil {
		active, found, err := g.cache.Get(ctx, callerID)
		if err != nil {
			log.Warn().Err(err).Msg("admin cache read failed")
		} else if found {
			return active, nil
		}
	}

	active, err := g.admins.IsActive(ctx, callerID)
	if err != nil {
		return false, err
	}

	if g.cache != nil {
		if err := g.cache.Set(ctx, callerID, active); err != nil {
			log.Warn().Err(err).Msg("admin cache write failed")
		}
	}
	return active, nil
}
