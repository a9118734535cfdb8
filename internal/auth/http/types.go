package http

import "context"

// AdminChecker answers the admin check endpoint.
type AdminChecker interface {
	IsAdmin(ctx context.Context, callerID string) (bool, error)
}

type Handler struct {
	gate AdminChecker
}

func New(gate AdminChecker) *Handler {
	return &Handler{
		gate: gate,
	}
}
