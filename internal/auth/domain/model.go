package domain

import "time"

// Admin is a caller identifier allowed to mutate the catalog.
// Only rows with IsActive set authorize anything.
type Admin struct {
	SSOID    string    `json:"sso_id" db:"sso_id"`
	IsActive bool      `json:"is_active" db:"is_active"`
	AddedAt  time.Time `json:"added_at" db:"added_at"`
}
