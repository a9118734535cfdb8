package postgres

import (
	"fmt"

	"github.com/GoSim-25-26J-441/projects-catalog/config"
)

// DSN prefers DATABASE_URL and falls back to the discrete DB_* settings.
// Both lib/pq and pgx accept either form.
func DSN(cfg *config.DatabaseConfig) string {
	if cfg.URL != "" {
		return cfg.URL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name,
	)
}
