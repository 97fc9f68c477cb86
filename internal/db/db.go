// internal/db/db.go
package db

import (
	"database/sql"
	"log"

	_ "github.com/lib/pq"

	"github.com/minicrm/campaign-backend/internal/config"
)

// Open connects to Postgres and verifies the connection. The handle is
// injected into the repositories, there is no package-level singleton.
func Open(cfg *config.DatabaseConfig) (*sql.DB, error) {
	conn, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, err
	}

	if err = conn.Ping(); err != nil {
		return nil, err
	}

	log.Println("✅ Connected to database", cfg.Name)
	return conn, nil
}
