// Package postgres is the PostgreSQL backend, reached through pgx's
// database/sql adapter. Like MySQL, the Students table must already exist.
package postgres

import (
	"github.com/aanand-mishra/students-form/internal/config"
	"github.com/aanand-mishra/students-form/internal/storage/conn"
	"github.com/aanand-mishra/students-form/internal/storage/sqlstore"

	// Registers the "pgx" driver with database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// New returns a store for the PostgreSQL database described by cfg,
// reached through the pgx stdlib driver. Nothing is dialed here.
func New(cfg *config.Config) *sqlstore.Store {
	provider := conn.NewProvider("pgx", cfg.Database.DSN())
	return sqlstore.New(provider, sqlstore.Postgres)
}
