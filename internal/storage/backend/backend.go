// Package backend picks the storage implementation named by the
// configuration.
package backend

import (
	"fmt"

	"github.com/aanand-mishra/students-form/internal/config"
	"github.com/aanand-mishra/students-form/internal/storage"
	"github.com/aanand-mishra/students-form/internal/storage/mysql"
	"github.com/aanand-mishra/students-form/internal/storage/postgres"
	"github.com/aanand-mishra/students-form/internal/storage/sqlite"
)

// Open builds the store for cfg.Database.Driver. Only the sqlite store
// touches the database here; the others dial on first use.
func Open(cfg *config.Config) (storage.Storage, error) {
	switch cfg.Database.Driver {
	case config.DriverMySQL:
		return mysql.New(cfg), nil
	case config.DriverPostgres:
		return postgres.New(cfg), nil
	case config.DriverSQLite:
		store, err := sqlite.New(cfg)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("backend.Open: unknown driver %q", cfg.Database.Driver)
	}
}
