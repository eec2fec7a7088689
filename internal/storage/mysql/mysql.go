// Package mysql is the MySQL backend, the database the form was built
// against. The Students table is expected to exist already; this package
// never creates or alters it.
package mysql

import (
	"github.com/aanand-mishra/students-form/internal/config"
	"github.com/aanand-mishra/students-form/internal/storage/conn"
	"github.com/aanand-mishra/students-form/internal/storage/sqlstore"

	// Registers the "mysql" driver with database/sql.
	_ "github.com/go-sql-driver/mysql"
)

// New returns a store that dials MySQL with the parameters in cfg on
// every operation. Nothing is opened until the first call.
func New(cfg *config.Config) *sqlstore.Store {
	provider := conn.NewProvider("mysql", cfg.Database.DSN())
	return sqlstore.New(provider, sqlstore.MySQL)
}
