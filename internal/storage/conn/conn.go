// Package conn is the connection provider: it opens a brand-new database
// connection for every caller and nothing is shared or reused.
//
// database/sql normally hands out connections from a pool kept inside a
// *sql.DB. Provider opens a dedicated *sql.DB per call, capped at one
// open connection and zero idle ones, and pins that single connection
// with db.Conn. Every statement of the caller runs on it, and closing it
// really closes the socket.
package conn

import (
	"context"
	"database/sql"
	"log/slog"

	apperrors "github.com/aanand-mishra/students-form/pkg/errors"
)

// Provider opens connections with fixed parameters.
type Provider struct {
	driver string
	dsn    string
}

// NewProvider returns a provider that dials driver with dsn on every
// Open. Nothing is dialed here.
func NewProvider(driver, dsn string) *Provider {
	return &Provider{driver: driver, dsn: dsn}
}

// Conn is one open connection. The caller owns it and must Close it.
type Conn struct {
	db   *sql.DB
	conn *sql.Conn
}

// Open dials a fresh connection and verifies it with a ping. The pinged
// connection is the one the caller gets. Any failure (auth, network,
// unknown driver) comes back as a ConnectionError.
func (p *Provider) Open(ctx context.Context) (*Conn, error) {
	db, err := sql.Open(p.driver, p.dsn)
	if err != nil {
		return nil, apperrors.NewConnectionError(err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(0)

	conn, err := db.Conn(ctx)
	if err != nil {
		db.Close()
		return nil, apperrors.NewConnectionError(err)
	}

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		db.Close()
		return nil, apperrors.NewConnectionError(err)
	}

	slog.Debug("database connection opened", slog.String("driver", p.driver))
	return &Conn{db: db, conn: conn}, nil
}

// ExecContext runs a statement without returning rows.
func (c *Conn) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return c.conn.ExecContext(ctx, query, args...)
}

// QueryContext runs a query; the rows must be closed before c.
func (c *Conn) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return c.conn.QueryContext(ctx, query, args...)
}

// PrepareContext prepares a statement bound to this connection; the
// statement must be closed before c.
func (c *Conn) PrepareContext(ctx context.Context, query string) (*sql.Stmt, error) {
	return c.conn.PrepareContext(ctx, query)
}

// Close releases the connection. Safe to call more than once.
func (c *Conn) Close() error {
	if c.db == nil {
		return nil
	}

	connErr := c.conn.Close()
	dbErr := c.db.Close()
	c.conn = nil
	c.db = nil

	slog.Debug("database connection closed")
	if connErr != nil {
		return connErr
	}
	return dbErr
}
