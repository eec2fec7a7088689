// Package sqlstore issues the four Students statements over a fresh
// connection per call. The MySQL, PostgreSQL and SQLite backends are thin
// constructors around Store that differ only in their Dialect.
//
// Every method follows the same shape:
//
//	open connection → defer close → prepare → defer stmt close → exec/query
//
// so the connection is released on every exit path, including errors.
package sqlstore

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/aanand-mishra/students-form/internal/storage"
	"github.com/aanand-mishra/students-form/internal/storage/conn"
	"github.com/aanand-mishra/students-form/internal/types"
	apperrors "github.com/aanand-mishra/students-form/pkg/errors"
)

// Dialect captures the few places where SQL differs between drivers.
type Dialect struct {
	Name string

	// Dollar placeholders ($1, $2, ...) instead of "?".
	Dollar bool

	// ReturningID makes CreateStudent read the new id from
	// "INSERT ... RETURNING id" instead of LastInsertId, which pgx does
	// not support.
	ReturningID bool
}

var (
	MySQL    = Dialect{Name: "mysql"}
	SQLite   = Dialect{Name: "sqlite"}
	Postgres = Dialect{Name: "postgres", Dollar: true, ReturningID: true}
)

// rebind rewrites "?" placeholders for dialects that number them.
func (d Dialect) rebind(query string) string {
	if !d.Dollar {
		return query
	}

	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

const (
	listQuery   = "SELECT id, name, age, course FROM Students"
	insertQuery = "INSERT INTO Students (name, age, course) VALUES (?, ?, ?)"
	updateQuery = "UPDATE Students SET name = ?, age = ?, course = ? WHERE id = ?"
	deleteQuery = "DELETE FROM Students WHERE id = ?"
)

// Store implements storage.Storage.
type Store struct {
	provider *conn.Provider
	dialect  Dialect
}

var _ storage.Storage = (*Store)(nil)

// New returns a store that opens a connection from provider for every
// call and speaks dialect.
func New(provider *conn.Provider, dialect Dialect) *Store {
	return &Store{provider: provider, dialect: dialect}
}

// Exec runs a statement on a connection of its own. The backends use it
// for one-off setup such as creating the SQLite table.
func (s *Store) Exec(ctx context.Context, query string) error {
	c, err := s.provider.Open(ctx)
	if err != nil {
		return err
	}
	defer c.Close()

	if _, err := c.ExecContext(ctx, query); err != nil {
		return apperrors.NewQueryError("Exec", err)
	}
	return nil
}

// ListStudents scans the whole table. The column list is explicit so a
// column added later cannot shift Scan's ordering.
func (s *Store) ListStudents(ctx context.Context) ([]types.Student, error) {
	c, err := s.provider.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer c.Close()

	rows, err := c.QueryContext(ctx, listQuery)
	if err != nil {
		return nil, apperrors.NewQueryError("ListStudents", fmt.Errorf("query: %w", err))
	}
	defer rows.Close()

	students := make([]types.Student, 0)

	for rows.Next() {
		var student types.Student

		if err := rows.Scan(
			&student.ID,
			&student.Name,
			&student.Age,
			&student.Course,
		); err != nil {
			return nil, apperrors.NewQueryError("ListStudents", fmt.Errorf("scan row: %w", err))
		}

		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewQueryError("ListStudents", fmt.Errorf("rows iteration: %w", err))
	}

	slog.Debug("students listed",
		slog.String("dialect", s.dialect.Name),
		slog.Int("count", len(students)))

	return students, nil
}

// CreateStudent binds the three values positionally; user text never
// becomes part of the SQL.
func (s *Store) CreateStudent(ctx context.Context, name string, age int, course string) (int64, error) {
	c, err := s.provider.Open(ctx)
	if err != nil {
		return 0, err
	}
	defer c.Close()

	query := insertQuery
	if s.dialect.ReturningID {
		query += " RETURNING id"
	}

	stmt, err := c.PrepareContext(ctx, s.dialect.rebind(query))
	if err != nil {
		return 0, apperrors.NewQueryError("CreateStudent", fmt.Errorf("prepare: %w", err))
	}
	defer stmt.Close()

	if s.dialect.ReturningID {
		var id int64
		if err := stmt.QueryRowContext(ctx, name, age, course).Scan(&id); err != nil {
			return 0, apperrors.NewQueryError("CreateStudent", fmt.Errorf("exec: %w", err))
		}
		return id, nil
	}

	result, err := stmt.ExecContext(ctx, name, age, course)
	if err != nil {
		return 0, apperrors.NewQueryError("CreateStudent", fmt.Errorf("exec: %w", err))
	}

	lastID, err := result.LastInsertId()
	if err != nil {
		return 0, apperrors.NewQueryError("CreateStudent", fmt.Errorf("last insert id: %w", err))
	}

	return lastID, nil
}

// UpdateStudentByID overwrites the row with the given id. It returns
// storage.ErrNotFound when no row has that id.
func (s *Store) UpdateStudentByID(ctx context.Context, id int64, name string, age int, course string) error {
	c, err := s.provider.Open(ctx)
	if err != nil {
		return err
	}
	defer c.Close()

	stmt, err := c.PrepareContext(ctx, s.dialect.rebind(updateQuery))
	if err != nil {
		return apperrors.NewQueryError("UpdateStudentByID", fmt.Errorf("prepare: %w", err))
	}
	defer stmt.Close()

	// Argument order matches the placeholders: name, age, course, id.
	result, err := stmt.ExecContext(ctx, name, age, course, id)
	if err != nil {
		return apperrors.NewQueryError("UpdateStudentByID", fmt.Errorf("exec: %w", err))
	}

	return affectedOne(result, "UpdateStudentByID")
}

// DeleteStudentByID removes the row with the given id, or returns
// storage.ErrNotFound.
func (s *Store) DeleteStudentByID(ctx context.Context, id int64) error {
	c, err := s.provider.Open(ctx)
	if err != nil {
		return err
	}
	defer c.Close()

	stmt, err := c.PrepareContext(ctx, s.dialect.rebind(deleteQuery))
	if err != nil {
		return apperrors.NewQueryError("DeleteStudentByID", fmt.Errorf("prepare: %w", err))
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx, id)
	if err != nil {
		return apperrors.NewQueryError("DeleteStudentByID", fmt.Errorf("exec: %w", err))
	}

	return affectedOne(result, "DeleteStudentByID")
}

type rowsAffecter interface {
	RowsAffected() (int64, error)
}

// affectedOne turns "zero rows touched" into storage.ErrNotFound.
func affectedOne(result rowsAffecter, op string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewQueryError(op, fmt.Errorf("rows affected: %w", err))
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}
