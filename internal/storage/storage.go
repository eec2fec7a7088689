// Package storage defines the Storage interface: the contract every
// database backend satisfies to serve the form.
//
// The controller depends only on this interface, so a test can hand it a
// fake that counts invocations and no real database is needed.
package storage

import (
	"context"
	"errors"

	"github.com/aanand-mishra/students-form/internal/types"
)

// ErrNotFound is returned by UpdateStudentByID and DeleteStudentByID when
// no row carries the given id.
var ErrNotFound = errors.New("no student found with that id")

// Storage is the record store contract.
//
// Every method opens its own connection and releases it before returning,
// on the error paths too.
type Storage interface {
	// ListStudents returns every student in the store's natural scan
	// order. Returns an empty slice (not nil) when the table is empty.
	ListStudents(ctx context.Context) ([]types.Student, error)

	// CreateStudent inserts a new student record and returns the
	// store-assigned ID.
	CreateStudent(ctx context.Context, name string, age int, course string) (int64, error)

	// UpdateStudentByID overwrites all three fields of the student.
	UpdateStudentByID(ctx context.Context, id int64, name string, age int, course string) error

	// DeleteStudentByID removes a student record permanently.
	DeleteStudentByID(ctx context.Context, id int64) error
}
