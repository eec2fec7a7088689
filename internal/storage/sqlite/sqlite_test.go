package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/aanand-mishra/students-form/internal/config"
	"github.com/aanand-mishra/students-form/internal/storage"
	"github.com/aanand-mishra/students-form/internal/storage/conn"
	"github.com/aanand-mishra/students-form/internal/storage/sqlstore"
	"github.com/aanand-mishra/students-form/internal/types"
	apperrors "github.com/aanand-mishra/students-form/pkg/errors"
)

func newStore(t *testing.T) *sqlstore.Store {
	t.Helper()

	cfg := &config.Config{}
	cfg.Database.Driver = config.DriverSQLite
	cfg.Database.Path = filepath.Join(t.TempDir(), "data", "students.db")

	store, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return store
}

func TestStudentLifecycle(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	students, err := store.ListStudents(ctx)
	if err != nil {
		t.Fatalf("ListStudents: %v", err)
	}
	if students == nil || len(students) != 0 {
		t.Fatalf("empty table: got %#v, want empty non-nil slice", students)
	}

	id, err := store.CreateStudent(ctx, "Ada", 30, "CS")
	if err != nil {
		t.Fatalf("CreateStudent: %v", err)
	}
	if id != 1 {
		t.Errorf("first id = %d, want 1", id)
	}

	assertRows(t, store, []types.Student{{ID: 1, Name: "Ada", Age: 30, Course: "CS"}})

	if err := store.UpdateStudentByID(ctx, id, "Ada L.", 31, "CS"); err != nil {
		t.Fatalf("UpdateStudentByID: %v", err)
	}

	assertRows(t, store, []types.Student{{ID: 1, Name: "Ada L.", Age: 31, Course: "CS"}})

	if err := store.DeleteStudentByID(ctx, id); err != nil {
		t.Fatalf("DeleteStudentByID: %v", err)
	}

	assertRows(t, store, []types.Student{})
}

func TestUpdateAndDeleteLeaveOthersAlone(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	ids := make([]int64, 0, 3)
	for _, name := range []string{"Ada", "Grace", "Edsger"} {
		id, err := store.CreateStudent(ctx, name, 40, "Math")
		if err != nil {
			t.Fatalf("CreateStudent(%s): %v", name, err)
		}
		ids = append(ids, id)
	}
	if ids[0] == ids[1] || ids[1] == ids[2] || ids[0] == ids[2] {
		t.Fatalf("ids not unique: %v", ids)
	}

	if err := store.UpdateStudentByID(ctx, ids[1], "Grace H.", 41, "Navy"); err != nil {
		t.Fatalf("UpdateStudentByID: %v", err)
	}
	if err := store.DeleteStudentByID(ctx, ids[2]); err != nil {
		t.Fatalf("DeleteStudentByID: %v", err)
	}

	assertRows(t, store, []types.Student{
		{ID: ids[0], Name: "Ada", Age: 40, Course: "Math"},
		{ID: ids[1], Name: "Grace H.", Age: 41, Course: "Navy"},
	})
}

func TestUpdateWithSameValues(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	id, err := store.CreateStudent(ctx, "Ada", 30, "CS")
	if err != nil {
		t.Fatalf("CreateStudent: %v", err)
	}
	if err := store.UpdateStudentByID(ctx, id, "Ada", 30, "CS"); err != nil {
		t.Errorf("rewriting identical values: err = %v, want nil", err)
	}
}

func TestMissingID(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	if err := store.UpdateStudentByID(ctx, 42, "Nobody", 1, "None"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("update missing id: err = %v, want ErrNotFound", err)
	}
	if err := store.DeleteStudentByID(ctx, 42); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("delete missing id: err = %v, want ErrNotFound", err)
	}
}

func TestQueryErrors(t *testing.T) {
	ctx := context.Background()

	// A database without the Students table.
	provider := conn.NewProvider("sqlite3", filepath.Join(t.TempDir(), "empty.db"))
	store := sqlstore.New(provider, sqlstore.SQLite)

	if _, err := store.ListStudents(ctx); !errors.Is(err, apperrors.ErrQuery) {
		t.Errorf("ListStudents: err = %v, want a query error", err)
	}
	if _, err := store.CreateStudent(ctx, "Ada", 30, "CS"); !errors.Is(err, apperrors.ErrQuery) {
		t.Errorf("CreateStudent: err = %v, want a query error", err)
	}
}

func TestNamesAreData(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	name := "Robert'); DROP TABLE Students; --"
	if _, err := store.CreateStudent(ctx, name, 10, "CS"); err != nil {
		t.Fatalf("CreateStudent: %v", err)
	}

	students, err := store.ListStudents(ctx)
	if err != nil {
		t.Fatalf("ListStudents: %v", err)
	}
	if len(students) != 1 || students[0].Name != name {
		t.Errorf("students = %#v", students)
	}
}

func assertRows(t *testing.T, store *sqlstore.Store, want []types.Student) {
	t.Helper()

	got, err := store.ListStudents(context.Background())
	if err != nil {
		t.Fatalf("ListStudents: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("ListStudents = %#v, want %#v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d = %#v, want %#v", i, got[i], want[i])
		}
	}
}
