package form

import (
	"context"

	"github.com/aanand-mishra/students-form/internal/storage"
	"github.com/aanand-mishra/students-form/internal/types"
)

// fakeStore is an in-memory storage.Storage that counts every call.
type fakeStore struct {
	students []types.Student
	nextID   int64
	calls    map[string]int

	listErr   error
	createErr error
	updateErr error
	deleteErr error
}

func newFakeStore(students ...types.Student) *fakeStore {
	s := &fakeStore{calls: map[string]int{}, nextID: 1}
	for _, st := range students {
		s.students = append(s.students, st)
		if st.ID >= s.nextID {
			s.nextID = st.ID + 1
		}
	}
	return s
}

func (s *fakeStore) mutations() int {
	return s.calls["create"] + s.calls["update"] + s.calls["delete"]
}

func (s *fakeStore) ListStudents(ctx context.Context) ([]types.Student, error) {
	s.calls["list"]++
	if s.listErr != nil {
		return nil, s.listErr
	}
	out := make([]types.Student, len(s.students))
	copy(out, s.students)
	return out, nil
}

func (s *fakeStore) CreateStudent(ctx context.Context, name string, age int, course string) (int64, error) {
	s.calls["create"]++
	if s.createErr != nil {
		return 0, s.createErr
	}
	id := s.nextID
	s.nextID++
	s.students = append(s.students, types.Student{ID: id, Name: name, Age: age, Course: course})
	return id, nil
}

func (s *fakeStore) UpdateStudentByID(ctx context.Context, id int64, name string, age int, course string) error {
	s.calls["update"]++
	if s.updateErr != nil {
		return s.updateErr
	}
	for i := range s.students {
		if s.students[i].ID == id {
			s.students[i] = types.Student{ID: id, Name: name, Age: age, Course: course}
			return nil
		}
	}
	return storage.ErrNotFound
}

func (s *fakeStore) DeleteStudentByID(ctx context.Context, id int64) error {
	s.calls["delete"]++
	if s.deleteErr != nil {
		return s.deleteErr
	}
	for i := range s.students {
		if s.students[i].ID == id {
			s.students = append(s.students[:i], s.students[i+1:]...)
			return nil
		}
	}
	return storage.ErrNotFound
}
