package form

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/aanand-mishra/students-form/internal/storage"
	"github.com/aanand-mishra/students-form/internal/types"
	apperrors "github.com/aanand-mishra/students-form/pkg/errors"
)

// NoSelection is the selected id while nothing is selected.
const NoSelection int64 = -1

var (
	// ErrDialogOpen is returned for any input while a dialog waits to be
	// dismissed or answered.
	ErrDialogOpen = errors.New("a dialog is open")
	// ErrDisabled is returned when the action's button is disabled in the
	// current state.
	ErrDisabled = errors.New("action is not available")
	// ErrNoSuchRow is returned by SelectRow for an index outside the table.
	ErrNoSuchRow = errors.New("no such row")
)

type DialogKind string

const (
	DialogInfo    DialogKind = "info"
	DialogError   DialogKind = "error"
	DialogConfirm DialogKind = "confirm"
)

// Dialog is one modal message. Dialogs queue up and are shown one at a
// time, oldest first.
type Dialog struct {
	Kind    DialogKind `json:"kind"`
	Title   string     `json:"title"`
	Message string     `json:"message"`
}

// View is everything needed to draw the window.
type View struct {
	State         string          `json:"state"`
	Fields        types.Fields    `json:"fields"`
	SelectedID    int64           `json:"selected_id"`
	SelectedRow   int             `json:"selected_row"`
	Students      []types.Student `json:"students"`
	Dialog        *Dialog         `json:"dialog,omitempty"`
	AddEnabled    bool            `json:"add_enabled"`
	UpdateEnabled bool            `json:"update_enabled"`
	DeleteEnabled bool            `json:"delete_enabled"`
}

// Controller holds the form state and serializes every user action
// behind one mutex, so actions never interleave: each is fully handled,
// store call and reload included, before the next one starts.
type Controller struct {
	mu    sync.Mutex
	store storage.Storage

	state       State
	fields      types.Fields
	selectedID  int64
	selectedRow int
	pickedRow   int
	snapshot    []types.Student
	dialogs     []Dialog
}

func NewController(store storage.Storage) *Controller {
	return &Controller{
		store:       store,
		selectedID:  NoSelection,
		selectedRow: -1,
		snapshot:    make([]types.Student, 0),
	}
}

// Load rebuilds the snapshot from the store. The window calls it once at
// startup; after that every successful mutation reloads on its own.
func (c *Controller) Load(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.reload(ctx)
}

// SelectRow handles a click on the zero-based table row. Rows are
// resolved against the snapshot the window is showing.
func (c *Controller) SelectRow(ctx context.Context, row int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.acceptInput(); err != nil {
		return err
	}
	if row < 0 || row >= len(c.snapshot) {
		return ErrNoSuchRow
	}

	c.pickedRow = row
	c.dispatch(ctx, SelectRow)
	return nil
}

// SubmitAdd takes the form text as typed and inserts it as a new student.
func (c *Controller) SubmitAdd(ctx context.Context, f types.Fields) error {
	return c.submit(ctx, SubmitAdd, &f)
}

// SubmitUpdate overwrites the selected student with the form text.
func (c *Controller) SubmitUpdate(ctx context.Context, f types.Fields) error {
	return c.submit(ctx, SubmitUpdate, &f)
}

// SubmitDelete asks for confirmation before deleting the selected
// student. Nothing is deleted until Confirm(ctx, true).
func (c *Controller) SubmitDelete(ctx context.Context) error {
	return c.submit(ctx, SubmitDelete, nil)
}

func (c *Controller) submit(ctx context.Context, ev Event, f *types.Fields) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.acceptInput(); err != nil {
		return err
	}
	if !Allowed(c.state, ev) {
		slog.Debug("action ignored",
			slog.String("event", ev.String()),
			slog.String("state", c.state.String()))
		return ErrDisabled
	}

	if f != nil {
		c.fields = *f
	}
	c.dispatch(ctx, ev)
	return nil
}

// Confirm answers the pending delete confirmation. Declining changes
// nothing and is not an error.
func (c *Controller) Confirm(ctx context.Context, yes bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.dialogs) == 0 || c.dialogs[0].Kind != DialogConfirm {
		return ErrDisabled
	}
	c.dialogs = c.dialogs[1:]

	if yes {
		c.dispatch(ctx, Confirm)
	} else {
		c.dispatch(ctx, Decline)
	}
	return nil
}

// Dismiss closes the oldest info or error dialog. A confirmation can only
// be closed by answering it.
func (c *Controller) Dismiss() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.dialogs) == 0 {
		return nil
	}
	if c.dialogs[0].Kind == DialogConfirm {
		return ErrDialogOpen
	}
	c.dialogs = c.dialogs[1:]
	return nil
}

// View returns a copy of everything the window draws.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	students := make([]types.Student, len(c.snapshot))
	copy(students, c.snapshot)

	v := View{
		State:       c.state.String(),
		Fields:      c.fields,
		SelectedID:  c.selectedID,
		SelectedRow: c.selectedRow,
		Students:    students,
	}
	if len(c.dialogs) > 0 {
		d := c.dialogs[0]
		v.Dialog = &d
	}

	idle := len(c.dialogs) == 0
	v.AddEnabled = idle && Allowed(c.state, SubmitAdd)
	v.UpdateEnabled = idle && Allowed(c.state, SubmitUpdate)
	v.DeleteEnabled = idle && Allowed(c.state, SubmitDelete)

	return v
}

func (c *Controller) acceptInput() error {
	if len(c.dialogs) > 0 {
		return ErrDialogOpen
	}
	return nil
}

// dispatch must be called with c.mu held.
func (c *Controller) dispatch(ctx context.Context, ev Event) {
	next, effects := Transition(c.state, ev)

	slog.Debug("form transition",
		slog.String("event", ev.String()),
		slog.String("from", c.state.String()),
		slog.String("to", next.String()))

	c.state = next
	for _, eff := range effects {
		c.apply(ctx, eff)
	}
}

func (c *Controller) apply(ctx context.Context, eff Effect) {
	switch eff {
	case Populate:
		s := c.snapshot[c.pickedRow]
		c.selectedID = s.ID
		c.selectedRow = c.pickedRow
		c.fields = types.FieldsOf(s)

	case Insert:
		name, age, course, err := Validate(c.fields)
		if err != nil {
			c.fail(ctx, "insert", err)
			return
		}
		id, err := c.store.CreateStudent(ctx, name, age, course)
		if err != nil {
			c.fail(ctx, "insert", err)
			return
		}
		slog.Info("student created", slog.Int64("id", id))
		c.succeed(ctx, "Student added successfully.")

	case Update:
		name, age, course, err := Validate(c.fields)
		if err != nil {
			c.fail(ctx, "update", err)
			return
		}
		if err := c.store.UpdateStudentByID(ctx, c.selectedID, name, age, course); err != nil {
			c.fail(ctx, "update", err)
			return
		}
		slog.Info("student updated", slog.Int64("id", c.selectedID))
		c.succeed(ctx, "Student updated successfully.")

	case AskConfirm:
		c.dialogs = append(c.dialogs, Dialog{
			Kind:    DialogConfirm,
			Title:   "Confirm Delete",
			Message: "Are you sure you want to delete this student?",
		})

	case Delete:
		if err := c.store.DeleteStudentByID(ctx, c.selectedID); err != nil {
			c.fail(ctx, "delete", err)
			return
		}
		slog.Info("student deleted", slog.Int64("id", c.selectedID))
		c.succeed(ctx, "Student deleted successfully.")

	case Reset:
		c.fields = types.Fields{}
		c.selectedID = NoSelection
		c.selectedRow = -1

	case Reload:
		c.reload(ctx)
	}
}

func (c *Controller) succeed(ctx context.Context, message string) {
	c.info(message)
	c.dispatch(ctx, Succeeded)
}

// fail reports err in a dialog and leaves the fields as they are.
func (c *Controller) fail(ctx context.Context, op string, err error) {
	slog.Error("student "+op+" failed", slog.String("error", err.Error()))
	c.showError(describe(err))
	c.dispatch(ctx, Failed)
}

// reload replaces the snapshot only once the fetch has succeeded, so a
// failed reload keeps showing the last good table.
func (c *Controller) reload(ctx context.Context) {
	students, err := c.store.ListStudents(ctx)
	if err != nil {
		slog.Error("error loading students", slog.String("error", err.Error()))
		c.showError("Failed to load students: " + err.Error())
		return
	}

	c.snapshot = students
}

func (c *Controller) info(message string) {
	c.dialogs = append(c.dialogs, Dialog{Kind: DialogInfo, Title: "✅ Success", Message: message})
}

func (c *Controller) showError(message string) {
	c.dialogs = append(c.dialogs, Dialog{Kind: DialogError, Title: "❌ Error", Message: message})
}

// describe turns err into dialog text. Validation messages are shown as
// they are; everything from the store is prefixed.
func describe(err error) string {
	var verr apperrors.ValidationError
	if errors.As(err, &verr) {
		return verr.Message
	}
	return "Error: " + err.Error()
}
