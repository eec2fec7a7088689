// Package form owns everything the window shows: the three text fields,
// the selected row, the table snapshot and the dialogs. It is written
// without any UI code so the whole record lifecycle can be driven and
// tested directly.
//
// The lifecycle is a small state machine. Transition is a pure function
// from (state, event) to (next state, effects); the Controller executes
// the effects, which may in turn feed Succeeded or Failed back in.
//
//	Idle      --SelectRow-->     Editing    [Populate]
//	Idle      --SubmitAdd-->     Idle       [Insert]
//	Editing   --SelectRow-->     Editing    [Populate]
//	Editing   --SubmitUpdate-->  Editing    [Update]
//	Editing   --SubmitDelete-->  Confirming [AskConfirm]
//	Confirming --Confirm-->      Editing    [Delete]
//	Confirming --Decline-->      Editing
//	any       --Succeeded-->     Idle       [Reset, Reload]
//	any       --Failed-->        unchanged
//
// Every other pair is ignored: the state is kept and no effect runs.
package form

// State is the controller's mode.
type State int

const (
	// Idle: nothing selected. Add is enabled, Update and Delete are not.
	Idle State = iota
	// Editing: a row is selected and its values fill the form. Add is
	// disabled, Update and Delete are enabled.
	Editing
	// Confirming is Editing with the delete confirmation on screen. Only
	// the answer to that question is accepted.
	Confirming
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Editing:
		return "editing"
	case Confirming:
		return "confirming"
	default:
		return "unknown"
	}
}

// Event is a user action or the outcome of a mutation effect.
type Event int

const (
	SelectRow Event = iota
	SubmitAdd
	SubmitUpdate
	SubmitDelete
	Confirm
	Decline
	// Succeeded and Failed report the outcome of a mutation effect.
	Succeeded
	Failed
)

func (e Event) String() string {
	switch e {
	case SelectRow:
		return "select_row"
	case SubmitAdd:
		return "submit_add"
	case SubmitUpdate:
		return "submit_update"
	case SubmitDelete:
		return "submit_delete"
	case Confirm:
		return "confirm"
	case Decline:
		return "decline"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Effect is work the Controller performs after a transition.
type Effect int

const (
	// Populate caches the picked row's id and copies its values into the
	// fields.
	Populate Effect = iota
	// Insert, Update and Delete validate where needed, call the store and
	// report back with Succeeded or Failed.
	Insert
	Update
	Delete
	// AskConfirm opens the delete confirmation dialog.
	AskConfirm
	// Reset clears the fields and drops the selection.
	Reset
	// Reload rebuilds the snapshot from the store.
	Reload
)

func (e Effect) String() string {
	switch e {
	case Populate:
		return "populate"
	case Insert:
		return "insert"
	case Update:
		return "update"
	case Delete:
		return "delete"
	case AskConfirm:
		return "ask_confirm"
	case Reset:
		return "reset"
	case Reload:
		return "reload"
	default:
		return "unknown"
	}
}

// Transition computes the next state and the effects to run for ev.
func Transition(s State, ev Event) (State, []Effect) {
	switch ev {
	case Succeeded:
		return Idle, []Effect{Reset, Reload}
	case Failed:
		return s, nil
	}

	switch s {
	case Idle:
		switch ev {
		case SelectRow:
			return Editing, []Effect{Populate}
		case SubmitAdd:
			return Idle, []Effect{Insert}
		}

	case Editing:
		switch ev {
		case SelectRow:
			return Editing, []Effect{Populate}
		case SubmitUpdate:
			return Editing, []Effect{Update}
		case SubmitDelete:
			return Confirming, []Effect{AskConfirm}
		}

	case Confirming:
		switch ev {
		case Confirm:
			return Editing, []Effect{Delete}
		case Decline:
			return Editing, nil
		}
	}

	return s, nil
}

// Allowed reports whether ev does anything in state s. The window uses it
// to enable and disable its buttons.
func Allowed(s State, ev Event) bool {
	next, effects := Transition(s, ev)
	return next != s || len(effects) > 0
}
