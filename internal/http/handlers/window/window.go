// Package window serves the Students form as a page on a local HTTP
// server: the form fields, the Add/Update/Delete buttons, the table of
// all students and, on top of everything, the oldest open dialog.
//
// HANDLER PATTERN (CLOSURE / FACTORY):
// ────────────────────────────────────────────────
// Each exported function receives the controller once at startup and
// returns the http.HandlerFunc the router calls on every request:
//
//	router.HandleFunc("POST /add", window.Add(ctrl))
//
// Every action handler answers with 303 See Other back to "/", so the
// browser re-renders the whole window after each user action. Input the
// controller refuses (a disabled button, input behind an open dialog) is
// dropped the same way a disabled widget would drop a click.
package window

import (
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aanand-mishra/students-form/internal/form"
	"github.com/aanand-mishra/students-form/internal/types"
	"github.com/aanand-mishra/students-form/internal/utils/response"
)

//go:embed templates/window.html
var templates embed.FS

var page = template.Must(template.ParseFS(templates, "templates/window.html"))

// Register wires every window route onto router.
func Register(router *http.ServeMux, ctrl *form.Controller) {
	router.HandleFunc("GET /{$}", Index(ctrl))
	router.HandleFunc("GET /state", State(ctrl))
	router.HandleFunc("POST /add", Add(ctrl))
	router.HandleFunc("POST /update", Update(ctrl))
	router.HandleFunc("POST /delete", Delete(ctrl))
	router.HandleFunc("POST /select/{row}", Select(ctrl))
	router.HandleFunc("POST /confirm", Confirm(ctrl))
	router.HandleFunc("POST /dismiss", Dismiss(ctrl))
}

// Index handles GET / and draws the window from the current view.
func Index(ctrl *form.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.WriteHTML(w, http.StatusOK, page, ctrl.View())
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// State handles GET /state
// Returns the same view the page is drawn from, as JSON:
//
//	{ "state": "editing", "selected_id": 1, "students": [...], ... }
//
// ─────────────────────────────────────────────────────────────────────────────
func State(ctrl *form.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.WriteJSON(w, http.StatusOK, ctrl.View())
	}
}

// Add handles POST /add with the form fields name, age and course.
func Add(ctrl *form.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("adding a student")

		f, ok := readFields(w, r)
		if !ok {
			return
		}

		done(w, r, "add", ctrl.SubmitAdd(r.Context(), f))
	}
}

// Update handles POST /update; the target is the selected row.
func Update(ctrl *form.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("updating a student")

		f, ok := readFields(w, r)
		if !ok {
			return
		}

		done(w, r, "update", ctrl.SubmitUpdate(r.Context(), f))
	}
}

// Delete handles POST /delete. It only opens the confirmation dialog;
// the row goes away on POST /confirm with answer=yes.
func Delete(ctrl *form.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("deleting a student")

		done(w, r, "delete", ctrl.SubmitDelete(r.Context()))
	}
}

// Select handles POST /select/{row}, {row} being the zero-based table row.
func Select(ctrl *form.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		row := r.PathValue("row")
		slog.Info("selecting a row", slog.String("row", row))

		n, err := strconv.Atoi(row)
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("invalid row: must be an integer")))
			return
		}

		err = ctrl.SelectRow(r.Context(), n)
		if errors.Is(err, form.ErrNoSuchRow) {
			response.WriteJSON(w, http.StatusNotFound, response.GeneralError(err))
			return
		}

		done(w, r, "select", err)
	}
}

// Confirm handles POST /confirm with answer=yes or answer=no.
func Confirm(ctrl *form.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		answer := r.FormValue("answer")
		if answer != "yes" && answer != "no" {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("answer must be yes or no")))
			return
		}

		done(w, r, "confirm", ctrl.Confirm(r.Context(), answer == "yes"))
	}
}

// Dismiss handles POST /dismiss and closes the oldest info or error dialog.
func Dismiss(ctrl *form.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		done(w, r, "dismiss", ctrl.Dismiss())
	}
}

func readFields(w http.ResponseWriter, r *http.Request) (types.Fields, bool) {
	if err := r.ParseForm(); err != nil {
		response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
		return types.Fields{}, false
	}

	return types.Fields{
		Name:   r.PostForm.Get("name"),
		Age:    r.PostForm.Get("age"),
		Course: r.PostForm.Get("course"),
	}, true
}

// done sends the browser back to the window. err is only ever a refusal
// of the input; outcomes of the action itself are in the dialogs.
func done(w http.ResponseWriter, r *http.Request, action string, err error) {
	if err != nil {
		slog.Debug("input refused",
			slog.String("action", action),
			slog.String("reason", err.Error()))
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
