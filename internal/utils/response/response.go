// Package response provides helpers for writing consistent HTTP responses
// from the window handlers.
//
// The window itself is HTML; the /state endpoint and every error answer
// are JSON. Centralising the header/status/body sequence here keeps the
// handlers down to what they actually decide.
package response

import (
	"bytes"
	"encoding/json"
	"html/template"
	"net/http"
)

// ─────────────────────────────────────────────────────────────────────────────
// Response is the standard envelope returned for error cases:
//
//	{ "status": "error", "error": "invalid row: must be an integer" }
//
// ─────────────────────────────────────────────────────────────────────────────
type Response struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

// StatusError is the status of every error envelope.
const StatusError = "error"

// WriteJSON writes a JSON-encoded response with the given HTTP status code.
//
// IMPORTANT ORDER: Header() → WriteHeader() → body writes.
// Once WriteHeader is called (or the first Write), headers are locked.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// WriteHTML renders tmpl into a buffer first, so a template error becomes
// a clean 500 instead of half a page.
func WriteHTML(w http.ResponseWriter, status int, tmpl *template.Template, data any) error {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		WriteJSON(w, http.StatusInternalServerError, GeneralError(err))
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// GeneralError wraps any Go error into our standard Response shape.
func GeneralError(err error) Response {
	return Response{
		Status: StatusError,
		Error:  err.Error(),
	}
}
