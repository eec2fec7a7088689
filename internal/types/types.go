// Package types holds the shared data structures used across the
// application. Keeping them in one place prevents import cycles: the
// form controller, the storage backends and the window handlers can all
// import types without depending on each other.
package types

import "strconv"

// Student is one row of the Students table.
//
// ID is assigned by the store on insert and never changes afterwards.
// Update overwrites Name, Age and Course unconditionally.
type Student struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Age    int    `json:"age"`
	Course string `json:"course"`
}

// Fields is the raw text currently typed into the form.
//
// Age stays a string here: it is only parsed during validation, and an
// unparsable value must survive a failed submit so the user can fix it.
//
// validate:"required" rejects the empty string only. Whitespace-only
// input is accepted, the form never trims.
type Fields struct {
	Name   string `json:"name"   validate:"required"`
	Age    string `json:"age"    validate:"required"`
	Course string `json:"course" validate:"required"`
}

// FieldsOf renders a stored student back into form text.
func FieldsOf(s Student) Fields {
	return Fields{
		Name:   s.Name,
		Age:    strconv.Itoa(s.Age),
		Course: s.Course,
	}
}
