// Package form holds the state shared by every entry form: whether it is
// creating a record or editing one, and which record.
package form

import (
	"fmt"
	"strconv"
	"strings"
)

// Mode is the submission mode of a form.
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

func (m Mode) String() string {
	if m == ModeEdit {
		return "edit"
	}
	return "create"
}

// State tracks the mode of a form and, in edit mode, the identity of the
// record being edited. The zero value is in create mode.
type State[K comparable] struct {
	mode Mode
	key  K
}

// BeginEdit switches to edit mode for key.
func (s *State[K]) BeginEdit(key K) {
	s.mode = ModeEdit
	s.key = key
}

// Reset returns to create mode and forgets the edited key.
func (s *State[K]) Reset() {
	var zero K
	s.mode = ModeCreate
	s.key = zero
}

// Mode reports the current mode.
func (s *State[K]) Mode() Mode { return s.mode }

// Editing returns the edited key and true in edit mode.
func (s *State[K]) Editing() (K, bool) {
	return s.key, s.mode == ModeEdit
}

// ValidationError is raised for input rejected before any request is made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Invalid builds a ValidationError.
func Invalid(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// ParseID parses a required positive integer id.
func ParseID(field, s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, Invalid(field, "%s is required", field)
	}
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, Invalid(field, "%s must be a positive integer, got %q", field, s)
	}
	return id, nil
}

// ParseIDList parses a comma separated list of integer ids, trimming the
// whitespace around each element. Blank input yields an empty list.
func ParseIDList(field, s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	ids := make([]int, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, Invalid(field, "%s: %q is not a number", field, strings.TrimSpace(p))
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// OptionalString maps blank input to nil, which the API reads as null.
func OptionalString(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}
