package repeatable

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingRow signals that no row could be found where one is required.
	ErrMissingRow = errors.New("repeatable: no field-list row found")
	// ErrMissingIndex signals a row id without a trailing index segment.
	ErrMissingIndex = errors.New("repeatable: no index found in row id")
	// ErrMissingName signals a control without a name attribute.
	ErrMissingName = errors.New("repeatable: no name attribute found")
)

// MissingRowError is returned when a container has no row to derive from or to
// clone, or when a remove target sits outside every row.
type MissingRowError struct {
	Container string
	Op        string
}

func (e *MissingRowError) Error() string {
	if e.Container == "" {
		return fmt.Sprintf("repeatable: %s: no field-list row found", e.Op)
	}
	return fmt.Sprintf("repeatable: %s: no field-list row found in %q", e.Op, e.Container)
}

func (e *MissingRowError) Unwrap() error { return ErrMissingRow }

// MissingIndexError is returned when a row id cannot be split into a prefix
// and an index segment.
type MissingIndexError struct {
	ID string
}

func (e *MissingIndexError) Error() string {
	return fmt.Sprintf("repeatable: no index found in id %q", e.ID)
}

func (e *MissingIndexError) Unwrap() error { return ErrMissingIndex }

// MissingNameError is returned when an input or select inside a cloned row
// lacks a name attribute.
type MissingNameError struct {
	Tag string
	Row string
}

func (e *MissingNameError) Error() string {
	return fmt.Sprintf("repeatable: %s in row %q has no name attribute", e.Tag, e.Row)
}

func (e *MissingNameError) Unwrap() error { return ErrMissingName }
