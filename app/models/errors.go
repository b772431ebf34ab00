package models

import "errors"

// ErrNotFound reports an unknown todo id on a read, update or delete.
var ErrNotFound = errors.New("todo not found")

// ValidationError reports rejected input: an empty or over-long title, or a
// completed value that is not a boolean. The reason is user-facing.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }
