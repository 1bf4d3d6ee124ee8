package repository

import "errors"

// ErrDuplicateRecord is returned when an insert violates a unique constraint.
var ErrDuplicateRecord = errors.New("duplicate record")
