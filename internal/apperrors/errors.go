package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that a state transition was rejected because the
// resource already left the state the caller assumed (e.g. a reminder that
// was already reported). Callers treat this as a no-op signal, not a failure.
var ErrConflict = errors.New("state conflict")

// ErrUnauthorized indicates that the caller presented no or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")
