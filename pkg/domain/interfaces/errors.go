package interfaces

import "errors"

// Sentinel errors shared by all repository backends. Backends wrap these
// with context via goerr; callers test with errors.Is.
var (
	ErrNotFound      = errors.New("record not found")
	ErrAlreadyExists = errors.New("record already exists")
)
