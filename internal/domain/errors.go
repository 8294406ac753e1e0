package domain

import "errors"

// Sentinel errors for collaborator failure discrimination.
// Infrastructure adapters wrap these so the application layer can classify an
// outcome without knowing which SDK produced the error.
var (
	ErrNotFound    = errors.New("not found")
	ErrRejected    = errors.New("rejected")
	ErrForbidden   = errors.New("forbidden")
	ErrUnavailable = errors.New("unavailable")
)
