package models

import "errors"

// Domain-specific errors shared by the editor and its collaborators
var (
	// ErrNotFound indicates the backend has no quick answer with the requested id
	ErrNotFound = errors.New("quick answer not found")

	// ErrMissingID indicates an operation that needs an existing record was given none
	ErrMissingID = errors.New("quick answer id is required")
)
