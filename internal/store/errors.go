// Package store owns CRUD and validation for users, categories and journals.
// Each store is a thin layer over the document gateway; the journal store
// additionally keeps the category reverse index consistent.
package store

import "errors"

// Error kinds raised by the stores. Handlers match these with errors.Is to
// pick the response status; the stores never retry internally.
var (
	// ErrDuplicateKey: the entity id is already present.
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrDuplicateValue: a unique field (category title, journal prompt) collides.
	ErrDuplicateValue = errors.New("duplicate value")
	// ErrNotFound: the operation target is absent.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument: a field is malformed, missing or out of range.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrTypeMismatch: a partial-update field has the wrong primitive type.
	ErrTypeMismatch = errors.New("type mismatch")
)
