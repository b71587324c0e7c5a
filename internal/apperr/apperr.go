// Package apperr defines the error taxonomy shared by the storage, service
// and transport layers. Callers classify failures with errors.Is and map
// them to HTTP statuses or socket error events at the edge.
package apperr

import "errors"

var (
	// ErrInvalidCredential - bad, missing or expired bearer token.
	ErrInvalidCredential = errors.New("invalid credential")
	// ErrNotFound - room or identity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrForbidden - identity is not a member of the room it acts on.
	ErrForbidden = errors.New("forbidden")
	// ErrValidation - malformed input (empty content, bad room id, ...).
	ErrValidation = errors.New("validation failed")
	// ErrStoreUnavailable - underlying store query failed. The original
	// cause is wrapped and logged; the caller sees a generic server error.
	ErrStoreUnavailable = errors.New("store unavailable")
)
