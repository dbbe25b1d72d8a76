package sentinel

import "errors"

// Infrastructure facts returned by stores, optionally wrapped. Services
// translate them into domain errors; they never describe input validation.
var (
	// ErrNotFound: no record for the key.
	ErrNotFound = errors.New("not found")
	// ErrConflict: a record with the same unique key already exists.
	ErrConflict = errors.New("conflict")
)
