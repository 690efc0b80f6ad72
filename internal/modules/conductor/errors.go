package conductor

import "errors"

var (
	ErrAlreadyRegistered = errors.New("user is already registered as a conductor")
	ErrNotFound          = errors.New("conductor not found")
)
