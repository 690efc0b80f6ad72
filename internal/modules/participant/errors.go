package participant

import "errors"

var (
	ErrAlreadyRegistered = errors.New("user is already registered as a participant")
	ErrNotFound          = errors.New("participant not found")
	ErrInvalidSkill      = errors.New("invalid skill")
)
