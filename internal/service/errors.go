package service

import (
	"errors"
)

// Sentinel errors returned by the service layer. Handlers map these to HTTP
// status codes; anything else is a 500.
var (
	ErrNotFound           = errors.New("record not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailInUse         = errors.New("email already in use")
	ErrUsernameInUse      = errors.New("username already in use")
	ErrForbidden          = errors.New("insufficient permissions")
	ErrOwnContent         = errors.New("cannot report your own content")
	ErrMissingCredentials = errors.New("occupation and identity document are required for professionals")
)
