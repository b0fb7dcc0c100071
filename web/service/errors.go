package service

import "errors"

// Failure taxonomy shared by the services. Controllers map these onto HTTP
// statuses; messages are safe to surface to the caller.
var (
	ErrNotFound           = errors.New("record not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already in use")
	ErrValidation         = errors.New("invalid data")
	ErrForbidden          = errors.New("operation not allowed")
)
