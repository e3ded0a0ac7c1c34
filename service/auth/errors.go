package auth

import "errors"

var (
	// ErrUserExists is returned when registering a taken username.
	ErrUserExists = errors.New("username already exists")

	// ErrInvalidCredentials is returned for an unknown user or wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
