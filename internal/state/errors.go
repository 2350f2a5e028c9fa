package state

import "errors"

// Sentinel errors returned by the state store.
var (
	// ErrInvalidCredentials indicates a missing field or a wrong email/password pair.
	ErrInvalidCredentials = errors.New("state: invalid credentials")

	// ErrUserExists indicates the email is already registered.
	ErrUserExists = errors.New("state: user already exists")

	// ErrUnknownUser indicates no account has the given ID.
	ErrUnknownUser = errors.New("state: unknown user")

	// ErrNotLoggedIn indicates an operation needs a current session.
	ErrNotLoggedIn = errors.New("state: not logged in")
)
