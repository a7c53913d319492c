package domain

import "errors"

// Common domain errors
var (
	ErrNotFound       = errors.New("resource not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrInternalServer = errors.New("internal server error")
)

// Auth errors. Unknown username and wrong password are distinct so the
// handler can surface the two messages the UI expects.
var (
	ErrUsernameNotFound  = errors.New("username not found")
	ErrIncorrectPassword = errors.New("incorrect password")
	ErrUserAlreadyExists = errors.New("username already exists")
	ErrUsernameTooShort  = errors.New("username too short")
	ErrPasswordTooWeak   = errors.New("password too weak")
	ErrInvalidRole       = errors.New("invalid role")
)

// Workspace errors
var (
	ErrEmptyFolderName    = errors.New("folder name is required")
	ErrFolderNotFound     = errors.New("folder not found")
	ErrVehicleRequired    = errors.New("a vehicle must be selected")
	ErrNoServices         = errors.New("at least one service is required")
	ErrBillNotFound       = errors.New("bill not found")
	ErrVehicleNotFound    = errors.New("vehicle not found")
	ErrClientNotFound     = errors.New("client not found")
	ErrFolderKindMismatch = errors.New("folder kind does not match entity kind")
)
