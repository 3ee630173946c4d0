package user

import "errors"

var (
	ErrUserNotFound            = errors.New("user not found")
	ErrUserEmailExists         = errors.New("email already registered")
	ErrUserInactive            = errors.New("user is inactive")
	ErrLoginIDTaken            = errors.New("login id already taken")
	ErrLoginIDConflict         = errors.New("could not allocate a unique login id, please retry")
	ErrLoginIDExhausted        = errors.New("login id sequence exhausted")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
	ErrCannotDeactivateSelf    = errors.New("cannot deactivate your own account")
)
