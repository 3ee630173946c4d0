package auth

import "errors"

var (
	ErrInvalidCredentials  = errors.New("invalid login id or password")
	ErrAccountInactive     = errors.New("account is inactive")
	ErrInvalidToken        = errors.New("invalid or expired token")
	ErrRefreshTokenRevoked = errors.New("refresh token has been revoked")
	ErrInvalidOldPassword  = errors.New("old password is incorrect")
)
