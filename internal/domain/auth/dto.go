package auth

import (
	"strings"

	"github.com/cmlabs-hris/office-backend-go/internal/pkg/validator"
)

type LoginRequest struct {
	LoginID  string `json:"login_id"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	r.LoginID = strings.ToUpper(strings.TrimSpace(r.LoginID))
	if validator.IsEmpty(r.LoginID) {
		errs.Add("login_id", "login_id is required")
	} else if !validator.IsValidLoginID(r.LoginID) {
		errs.Add("login_id", "login_id must be a prefix followed by digits, e.g. EMP001")
	}

	if validator.IsEmpty(r.Password) {
		errs.Add("password", "password is required")
	}

	return errs.Err()
}

// SessionTrackingRequest carries client metadata stored alongside a refresh token.
type SessionTrackingRequest struct {
	UserAgent string
	IPAddress string
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (r *RefreshTokenRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.RefreshToken) {
		errs.Add("refresh_token", "refresh_token is required")
	}
	return errs.Err()
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

func (r *ChangePasswordRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.OldPassword) {
		errs.Add("old_password", "old_password is required")
	}
	if validator.IsEmpty(r.NewPassword) {
		errs.Add("new_password", "new_password is required")
	} else if len(r.NewPassword) < 8 {
		errs.Add("new_password", "new_password must be at least 8 characters")
	} else if r.NewPassword == r.OldPassword {
		errs.Add("new_password", "new_password must differ from old_password")
	}

	return errs.Err()
}

type TokenResponse struct {
	AccessToken           string `json:"access_token"`
	AccessTokenExpiresIn  int64  `json:"access_token_expires_at"`
	RefreshToken          string `json:"refresh_token"`
	RefreshTokenExpiresIn int64  `json:"refresh_token_expires_at"`
	LoginID               string `json:"login_id"`
	Role                  string `json:"role"`
}

type AccessTokenResponse struct {
	AccessToken          string `json:"access_token"`
	AccessTokenExpiresIn int64  `json:"access_token_expires_at"`
}
