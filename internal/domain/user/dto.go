package user

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/office-backend-go/internal/pkg/validator"
)

// UserResponse represents user data in API responses
type UserResponse struct {
	ID        string `json:"id"`
	LoginID   string `json:"login_id"`
	FullName  string `json:"full_name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func NewUserResponse(u User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		LoginID:   u.LoginID,
		FullName:  u.FullName,
		Email:     u.Email,
		Role:      string(u.Role),
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
		UpdatedAt: u.UpdatedAt.Format(time.RFC3339),
	}
}

type ListUsersResponse struct {
	TotalCount int64          `json:"total_count"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"total_pages"`
	Users      []UserResponse `json:"users"`
}

func validRoles() []string {
	roles := make([]string, 0, len(Roles()))
	for _, r := range Roles() {
		roles = append(roles, string(r))
	}
	return roles
}

// CreateUserRequest represents request to create a new user
type CreateUserRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (r *CreateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.FullName = strings.TrimSpace(r.FullName)
	r.Role = strings.ToLower(strings.TrimSpace(r.Role))

	if validator.IsEmpty(r.FullName) {
		errs.Add("full_name", "full_name is required")
	} else if len(r.FullName) > 150 {
		errs.Add("full_name", "full_name must be at most 150 characters")
	}

	if validator.IsEmpty(r.Email) {
		errs.Add("email", "email is required")
	} else if !validator.IsValidEmail(r.Email) {
		errs.Add("email", "invalid email format")
	}

	if validator.IsEmpty(r.Password) {
		errs.Add("password", "password is required")
	} else if len(r.Password) < 8 {
		errs.Add("password", "password must be at least 8 characters")
	}

	if validator.IsEmpty(r.Role) {
		errs.Add("role", "role is required")
	} else if !validator.IsInSlice(r.Role, validRoles()) {
		errs.Add("role", "invalid role")
	}

	return errs.Err()
}

// UpdateUserRequest represents request to update user. The login id cannot be changed.
type UpdateUserRequest struct {
	ID       string  `json:"-"`
	FullName *string `json:"full_name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Role     *string `json:"role,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

func (r *UpdateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs.Add("id", "id is required")
	}

	if r.FullName != nil && validator.IsEmpty(*r.FullName) {
		errs.Add("full_name", "full_name must not be empty")
	}

	if r.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*r.Email))
		r.Email = &email
		if validator.IsEmpty(email) {
			errs.Add("email", "email must not be empty")
		} else if !validator.IsValidEmail(email) {
			errs.Add("email", "invalid email format")
		}
	}

	if r.Role != nil {
		role := strings.ToLower(strings.TrimSpace(*r.Role))
		r.Role = &role
		if !validator.IsInSlice(role, validRoles()) {
			errs.Add("role", "invalid role")
		}
	}

	return errs.Err()
}

type ListUsersFilter struct {
	Role     *string
	Search   *string
	IsActive *bool
	Page     int
	Limit    int
}

func (f *ListUsersFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page == 0 {
		f.Page = 1
	}
	if f.Limit == 0 {
		f.Limit = 20
	}
	if f.Page < 1 {
		errs.Add("page", "page must be at least 1")
	}
	if f.Limit < 1 || f.Limit > 100 {
		errs.Add("limit", "limit must be between 1 and 100")
	}
	if f.Role != nil && !validator.IsInSlice(*f.Role, validRoles()) {
		errs.Add("role", "invalid role")
	}

	return errs.Err()
}
