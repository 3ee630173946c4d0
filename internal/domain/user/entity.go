package user

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"    // Full access
	RoleHR       Role = "hr"       // Manages people and records
	RoleManager  Role = "manager"  // Approves leave, runs meetings and tasks
	RoleEmployee Role = "employee" // Regular employee
)

// Roles lists every assignable role.
func Roles() []Role {
	return []Role{RoleAdmin, RoleHR, RoleManager, RoleEmployee}
}

func (r Role) Valid() bool {
	_, ok := RolePermissions[r]
	return ok
}

type User struct {
	ID           string
	LoginID      string
	FullName     string
	Email        string
	PasswordHash string
	Role         Role
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin checks if user is an administrator
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
