package user

// Caller identifies the authenticated user on whose behalf a service call runs.
type Caller struct {
	UserID  string
	LoginID string
	Role    Role
}

// Can reports whether the caller's role grants permission.
func (c Caller) Can(permission Permission) bool {
	return HasPermission(c.Role, permission)
}

// Is reports whether the caller is the user with the given id.
func (c Caller) Is(userID string) bool {
	return c.UserID != "" && c.UserID == userID
}
