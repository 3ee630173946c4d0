package user

import (
	"context"
)

type UserRepository interface {
	GetByID(ctx context.Context, id string) (User, error)
	GetByLoginID(ctx context.Context, loginID string) (User, error)
	List(ctx context.Context, filter ListUsersFilter) ([]User, int64, error)
	ListActiveIDs(ctx context.Context) ([]string, error)

	// LockLoginIDPrefix serialises login id allocation for prefix until the
	// surrounding transaction ends.
	LockLoginIDPrefix(ctx context.Context, prefix string) error
	ListLoginIDsByPrefix(ctx context.Context, prefix string) ([]string, error)

	// Create returns ErrLoginIDTaken or ErrUserEmailExists on unique violations.
	Create(ctx context.Context, newUser User) (User, error)
	Update(ctx context.Context, u User) (User, error)
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
	Deactivate(ctx context.Context, userID string) error
}
