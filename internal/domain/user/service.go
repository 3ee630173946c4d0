package user

import "context"

type UserService interface {
	CreateUser(ctx context.Context, caller Caller, req CreateUserRequest) (UserResponse, error)
	GetUser(ctx context.Context, caller Caller, id string) (UserResponse, error)
	ListUsers(ctx context.Context, caller Caller, filter ListUsersFilter) (ListUsersResponse, error)
	Me(ctx context.Context, caller Caller) (UserResponse, error)
	UpdateUser(ctx context.Context, caller Caller, req UpdateUserRequest) (UserResponse, error)
	DeleteUser(ctx context.Context, caller Caller, id string) error
}
