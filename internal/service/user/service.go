package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/cmlabs-hris/office-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/office-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/office-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/office-backend-go/internal/pkg/loginid"
	"golang.org/x/crypto/bcrypt"
)

type UserServiceImpl struct {
	tx database.Transactor
	user.UserRepository
	auth.RefreshTokenRepository
	allocator   *loginid.Allocator
	maxAttempts int
	logger      *slog.Logger
}

func NewUserService(
	tx database.Transactor,
	userRepository user.UserRepository,
	tokenRepository auth.RefreshTokenRepository,
	allocator *loginid.Allocator,
	maxAttempts int,
	logger *slog.Logger,
) user.UserService {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &UserServiceImpl{
		tx:                     tx,
		UserRepository:         userRepository,
		RefreshTokenRepository: tokenRepository,
		allocator:              allocator,
		maxAttempts:            maxAttempts,
		logger:                 logger,
	}
}

// CreateUser implements user.UserService.
func (s *UserServiceImpl) CreateUser(ctx context.Context, caller user.Caller, req user.CreateUserRequest) (user.UserResponse, error) {
	if !caller.Can(user.PermissionUserManage) {
		return user.UserResponse{}, user.ErrInsufficientPermissions
	}
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}
	if user.Role(req.Role) == user.RoleAdmin && caller.Role != user.RoleAdmin {
		return user.UserResponse{}, user.ErrInsufficientPermissions
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := s.allocateAndCreate(ctx, user.User{
		FullName:     req.FullName,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         user.Role(req.Role),
		IsActive:     true,
	})
	if err != nil {
		return user.UserResponse{}, err
	}

	s.logger.Info("user created", "user_id", created.ID, "login_id", created.LoginID, "role", created.Role, "created_by", caller.UserID)
	return user.NewUserResponse(created), nil
}

// allocateAndCreate assigns the next login id for the user's role and inserts
// the user. Allocation and insert share a transaction holding a per-prefix
// advisory lock; a unique violation still restarts the whole attempt.
func (s *UserServiceImpl) allocateAndCreate(ctx context.Context, newUser user.User) (user.User, error) {
	prefix, _ := s.allocator.Prefix(string(newUser.Role))

	for attempt := 1; ; attempt++ {
		var created user.User
		err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
			if err := s.UserRepository.LockLoginIDPrefix(txCtx, prefix); err != nil {
				return fmt.Errorf("failed to lock login id prefix: %w", err)
			}
			existing, err := s.UserRepository.ListLoginIDsByPrefix(txCtx, prefix)
			if err != nil {
				return fmt.Errorf("failed to list login ids: %w", err)
			}

			candidate := newUser
			candidate.LoginID, err = s.allocator.Next(string(newUser.Role), existing)
			if err != nil {
				return fmt.Errorf("%w: %w", user.ErrLoginIDExhausted, err)
			}
			created, err = s.UserRepository.Create(txCtx, candidate)
			return err
		})
		if err == nil {
			return created, nil
		}
		if !errors.Is(err, user.ErrLoginIDTaken) {
			return user.User{}, err
		}
		if attempt >= s.maxAttempts {
			s.logger.Error("login id allocation exhausted retries", "prefix", prefix, "attempts", attempt)
			return user.User{}, user.ErrLoginIDConflict
		}
		s.logger.Warn("login id collision, retrying allocation", "prefix", prefix, "attempt", attempt)
	}
}

// GetUser implements user.UserService.
func (s *UserServiceImpl) GetUser(ctx context.Context, caller user.Caller, id string) (user.UserResponse, error) {
	if !caller.Is(id) && !caller.Can(user.PermissionUserViewAll) {
		return user.UserResponse{}, user.ErrInsufficientPermissions
	}

	found, err := s.UserRepository.GetByID(ctx, id)
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.NewUserResponse(found), nil
}

// Me implements user.UserService.
func (s *UserServiceImpl) Me(ctx context.Context, caller user.Caller) (user.UserResponse, error) {
	found, err := s.UserRepository.GetByID(ctx, caller.UserID)
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.NewUserResponse(found), nil
}

// ListUsers implements user.UserService.
func (s *UserServiceImpl) ListUsers(ctx context.Context, caller user.Caller, filter user.ListUsersFilter) (user.ListUsersResponse, error) {
	if !caller.Can(user.PermissionUserViewAll) {
		return user.ListUsersResponse{}, user.ErrInsufficientPermissions
	}
	if err := filter.Validate(); err != nil {
		return user.ListUsersResponse{}, err
	}

	users, total, err := s.UserRepository.List(ctx, filter)
	if err != nil {
		return user.ListUsersResponse{}, fmt.Errorf("failed to list users: %w", err)
	}

	resp := user.ListUsersResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Users:      make([]user.UserResponse, 0, len(users)),
	}
	for _, u := range users {
		resp.Users = append(resp.Users, user.NewUserResponse(u))
	}
	return resp, nil
}

// UpdateUser implements user.UserService. The login id is kept even when the role changes.
func (s *UserServiceImpl) UpdateUser(ctx context.Context, caller user.Caller, req user.UpdateUserRequest) (user.UserResponse, error) {
	if !caller.Can(user.PermissionUserManage) {
		return user.UserResponse{}, user.ErrInsufficientPermissions
	}
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	var updated user.User
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		existing, err := s.UserRepository.GetByID(txCtx, req.ID)
		if err != nil {
			return err
		}

		touchesAdmin := existing.Role == user.RoleAdmin || (req.Role != nil && user.Role(*req.Role) == user.RoleAdmin)
		if touchesAdmin && caller.Role != user.RoleAdmin {
			return user.ErrInsufficientPermissions
		}

		if req.FullName != nil {
			existing.FullName = *req.FullName
		}
		if req.Email != nil {
			existing.Email = *req.Email
		}
		if req.Role != nil {
			existing.Role = user.Role(*req.Role)
		}
		if req.IsActive != nil {
			if !*req.IsActive && caller.Is(existing.ID) {
				return user.ErrCannotDeactivateSelf
			}
			existing.IsActive = *req.IsActive
		}

		updated, err = s.UserRepository.Update(txCtx, existing)
		if err != nil {
			return err
		}
		if !updated.IsActive {
			return s.RefreshTokenRepository.RevokeAllForUser(txCtx, updated.ID)
		}
		return nil
	})
	if err != nil {
		return user.UserResponse{}, err
	}

	return user.NewUserResponse(updated), nil
}

// DeleteUser implements user.UserService. Users are deactivated, never removed.
func (s *UserServiceImpl) DeleteUser(ctx context.Context, caller user.Caller, id string) error {
	if !caller.Can(user.PermissionUserManage) {
		return user.ErrInsufficientPermissions
	}
	if caller.Is(id) {
		return user.ErrCannotDeactivateSelf
	}

	return s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		existing, err := s.UserRepository.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		if existing.Role == user.RoleAdmin && caller.Role != user.RoleAdmin {
			return user.ErrInsufficientPermissions
		}
		if err := s.UserRepository.Deactivate(txCtx, id); err != nil {
			return err
		}
		return s.RefreshTokenRepository.RevokeAllForUser(txCtx, id)
	})
}
