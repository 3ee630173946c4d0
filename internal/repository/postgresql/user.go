package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/office-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/office-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const userColumns = `id, login_id, full_name, email, password_hash, role, is_active, created_at, updated_at`

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepositoryImpl{db: db}
}

func scanUser(row pgx.Row) (user.User, error) {
	var u user.User
	err := row.Scan(
		&u.ID,
		&u.LoginID,
		&u.FullName,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.IsActive,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return user.User{}, user.ErrUserNotFound
	}
	return u, err
}

// GetByID implements user.UserRepository.
func (r *userRepositoryImpl) GetByID(ctx context.Context, id string) (user.User, error) {
	q := GetQuerier(ctx, r.db)
	return scanUser(q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

// GetByLoginID implements user.UserRepository.
func (r *userRepositoryImpl) GetByLoginID(ctx context.Context, loginID string) (user.User, error) {
	q := GetQuerier(ctx, r.db)
	return scanUser(q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE login_id = $1`, loginID))
}

// List implements user.UserRepository.
func (r *userRepositoryImpl) List(ctx context.Context, filter user.ListUsersFilter) ([]user.User, int64, error) {
	q := GetQuerier(ctx, r.db)

	var conditions []string
	var args []any
	argPos := 1

	if filter.Role != nil {
		conditions = append(conditions, fmt.Sprintf("role = $%d", argPos))
		args = append(args, *filter.Role)
		argPos++
	}
	if filter.IsActive != nil {
		conditions = append(conditions, fmt.Sprintf("is_active = $%d", argPos))
		args = append(args, *filter.IsActive)
		argPos++
	}
	if filter.Search != nil && *filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(full_name ILIKE $%d OR email ILIKE $%d OR login_id ILIKE $%d)", argPos, argPos, argPos))
		args = append(args, "%"+*filter.Search+"%")
		argPos++
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM users "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	limit, offset := pagination(filter.Page, filter.Limit)
	query := fmt.Sprintf(`SELECT %s FROM users %s ORDER BY login_id ASC LIMIT $%d OFFSET $%d`, userColumns, where, argPos, argPos+1)
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := make([]user.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, total, rows.Err()
}

// ListActiveIDs implements user.UserRepository.
func (r *userRepositoryImpl) ListActiveIDs(ctx context.Context) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT id FROM users WHERE is_active ORDER BY id`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}

// LockLoginIDPrefix implements user.UserRepository.
func (r *userRepositoryImpl) LockLoginIDPrefix(ctx context.Context, prefix string) error {
	q := GetQuerier(ctx, r.db)
	_, err := q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext('login_id:' || $1))`, prefix)
	return err
}

// ListLoginIDsByPrefix implements user.UserRepository.
func (r *userRepositoryImpl) ListLoginIDsByPrefix(ctx context.Context, prefix string) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT login_id FROM users WHERE starts_with(login_id, $1)`, prefix)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}

// Create implements user.UserRepository.
func (r *userRepositoryImpl) Create(ctx context.Context, newUser user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return user.User{}, fmt.Errorf("failed to generate user id: %w", err)
	}

	query := `
		INSERT INTO users (id, login_id, full_name, email, password_hash, role, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + userColumns

	created, err := scanUser(q.QueryRow(ctx, query,
		id.String(),
		newUser.LoginID,
		newUser.FullName,
		newUser.Email,
		newUser.PasswordHash,
		newUser.Role,
		newUser.IsActive,
	))
	if err != nil {
		return user.User{}, userConstraintError(err)
	}
	return created, nil
}

// Update implements user.UserRepository. login_id is never written.
func (r *userRepositoryImpl) Update(ctx context.Context, u user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users
		SET full_name = $1, email = $2, role = $3, is_active = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING ` + userColumns

	updated, err := scanUser(q.QueryRow(ctx, query, u.FullName, u.Email, u.Role, u.IsActive, u.ID))
	if err != nil {
		return user.User{}, userConstraintError(err)
	}
	return updated, nil
}

// UpdatePassword implements user.UserRepository.
func (r *userRepositoryImpl) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2`, passwordHash, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

// Deactivate implements user.UserRepository.
func (r *userRepositoryImpl) Deactivate(ctx context.Context, userID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE users SET is_active = FALSE, updated_at = NOW() WHERE id = $1`, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

func userConstraintError(err error) error {
	constraint, ok := uniqueConstraint(err)
	if !ok {
		return err
	}
	switch constraint {
	case "users_login_id_key":
		return fmt.Errorf("%w: %v", user.ErrLoginIDTaken, err)
	case "users_email_key":
		return user.ErrUserEmailExists
	}
	return err
}
