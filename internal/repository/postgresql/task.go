package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/office-backend-go/internal/domain/task"
	"github.com/cmlabs-hris/office-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const taskColumns = `
	t.id, t.title, t.description, t.assigned_to, t.created_by, t.status, t.priority, t.due_date,
	t.created_at, t.updated_at, u.login_id, u.full_name`

// foreignKeyViolation is the SQLSTATE for a failed foreign key reference.
const foreignKeyViolation = "23503"

type taskRepositoryImpl struct {
	db *database.DB
}

func NewTaskRepository(db *database.DB) task.TaskRepository {
	return &taskRepositoryImpl{db: db}
}

func scanTask(row pgx.Row) (task.Task, error) {
	var t task.Task
	err := row.Scan(
		&t.ID, &t.Title, &t.Description, &t.AssignedTo, &t.CreatedBy, &t.Status, &t.Priority, &t.DueDate,
		&t.CreatedAt, &t.UpdatedAt, &t.AssigneeLoginID, &t.AssigneeName,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return task.Task{}, task.ErrTaskNotFound
	}
	return t, err
}

func taskWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
		return task.ErrAssigneeNotFound
	}
	return err
}

// Create implements task.TaskRepository.
func (r *taskRepositoryImpl) Create(ctx context.Context, t task.Task) (task.Task, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return task.Task{}, fmt.Errorf("failed to generate task id: %w", err)
	}

	query := `
		INSERT INTO tasks (id, title, description, assigned_to, created_by, status, priority, due_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8::date)
	`
	_, err = q.Exec(ctx, query, id.String(), t.Title, t.Description, t.AssignedTo, t.CreatedBy, t.Status, t.Priority, t.DueDate)
	if err != nil {
		return task.Task{}, taskWriteError(err)
	}
	return r.GetByID(ctx, id.String())
}

// GetByID implements task.TaskRepository.
func (r *taskRepositoryImpl) GetByID(ctx context.Context, id string) (task.Task, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + taskColumns + `
		FROM tasks t
		LEFT JOIN users u ON u.id = t.assigned_to
		WHERE t.id = $1`
	return scanTask(q.QueryRow(ctx, query, id))
}

// List implements task.TaskRepository.
func (r *taskRepositoryImpl) List(ctx context.Context, filter task.TaskFilter) ([]task.Task, int64, error) {
	q := GetQuerier(ctx, r.db)

	var conditions []string
	var args []any
	argPos := 1

	if filter.AssignedTo != nil {
		conditions = append(conditions, fmt.Sprintf("t.assigned_to = $%d", argPos))
		args = append(args, *filter.AssignedTo)
		argPos++
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("t.status = $%d", argPos))
		args = append(args, *filter.Status)
		argPos++
	}
	if filter.Priority != nil {
		conditions = append(conditions, fmt.Sprintf("t.priority = $%d", argPos))
		args = append(args, *filter.Priority)
		argPos++
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM tasks t "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count tasks: %w", err)
	}

	limit, offset := pagination(filter.Page, filter.Limit)
	query := fmt.Sprintf(`SELECT %s
		FROM tasks t
		LEFT JOIN users u ON u.id = t.assigned_to
		%s
		ORDER BY t.due_date ASC NULLS LAST, t.created_at DESC
		LIMIT $%d OFFSET $%d`, taskColumns, where, argPos, argPos+1)
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]task.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, total, rows.Err()
}

// Update implements task.TaskRepository.
func (r *taskRepositoryImpl) Update(ctx context.Context, t task.Task) (task.Task, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE tasks
		SET title = $2, description = $3, assigned_to = $4, status = $5, priority = $6,
			due_date = $7::date, updated_at = NOW()
		WHERE id = $1
	`
	tag, err := q.Exec(ctx, query, t.ID, t.Title, t.Description, t.AssignedTo, t.Status, t.Priority, t.DueDate)
	if err != nil {
		return task.Task{}, taskWriteError(err)
	}
	if tag.RowsAffected() == 0 {
		return task.Task{}, task.ErrTaskNotFound
	}
	return r.GetByID(ctx, t.ID)
}

// UpdateStatus implements task.TaskRepository.
func (r *taskRepositoryImpl) UpdateStatus(ctx context.Context, id string, status task.Status) (task.Task, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE tasks SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return task.Task{}, err
	}
	if tag.RowsAffected() == 0 {
		return task.Task{}, task.ErrTaskNotFound
	}
	return r.GetByID(ctx, id)
}

// Delete implements task.TaskRepository.
func (r *taskRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return task.ErrTaskNotFound
	}
	return nil
}
