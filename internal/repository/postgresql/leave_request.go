package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/office-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/office-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const leaveRequestColumns = `
	lr.id, lr.user_id, lr.leave_type, lr.start_date, lr.end_date, lr.days_requested, lr.reason,
	lr.status, lr.approved_by, lr.approved_at, lr.rejection_reason, lr.created_at, lr.updated_at,
	u.login_id, u.full_name`

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

func scanLeaveRequest(row pgx.Row) (leave.LeaveRequest, error) {
	var lr leave.LeaveRequest
	err := row.Scan(
		&lr.ID, &lr.UserID, &lr.LeaveType, &lr.StartDate, &lr.EndDate, &lr.DaysRequested, &lr.Reason,
		&lr.Status, &lr.ApprovedBy, &lr.ApprovedAt, &lr.RejectionReason, &lr.CreatedAt, &lr.UpdatedAt,
		&lr.UserLoginID, &lr.UserFullName,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return lr, err
}

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to generate leave request id: %w", err)
	}

	query := `
		INSERT INTO leave_requests (id, user_id, leave_type, start_date, end_date, days_requested, reason, status)
		VALUES ($1, $2, $3, $4::date, $5::date, $6, $7, $8)
	`
	_, err = q.Exec(ctx, query,
		id.String(),
		req.UserID,
		req.LeaveType,
		req.StartDate,
		req.EndDate,
		req.DaysRequested,
		req.Reason,
		req.Status,
	)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return r.GetByID(ctx, id.String())
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveRequestColumns + `
		FROM leave_requests lr
		JOIN users u ON u.id = lr.user_id
		WHERE lr.id = $1`

	return scanLeaveRequest(q.QueryRow(ctx, query, id))
}

// List implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) List(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, int64, error) {
	q := GetQuerier(ctx, r.db)

	var conditions []string
	var args []any
	argPos := 1

	add := func(cond string, value any) {
		conditions = append(conditions, fmt.Sprintf(cond, argPos))
		args = append(args, value)
		argPos++
	}

	if filter.UserID != nil {
		add("lr.user_id = $%d", *filter.UserID)
	}
	if filter.Status != nil {
		add("lr.status = $%d", *filter.Status)
	}
	if filter.LeaveType != nil {
		add("lr.leave_type = $%d", *filter.LeaveType)
	}
	if filter.StartDate != nil {
		add("lr.end_date >= $%d::date", *filter.StartDate)
	}
	if filter.EndDate != nil {
		add("lr.start_date <= $%d::date", *filter.EndDate)
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM leave_requests lr "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count leave requests: %w", err)
	}

	limit, offset := pagination(filter.Page, filter.Limit)
	query := fmt.Sprintf(`SELECT %s
		FROM leave_requests lr
		JOIN users u ON u.id = lr.user_id
		%s
		ORDER BY lr.created_at DESC
		LIMIT $%d OFFSET $%d`, leaveRequestColumns, where, argPos, argPos+1)
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer rows.Close()

	requests := make([]leave.LeaveRequest, 0)
	for rows.Next() {
		lr, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, lr)
	}
	return requests, total, rows.Err()
}

// LockUser implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) LockUser(ctx context.Context, userID string) error {
	q := GetQuerier(ctx, r.db)
	_, err := q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext('leave_request:' || $1::text))`, userID)
	return err
}

// HasOverlap implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) HasOverlap(ctx context.Context, userID string, start, end time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS(
			SELECT 1 FROM leave_requests
			WHERE user_id = $1
			  AND status IN ('pending', 'approved')
			  AND start_date <= $3::date
			  AND end_date >= $2::date
		)
	`
	var exists bool
	if err := q.QueryRow(ctx, query, userID, start, end).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check leave overlap: %w", err)
	}
	return exists, nil
}

// Transition implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Transition(ctx context.Context, id string, to leave.Status, decidedBy *string, reason *string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $2,
			approved_by = COALESCE($3, approved_by),
			approved_at = CASE WHEN $3::uuid IS NULL THEN approved_at ELSE NOW() END,
			rejection_reason = COALESCE($4, rejection_reason),
			updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
	`
	tag, err := q.Exec(ctx, query, id, to, decidedBy, reason)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to update leave request: %w", err)
	}

	if tag.RowsAffected() == 0 {
		// Distinguish a missing request from one that was already decided.
		if _, err := r.GetByID(ctx, id); err != nil {
			return leave.LeaveRequest{}, err
		}
		return leave.LeaveRequest{}, leave.ErrLeaveRequestAlreadyProcessed
	}

	return r.GetByID(ctx, id)
}
