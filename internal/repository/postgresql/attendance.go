package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/office-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/office-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const attendanceColumns = `
	a.id, a.user_id, a.date, a.clock_in, a.clock_out, a.break_start, a.break_end,
	a.total_hours, a.status, a.notes, a.created_at, a.updated_at,
	u.login_id, u.full_name`

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var att attendance.Attendance
	err := row.Scan(
		&att.ID, &att.UserID, &att.Date, &att.ClockIn, &att.ClockOut, &att.BreakStart, &att.BreakEnd,
		&att.TotalHours, &att.Status, &att.Notes, &att.CreatedAt, &att.UpdatedAt,
		&att.UserLoginID, &att.UserFullName,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return att, err
}

// Upsert implements attendance.AttendanceRepository.
func (a *attendanceRepository) Upsert(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	id, err := uuid.NewV7()
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to generate attendance id: %w", err)
	}

	query := `
		INSERT INTO attendances (
			id, user_id, date, clock_in, clock_out, break_start, break_end, total_hours, status, notes
		) VALUES ($1, $2, $3::date, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (user_id, date) DO UPDATE SET
			clock_in = EXCLUDED.clock_in,
			clock_out = EXCLUDED.clock_out,
			break_start = EXCLUDED.break_start,
			break_end = EXCLUDED.break_end,
			total_hours = EXCLUDED.total_hours,
			status = EXCLUDED.status,
			notes = EXCLUDED.notes,
			updated_at = NOW()
		RETURNING id
	`

	var savedID string
	err = q.QueryRow(ctx, query,
		id.String(),
		att.UserID,
		att.Date,
		att.ClockIn,
		att.ClockOut,
		att.BreakStart,
		att.BreakEnd,
		att.TotalHours,
		att.Status,
		att.Notes,
	).Scan(&savedID)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to upsert attendance: %w", err)
	}

	return a.GetByID(ctx, savedID)
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + `
		FROM attendances a
		JOIN users u ON u.id = a.user_id
		WHERE a.id = $1`

	return scanAttendance(q.QueryRow(ctx, query, id))
}

var attendanceSortColumns = map[string]string{
	"date":        "a.date",
	"clock_in":    "a.clock_in",
	"total_hours": "a.total_hours",
	"status":      "a.status",
}

// List implements attendance.AttendanceRepository.
func (a *attendanceRepository) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, a.db)

	var conditions []string
	var args []any
	argPos := 1

	if filter.UserID != nil {
		conditions = append(conditions, fmt.Sprintf("a.user_id = $%d", argPos))
		args = append(args, *filter.UserID)
		argPos++
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("a.status = $%d", argPos))
		args = append(args, *filter.Status)
		argPos++
	}
	from, to := filter.Range()
	if from != nil {
		conditions = append(conditions, fmt.Sprintf("a.date >= $%d::date", argPos))
		args = append(args, *from)
		argPos++
	}
	if to != nil {
		conditions = append(conditions, fmt.Sprintf("a.date <= $%d::date", argPos))
		args = append(args, *to)
		argPos++
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	countQuery := "SELECT COUNT(*) FROM attendances a " + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	sortColumn, ok := attendanceSortColumns[filter.SortBy]
	if !ok {
		sortColumn = "a.date"
	}
	sortOrder := "DESC"
	if strings.EqualFold(filter.SortOrder, "asc") {
		sortOrder = "ASC"
	}

	limit, offset := pagination(filter.Page, filter.Limit)
	query := fmt.Sprintf(`SELECT %s
		FROM attendances a
		JOIN users u ON u.id = a.user_id
		%s
		ORDER BY %s %s NULLS LAST, u.login_id ASC
		LIMIT $%d OFFSET $%d`, attendanceColumns, where, sortColumn, sortOrder, argPos, argPos+1)
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendances: %w", err)
	}
	defer rows.Close()

	result := make([]attendance.Attendance, 0)
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance: %w", err)
		}
		result = append(result, att)
	}
	return result, total, rows.Err()
}

// Delete implements attendance.AttendanceRepository.
func (a *attendanceRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, a.db)

	tag, err := q.Exec(ctx, `DELETE FROM attendances WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}

// Summary implements attendance.AttendanceRepository.
func (a *attendanceRepository) Summary(ctx context.Context, userID string, from, to *time.Time) (attendance.Summary, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT status, COUNT(*), COALESCE(SUM(total_hours), 0)
		FROM attendances
		WHERE user_id = $1
		  AND ($2::date IS NULL OR date >= $2::date)
		  AND ($3::date IS NULL OR date <= $3::date)
		GROUP BY status
	`

	rows, err := q.Query(ctx, query, userID, from, to)
	if err != nil {
		return attendance.Summary{}, fmt.Errorf("failed to summarize attendance: %w", err)
	}
	defer rows.Close()

	summary := attendance.Summary{
		TotalHours: decimal.Zero,
		ByStatus:   make(map[attendance.Status]int),
	}
	for rows.Next() {
		var status attendance.Status
		var count int
		var hours decimal.Decimal
		if err := rows.Scan(&status, &count, &hours); err != nil {
			return attendance.Summary{}, fmt.Errorf("failed to scan attendance summary: %w", err)
		}
		summary.ByStatus[status] = count
		summary.Records += count
		summary.TotalHours = summary.TotalHours.Add(hours)
	}
	return summary, rows.Err()
}

// MarkAbsent implements attendance.AttendanceRepository.
func (a *attendanceRepository) MarkAbsent(ctx context.Context, date time.Time) (int64, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendances (id, user_id, date, total_hours, status, notes)
		SELECT uuidv7(), u.id, $1::date, 0, 'absent', 'Marked absent automatically'
		FROM users u
		WHERE u.is_active
		  AND u.created_at::date <= $1::date
		  AND NOT EXISTS (
			SELECT 1 FROM attendances a WHERE a.user_id = u.id AND a.date = $1::date
		  )
		  AND NOT EXISTS (
			SELECT 1 FROM leave_requests l
			WHERE l.user_id = u.id
			  AND l.status = 'approved'
			  AND $1::date BETWEEN l.start_date AND l.end_date
		  )
		ON CONFLICT (user_id, date) DO NOTHING
	`

	tag, err := q.Exec(ctx, query, date)
	if err != nil {
		return 0, fmt.Errorf("failed to mark absences: %w", err)
	}
	return tag.RowsAffected(), nil
}
