package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/office-backend-go/internal/domain/meeting"
	"github.com/cmlabs-hris/office-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const meetingColumns = `
	m.id, m.title, m.description, m.location, m.start_at, m.end_at, m.organizer_id,
	COALESCE((SELECT array_agg(ma.user_id::text ORDER BY ma.user_id) FROM meeting_attendees ma WHERE ma.meeting_id = m.id), '{}'),
	m.created_at, m.updated_at`

type meetingRepositoryImpl struct {
	db *database.DB
}

func NewMeetingRepository(db *database.DB) meeting.MeetingRepository {
	return &meetingRepositoryImpl{db: db}
}

func scanMeeting(row pgx.Row) (meeting.Meeting, error) {
	var m meeting.Meeting
	err := row.Scan(
		&m.ID, &m.Title, &m.Description, &m.Location, &m.StartAt, &m.EndAt, &m.OrganizerID,
		&m.AttendeeIDs, &m.CreatedAt, &m.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return meeting.Meeting{}, meeting.ErrMeetingNotFound
	}
	return m, err
}

// replaceAttendees rewrites the attendee list. Callers run it inside a transaction.
func (r *meetingRepositoryImpl) replaceAttendees(ctx context.Context, q database.Querier, meetingID string, attendeeIDs []string) error {
	if _, err := q.Exec(ctx, `DELETE FROM meeting_attendees WHERE meeting_id = $1`, meetingID); err != nil {
		return fmt.Errorf("failed to clear attendees: %w", err)
	}
	if len(attendeeIDs) == 0 {
		return nil
	}

	_, err := q.Exec(ctx, `
		INSERT INTO meeting_attendees (meeting_id, user_id)
		SELECT $1, unnest($2::uuid[])
	`, meetingID, attendeeIDs)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return meeting.ErrAttendeeNotFound
		}
		return fmt.Errorf("failed to insert attendees: %w", err)
	}
	return nil
}

// Create implements meeting.MeetingRepository.
func (r *meetingRepositoryImpl) Create(ctx context.Context, m meeting.Meeting) (meeting.Meeting, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return meeting.Meeting{}, fmt.Errorf("failed to generate meeting id: %w", err)
	}

	err = NewTransactor(r.db).WithinTransaction(ctx, func(txCtx context.Context) error {
		q := GetQuerier(txCtx, r.db)
		_, err := q.Exec(txCtx, `
			INSERT INTO meetings (id, title, description, location, start_at, end_at, organizer_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, id.String(), m.Title, m.Description, m.Location, m.StartAt, m.EndAt, m.OrganizerID)
		if err != nil {
			return fmt.Errorf("failed to create meeting: %w", err)
		}
		return r.replaceAttendees(txCtx, q, id.String(), m.AttendeeIDs)
	})
	if err != nil {
		return meeting.Meeting{}, err
	}

	return r.GetByID(ctx, id.String())
}

// GetByID implements meeting.MeetingRepository.
func (r *meetingRepositoryImpl) GetByID(ctx context.Context, id string) (meeting.Meeting, error) {
	q := GetQuerier(ctx, r.db)
	return scanMeeting(q.QueryRow(ctx, `SELECT `+meetingColumns+` FROM meetings m WHERE m.id = $1`, id))
}

// List implements meeting.MeetingRepository.
func (r *meetingRepositoryImpl) List(ctx context.Context, filter meeting.MeetingFilter) ([]meeting.Meeting, int64, error) {
	q := GetQuerier(ctx, r.db)

	var conditions []string
	var args []any
	argPos := 1

	if filter.UserID != nil {
		conditions = append(conditions, fmt.Sprintf(
			"(m.organizer_id = $%d OR EXISTS (SELECT 1 FROM meeting_attendees ma WHERE ma.meeting_id = m.id AND ma.user_id = $%d))",
			argPos, argPos))
		args = append(args, *filter.UserID)
		argPos++
	}
	if filter.From != nil {
		from, err := time.Parse(time.DateOnly, *filter.From)
		if err != nil {
			return nil, 0, err
		}
		conditions = append(conditions, fmt.Sprintf("m.end_at >= $%d", argPos))
		args = append(args, from)
		argPos++
	}
	if filter.To != nil {
		to, err := time.Parse(time.DateOnly, *filter.To)
		if err != nil {
			return nil, 0, err
		}
		conditions = append(conditions, fmt.Sprintf("m.start_at < $%d", argPos))
		args = append(args, to.AddDate(0, 0, 1))
		argPos++
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM meetings m "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count meetings: %w", err)
	}

	limit, offset := pagination(filter.Page, filter.Limit)
	query := fmt.Sprintf(`SELECT %s FROM meetings m %s ORDER BY m.start_at ASC LIMIT $%d OFFSET $%d`,
		meetingColumns, where, argPos, argPos+1)
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list meetings: %w", err)
	}
	defer rows.Close()

	meetings := make([]meeting.Meeting, 0)
	for rows.Next() {
		m, err := scanMeeting(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan meeting: %w", err)
		}
		meetings = append(meetings, m)
	}
	return meetings, total, rows.Err()
}

// Update implements meeting.MeetingRepository.
func (r *meetingRepositoryImpl) Update(ctx context.Context, m meeting.Meeting) (meeting.Meeting, error) {
	err := NewTransactor(r.db).WithinTransaction(ctx, func(txCtx context.Context) error {
		q := GetQuerier(txCtx, r.db)
		tag, err := q.Exec(txCtx, `
			UPDATE meetings
			SET title = $2, description = $3, location = $4, start_at = $5, end_at = $6, updated_at = NOW()
			WHERE id = $1
		`, m.ID, m.Title, m.Description, m.Location, m.StartAt, m.EndAt)
		if err != nil {
			return fmt.Errorf("failed to update meeting: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return meeting.ErrMeetingNotFound
		}
		return r.replaceAttendees(txCtx, q, m.ID, m.AttendeeIDs)
	})
	if err != nil {
		return meeting.Meeting{}, err
	}

	return r.GetByID(ctx, m.ID)
}

// Delete implements meeting.MeetingRepository.
func (r *meetingRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM meetings WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return meeting.ErrMeetingNotFound
	}
	return nil
}
