package attendance

import (
	"context"
	"time"
)

type AttendanceRepository interface {
	// Upsert replaces the record for (UserID, Date) wholesale.
	Upsert(ctx context.Context, a Attendance) (Attendance, error)
	GetByID(ctx context.Context, id string) (Attendance, error)
	List(ctx context.Context, filter AttendanceFilter) ([]Attendance, int64, error)
	Delete(ctx context.Context, id string) error
	Summary(ctx context.Context, userID string, from, to *time.Time) (Summary, error)

	// MarkAbsent inserts absent records for active users with neither an
	// attendance record nor approved leave on date. Existing rows are untouched.
	MarkAbsent(ctx context.Context, date time.Time) (int64, error)
}
