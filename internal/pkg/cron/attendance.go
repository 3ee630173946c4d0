package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/office-backend-go/internal/domain/attendance"
)

type AttendanceJobs struct {
	attendanceRepo attendance.AttendanceRepository
	loc            *time.Location
	logger         *slog.Logger
	now            func() time.Time
}

func NewAttendanceJobs(attendanceRepo attendance.AttendanceRepository, loc *time.Location, logger *slog.Logger) *AttendanceJobs {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AttendanceJobs{
		attendanceRepo: attendanceRepo,
		loc:            loc,
		logger:         logger,
		now:            time.Now,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	scheduler.AddJob("mark_absent_users", interval, j.MarkAbsentUsers)
}

// MarkAbsentUsers records an absence for every active user who neither
// submitted attendance nor had approved leave on the previous working day.
// Re-running for the same day inserts nothing new.
func (j *AttendanceJobs) MarkAbsentUsers(ctx context.Context) error {
	day := PreviousWorkingDay(j.now(), j.loc)

	marked, err := j.attendanceRepo.MarkAbsent(ctx, day)
	if err != nil {
		return fmt.Errorf("failed to mark absent users for %s: %w", day.Format(time.DateOnly), err)
	}
	if marked > 0 {
		j.logger.Info("Cron: Marked users absent", "date", day.Format(time.DateOnly), "count", marked)
	}
	return nil
}

// PreviousWorkingDay returns the most recent Monday-Friday strictly before
// now's calendar date in loc, as a UTC midnight date.
func PreviousWorkingDay(now time.Time, loc *time.Location) time.Time {
	local := now.In(loc)
	day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
	for day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
		day = day.AddDate(0, 0, -1)
	}
	return day
}
