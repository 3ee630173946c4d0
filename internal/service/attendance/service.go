package attendance

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/cmlabs-hris/office-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/office-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/office-backend-go/internal/pkg/export"
)

// exportPageSize bounds each repository read while building a timesheet.
const exportPageSize = 1000

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	user.UserRepository
	loc *time.Location
}

func NewAttendanceService(attendanceRepository attendance.AttendanceRepository, userRepository user.UserRepository, loc *time.Location) attendance.AttendanceService {
	if loc == nil {
		loc = time.UTC
	}
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepository,
		UserRepository:       userRepository,
		loc:                  loc,
	}
}

// Submit implements attendance.AttendanceService. Submitting for another
// user requires attendance.manage.
func (s *AttendanceServiceImpl) Submit(ctx context.Context, caller user.Caller, req attendance.SubmitAttendanceRequest) (attendance.AttendanceResponse, error) {
	if !caller.Can(user.PermissionAttendanceSubmitOwn) {
		return attendance.AttendanceResponse{}, attendance.ErrUnauthorized
	}
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	target := caller.UserID
	if req.UserID != nil && !caller.Is(*req.UserID) {
		if !caller.Can(user.PermissionAttendanceManage) {
			return attendance.AttendanceResponse{}, attendance.ErrUnauthorized
		}
		if _, err := s.UserRepository.GetByID(ctx, *req.UserID); err != nil {
			if errors.Is(err, user.ErrUserNotFound) {
				return attendance.AttendanceResponse{}, attendance.ErrUserNotFound
			}
			return attendance.AttendanceResponse{}, err
		}
		target = *req.UserID
	}

	saved, err := s.AttendanceRepository.Upsert(ctx, req.ToAttendance(target, s.loc))
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to save attendance: %w", err)
	}
	return attendance.NewAttendanceResponse(saved, s.loc), nil
}

// Get implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Get(ctx context.Context, caller user.Caller, id string) (attendance.AttendanceResponse, error) {
	record, err := s.AttendanceRepository.GetByID(ctx, id)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if !caller.Is(record.UserID) && !caller.Can(user.PermissionAttendanceViewAll) {
		return attendance.AttendanceResponse{}, attendance.ErrUnauthorized
	}
	return attendance.NewAttendanceResponse(record, s.loc), nil
}

// ListMine implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListMine(ctx context.Context, caller user.Caller, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	filter.UserID = &caller.UserID
	return s.list(ctx, filter)
}

// List implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) List(ctx context.Context, caller user.Caller, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if !caller.Can(user.PermissionAttendanceViewAll) {
		return attendance.ListAttendanceResponse{}, attendance.ErrUnauthorized
	}
	return s.list(ctx, filter)
}

func (s *AttendanceServiceImpl) list(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	records, total, err := s.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	resp := attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		TotalPages:  int(math.Ceil(float64(total) / float64(filter.Limit))),
		Attendances: make([]attendance.AttendanceResponse, 0, len(records)),
	}
	for _, r := range records {
		resp.Attendances = append(resp.Attendances, attendance.NewAttendanceResponse(r, s.loc))
	}
	return resp, nil
}

// Delete implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Delete(ctx context.Context, caller user.Caller, id string) error {
	if !caller.Can(user.PermissionAttendanceManage) {
		return attendance.ErrUnauthorized
	}
	return s.AttendanceRepository.Delete(ctx, id)
}

// Summary implements attendance.AttendanceService. Without a user id the caller's own records are summarised.
func (s *AttendanceServiceImpl) Summary(ctx context.Context, caller user.Caller, req attendance.SummaryRequest) (attendance.SummaryResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.SummaryResponse{}, err
	}

	target := caller.UserID
	if req.UserID != nil && !caller.Is(*req.UserID) {
		if !caller.Can(user.PermissionAttendanceViewAll) {
			return attendance.SummaryResponse{}, attendance.ErrUnauthorized
		}
		target = *req.UserID
	}

	filter := attendance.AttendanceFilter{StartDate: req.StartDate, EndDate: req.EndDate}
	from, to := filter.Range()
	summary, err := s.AttendanceRepository.Summary(ctx, target, from, to)
	if err != nil {
		return attendance.SummaryResponse{}, fmt.Errorf("failed to summarise attendance: %w", err)
	}

	byStatus := make(map[string]int, len(attendance.Statuses()))
	for _, status := range attendance.Statuses() {
		byStatus[status] = summary.ByStatus[attendance.Status(status)]
	}

	return attendance.SummaryResponse{
		UserID:     target,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		TotalHours: summary.TotalHours.Round(2),
		Records:    summary.Records,
		ByStatus:   byStatus,
	}, nil
}

// ExportTimesheet implements attendance.AttendanceService. Every page matching
// filter is written; pagination fields on filter are ignored.
func (s *AttendanceServiceImpl) ExportTimesheet(ctx context.Context, caller user.Caller, filter attendance.AttendanceFilter) (*bytes.Buffer, error) {
	if filter.UserID == nil || !caller.Is(*filter.UserID) {
		if !caller.Can(user.PermissionAttendanceViewAll) {
			return nil, attendance.ErrUnauthorized
		}
	}

	filter.Page = 1
	filter.Limit = exportPageSize
	if filter.SortBy == "" {
		filter.SortBy = "date"
		filter.SortOrder = "asc"
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	var rows []export.TimesheetRow
	for {
		records, total, err := s.AttendanceRepository.List(ctx, filter)
		if err != nil {
			return nil, fmt.Errorf("failed to list attendance: %w", err)
		}
		for _, r := range records {
			rows = append(rows, timesheetRow(r))
		}
		if len(records) == 0 || int64(len(rows)) >= total {
			break
		}
		filter.Page++
	}

	return export.Timesheet(rows, s.loc)
}

func timesheetRow(a attendance.Attendance) export.TimesheetRow {
	row := export.TimesheetRow{
		Date:     a.Date,
		ClockIn:  a.ClockIn,
		ClockOut: a.ClockOut,
		Hours:    a.TotalHours,
		Status:   string(a.Status),
	}
	if a.UserLoginID != nil {
		row.LoginID = *a.UserLoginID
	}
	if a.UserFullName != nil {
		row.FullName = *a.UserFullName
	}
	if a.Notes != nil {
		row.Notes = *a.Notes
	}
	if brk := a.Break(); brk.Complete() {
		row.BreakMinutes = int(brk.Duration().Minutes())
	}
	return row
}
