package attendance

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/office-backend-go/internal/pkg/timeacct"
	"github.com/cmlabs-hris/office-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// SubmitAttendanceRequest records a day's attendance. Times are wall-clock
// HH:MM[:SS] on Date in the application timezone.
type SubmitAttendanceRequest struct {
	UserID     *string `json:"user_id,omitempty"`
	Date       string  `json:"date"`
	ClockIn    *string `json:"clock_in,omitempty"`
	ClockOut   *string `json:"clock_out,omitempty"`
	BreakStart *string `json:"break_start,omitempty"`
	BreakEnd   *string `json:"break_end,omitempty"`
	Status     string  `json:"status"`
	Notes      *string `json:"notes,omitempty"`
}

func (r *SubmitAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.UserID != nil && validator.IsEmpty(*r.UserID) {
		r.UserID = nil
	}
	if r.UserID != nil && !validator.IsValidUUID(*r.UserID) {
		errs.Add("user_id", "user_id must be a valid UUID")
	}

	if validator.IsEmpty(r.Date) {
		errs.Add("date", "date is required")
	} else if _, ok := validator.IsValidDate(r.Date); !ok {
		errs.Add("date", "date must be in YYYY-MM-DD format")
	}

	clockIn := checkClock(&errs, "clock_in", r.ClockIn)
	clockOut := checkClock(&errs, "clock_out", r.ClockOut)
	breakStart := checkClock(&errs, "break_start", r.BreakStart)
	breakEnd := checkClock(&errs, "break_end", r.BreakEnd)

	if clockIn != nil && clockOut != nil && *clockOut < *clockIn {
		errs.Add("clock_out", "clock_out must not be before clock_in")
	}
	if breakStart != nil && breakEnd != nil && *breakEnd < *breakStart {
		errs.Add("break_end", "break_end must not be before break_start")
	}

	r.Status = strings.ToLower(strings.TrimSpace(r.Status))
	if r.Status == "" {
		r.Status = string(StatusPresent)
	}
	if !validator.IsInSlice(r.Status, Statuses()) {
		errs.Add("status", "status must be one of: "+strings.Join(Statuses(), ", "))
	}

	if r.Notes != nil && len(*r.Notes) > 500 {
		errs.Add("notes", "notes must not exceed 500 characters")
	}

	return errs.Err()
}

func checkClock(errs *validator.ValidationErrors, field string, value *string) *time.Duration {
	if value == nil || validator.IsEmpty(*value) {
		return nil
	}
	d, ok := validator.ParseClock(strings.TrimSpace(*value))
	if !ok {
		errs.Add(field, field+" must be in HH:MM or HH:MM:SS format")
		return nil
	}
	return &d
}

// ToAttendance resolves the request into a record for userID. Call Validate first.
func (r *SubmitAttendanceRequest) ToAttendance(userID string, loc *time.Location) Attendance {
	date, _ := validator.IsValidDate(r.Date)
	at := func(value *string) *time.Time {
		if value == nil || validator.IsEmpty(*value) {
			return nil
		}
		offset, ok := validator.ParseClock(strings.TrimSpace(*value))
		if !ok {
			return nil
		}
		t := timeacct.At(date, offset, loc)
		return &t
	}

	a := Attendance{
		UserID:     userID,
		Date:       date,
		ClockIn:    at(r.ClockIn),
		ClockOut:   at(r.ClockOut),
		BreakStart: at(r.BreakStart),
		BreakEnd:   at(r.BreakEnd),
		Status:     Status(r.Status),
		Notes:      r.Notes,
	}
	a.Recalculate()
	return a
}

type AttendanceResponse struct {
	ID         string          `json:"id"`
	UserID     string          `json:"user_id"`
	LoginID    *string         `json:"login_id,omitempty"`
	FullName   *string         `json:"full_name,omitempty"`
	Date       string          `json:"date"`
	ClockIn    *string         `json:"clock_in,omitempty"`
	ClockOut   *string         `json:"clock_out,omitempty"`
	BreakStart *string         `json:"break_start,omitempty"`
	BreakEnd   *string         `json:"break_end,omitempty"`
	TotalHours decimal.Decimal `json:"total_hours"`
	Status     string          `json:"status"`
	Notes      *string         `json:"notes,omitempty"`
	CreatedAt  string          `json:"created_at"`
	UpdatedAt  string          `json:"updated_at"`
}

func NewAttendanceResponse(a Attendance, loc *time.Location) AttendanceResponse {
	format := func(t *time.Time) *string {
		if t == nil {
			return nil
		}
		s := t.In(loc).Format(time.RFC3339)
		return &s
	}
	return AttendanceResponse{
		ID:         a.ID,
		UserID:     a.UserID,
		LoginID:    a.UserLoginID,
		FullName:   a.UserFullName,
		Date:       a.Date.Format(time.DateOnly),
		ClockIn:    format(a.ClockIn),
		ClockOut:   format(a.ClockOut),
		BreakStart: format(a.BreakStart),
		BreakEnd:   format(a.BreakEnd),
		TotalHours: a.TotalHours.Round(2),
		Status:     string(a.Status),
		Notes:      a.Notes,
		CreatedAt:  a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  a.UpdatedAt.Format(time.RFC3339),
	}
}

type ListAttendanceResponse struct {
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	TotalPages  int                  `json:"total_pages"`
	Attendances []AttendanceResponse `json:"attendances"`
}

type AttendanceFilter struct {
	UserID    *string `json:"user_id,omitempty"`
	StartDate *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate   *string `json:"end_date,omitempty"`   // YYYY-MM-DD
	Status    *string `json:"status,omitempty"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`

	// Sorting
	SortBy    string `json:"sort_by"`    // date, clock_in, total_hours, status
	SortOrder string `json:"sort_order"` // asc, desc
}

func (f *AttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs.Add("page", "page must be a positive number")
	}
	if f.Page == 0 {
		f.Page = 1
	}
	if f.Limit < 0 {
		errs.Add("limit", "limit must be a positive number")
	}
	if f.Limit == 0 {
		f.Limit = 20
	}
	if f.Limit > 1000 {
		errs.Add("limit", "limit must not exceed 1000")
	}

	if f.UserID != nil && !validator.IsValidUUID(*f.UserID) {
		errs.Add("user_id", "user_id must be a valid UUID")
	}

	if f.Status != nil && !validator.IsInSlice(*f.Status, Statuses()) {
		errs.Add("status", "status must be one of: "+strings.Join(Statuses(), ", "))
	}

	start := checkDate(&errs, "start_date", f.StartDate)
	end := checkDate(&errs, "end_date", f.EndDate)
	if start != nil && end != nil && end.Before(*start) {
		errs.Add("end_date", "end_date must not be before start_date")
	}

	if f.SortBy == "" {
		f.SortBy = "date"
	} else if !validator.IsInSlice(f.SortBy, []string{"date", "clock_in", "total_hours", "status"}) {
		errs.Add("sort_by", "sort_by must be one of: date, clock_in, total_hours, status")
	}

	f.SortOrder = strings.ToLower(f.SortOrder)
	if f.SortOrder == "" {
		f.SortOrder = "desc"
	} else if !validator.IsInSlice(f.SortOrder, []string{"asc", "desc"}) {
		errs.Add("sort_order", "sort_order must be one of: asc, desc")
	}

	return errs.Err()
}

// Range returns the parsed start and end dates. Call Validate first.
func (f *AttendanceFilter) Range() (from, to *time.Time) {
	return parseDate(f.StartDate), parseDate(f.EndDate)
}

type SummaryRequest struct {
	UserID    *string
	StartDate *string
	EndDate   *string
}

func (r *SummaryRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.UserID != nil && !validator.IsValidUUID(*r.UserID) {
		errs.Add("user_id", "user_id must be a valid UUID")
	}
	start := checkDate(&errs, "start_date", r.StartDate)
	end := checkDate(&errs, "end_date", r.EndDate)
	if start != nil && end != nil && end.Before(*start) {
		errs.Add("end_date", "end_date must not be before start_date")
	}

	return errs.Err()
}

type SummaryResponse struct {
	UserID     string          `json:"user_id"`
	StartDate  *string         `json:"start_date,omitempty"`
	EndDate    *string         `json:"end_date,omitempty"`
	TotalHours decimal.Decimal `json:"total_hours"`
	Records    int             `json:"records"`
	ByStatus   map[string]int  `json:"by_status"`
}

func checkDate(errs *validator.ValidationErrors, field string, value *string) *time.Time {
	if value == nil || *value == "" {
		return nil
	}
	d, ok := validator.IsValidDate(*value)
	if !ok {
		errs.Add(field, field+" must be in YYYY-MM-DD format")
		return nil
	}
	return &d
}

func parseDate(value *string) *time.Time {
	if value == nil || *value == "" {
		return nil
	}
	d, ok := validator.IsValidDate(*value)
	if !ok {
		return nil
	}
	return &d
}
