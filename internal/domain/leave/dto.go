package leave

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/office-backend-go/internal/pkg/validator"
)

type CreateLeaveRequestRequest struct {
	UserID    *string `json:"user_id,omitempty"`
	LeaveType string  `json:"leave_type"`
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	Reason    string  `json:"reason"`

	// Parsed by Validate
	Start time.Time `json:"-"`
	End   time.Time `json:"-"`
}

func (r *CreateLeaveRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.UserID != nil && validator.IsEmpty(*r.UserID) {
		r.UserID = nil
	}
	if r.UserID != nil && !validator.IsValidUUID(*r.UserID) {
		errs.Add("user_id", "user_id must be a valid UUID")
	}

	r.LeaveType = strings.ToLower(strings.TrimSpace(r.LeaveType))
	if validator.IsEmpty(r.LeaveType) {
		errs.Add("leave_type", "leave_type is required")
	} else if !validator.IsInSlice(r.LeaveType, Types()) {
		errs.Add("leave_type", "leave_type must be one of: "+strings.Join(Types(), ", "))
	}

	var startOK, endOK bool
	if validator.IsEmpty(r.StartDate) {
		errs.Add("start_date", "start_date is required")
	} else if r.Start, startOK = validator.IsValidDate(r.StartDate); !startOK {
		errs.Add("start_date", "start_date must be in YYYY-MM-DD format")
	}

	if validator.IsEmpty(r.EndDate) {
		errs.Add("end_date", "end_date is required")
	} else if r.End, endOK = validator.IsValidDate(r.EndDate); !endOK {
		errs.Add("end_date", "end_date must be in YYYY-MM-DD format")
	}

	if startOK && endOK && r.End.Before(r.Start) {
		errs.Add("end_date", "end_date must be on or after start_date")
	}

	r.Reason = strings.TrimSpace(r.Reason)
	if validator.IsEmpty(r.Reason) {
		errs.Add("reason", "reason is required")
	} else if len(r.Reason) > 1000 {
		errs.Add("reason", "reason must not exceed 1000 characters")
	}

	return errs.Err()
}

type RejectLeaveRequestRequest struct {
	RequestID string `json:"-"`
	Reason    string `json:"reason"`
}

func (r *RejectLeaveRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RequestID) {
		errs.Add("request_id", "request_id is required")
	}
	r.Reason = strings.TrimSpace(r.Reason)
	if validator.IsEmpty(r.Reason) {
		errs.Add("reason", "reason is required")
	}

	return errs.Err()
}

type LeaveRequestFilter struct {
	UserID    *string `json:"user_id,omitempty"`
	Status    *string `json:"status,omitempty"`
	LeaveType *string `json:"leave_type,omitempty"`
	StartDate *string `json:"start_date,omitempty"`
	EndDate   *string `json:"end_date,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *LeaveRequestFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs.Add("page", "page must be a positive number")
	}
	if f.Page == 0 {
		f.Page = 1
	}
	if f.Limit < 0 || f.Limit > 100 {
		errs.Add("limit", "limit must be between 1 and 100")
	}
	if f.Limit == 0 {
		f.Limit = 20
	}

	if f.UserID != nil && !validator.IsValidUUID(*f.UserID) {
		errs.Add("user_id", "user_id must be a valid UUID")
	}
	if f.Status != nil && !validator.IsInSlice(*f.Status, Statuses()) {
		errs.Add("status", "status must be one of: "+strings.Join(Statuses(), ", "))
	}
	if f.LeaveType != nil && !validator.IsInSlice(*f.LeaveType, Types()) {
		errs.Add("leave_type", "leave_type must be one of: "+strings.Join(Types(), ", "))
	}
	if f.StartDate != nil {
		if _, ok := validator.IsValidDate(*f.StartDate); !ok {
			errs.Add("start_date", "start_date must be in YYYY-MM-DD format")
		}
	}
	if f.EndDate != nil {
		if _, ok := validator.IsValidDate(*f.EndDate); !ok {
			errs.Add("end_date", "end_date must be in YYYY-MM-DD format")
		}
	}

	return errs.Err()
}

type LeaveRequestResponse struct {
	ID              string  `json:"id"`
	UserID          string  `json:"user_id"`
	LoginID         *string `json:"login_id,omitempty"`
	FullName        *string `json:"full_name,omitempty"`
	LeaveType       string  `json:"leave_type"`
	StartDate       string  `json:"start_date"`
	EndDate         string  `json:"end_date"`
	DaysRequested   int     `json:"days_requested"`
	Reason          string  `json:"reason"`
	Status          string  `json:"status"`
	ApprovedBy      *string `json:"approved_by,omitempty"`
	ApprovedAt      *string `json:"approved_at,omitempty"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

func NewLeaveRequestResponse(l LeaveRequest) LeaveRequestResponse {
	resp := LeaveRequestResponse{
		ID:              l.ID,
		UserID:          l.UserID,
		LoginID:         l.UserLoginID,
		FullName:        l.UserFullName,
		LeaveType:       string(l.LeaveType),
		StartDate:       l.StartDate.Format(time.DateOnly),
		EndDate:         l.EndDate.Format(time.DateOnly),
		DaysRequested:   l.DaysRequested,
		Reason:          l.Reason,
		Status:          string(l.Status),
		ApprovedBy:      l.ApprovedBy,
		RejectionReason: l.RejectionReason,
		CreatedAt:       l.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       l.UpdatedAt.Format(time.RFC3339),
	}
	if l.ApprovedAt != nil {
		at := l.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &at
	}
	return resp
}

type ListLeaveRequestResponse struct {
	TotalCount    int64                  `json:"total_count"`
	Page          int                    `json:"page"`
	Limit         int                    `json:"limit"`
	TotalPages    int                    `json:"total_pages"`
	LeaveRequests []LeaveRequestResponse `json:"leave_requests"`
}
