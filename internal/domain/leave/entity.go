package leave

import "time"

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

func Statuses() []string {
	return []string{string(StatusPending), string(StatusApproved), string(StatusRejected), string(StatusCancelled)}
}

type Type string

const (
	TypeAnnual    Type = "annual"
	TypeSick      Type = "sick"
	TypePersonal  Type = "personal"
	TypeMaternity Type = "maternity"
	TypeEmergency Type = "emergency"
)

func Types() []string {
	return []string{string(TypeAnnual), string(TypeSick), string(TypePersonal), string(TypeMaternity), string(TypeEmergency)}
}

type LeaveRequest struct {
	ID              string
	UserID          string
	LeaveType       Type
	StartDate       time.Time
	EndDate         time.Time
	DaysRequested   int
	Reason          string
	Status          Status
	ApprovedBy      *string
	ApprovedAt      *time.Time
	RejectionReason *string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// DTO / Join
	UserLoginID  *string
	UserFullName *string
}

// IsPending reports whether the request is still awaiting a decision.
func (l *LeaveRequest) IsPending() bool {
	return l.Status == StatusPending
}
