package leave

import (
	"context"
	"time"
)

type LeaveRequestRepository interface {
	Create(ctx context.Context, req LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	List(ctx context.Context, filter LeaveRequestFilter) ([]LeaveRequest, int64, error)

	// LockUser serialises request creation for userID until the surrounding
	// transaction ends.
	LockUser(ctx context.Context, userID string) error

	// HasOverlap reports whether userID has a pending or approved request intersecting [start, end].
	HasOverlap(ctx context.Context, userID string, start, end time.Time) (bool, error)

	// Transition moves a pending request to status. It returns
	// ErrLeaveRequestAlreadyProcessed when the request is no longer pending.
	Transition(ctx context.Context, id string, to Status, decidedBy *string, reason *string) (LeaveRequest, error)
}
