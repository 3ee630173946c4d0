package leave

import (
	"context"

	"github.com/cmlabs-hris/office-backend-go/internal/domain/user"
)

type LeaveService interface {
	Create(ctx context.Context, caller user.Caller, req CreateLeaveRequestRequest) (LeaveRequestResponse, error)
	Get(ctx context.Context, caller user.Caller, id string) (LeaveRequestResponse, error)
	ListMine(ctx context.Context, caller user.Caller, filter LeaveRequestFilter) (ListLeaveRequestResponse, error)
	List(ctx context.Context, caller user.Caller, filter LeaveRequestFilter) (ListLeaveRequestResponse, error)
	Approve(ctx context.Context, caller user.Caller, id string) (LeaveRequestResponse, error)
	Reject(ctx context.Context, caller user.Caller, req RejectLeaveRequestRequest) (LeaveRequestResponse, error)
	Cancel(ctx context.Context, caller user.Caller, id string) (LeaveRequestResponse, error)
}
