package leave

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/cmlabs-hris/office-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/office-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/office-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/office-backend-go/internal/pkg/timeacct"
)

type LeaveServiceImpl struct {
	tx database.Transactor
	leave.LeaveRequestRepository
	user.UserRepository
	logger *slog.Logger
}

func NewLeaveService(
	tx database.Transactor,
	leaveRequestRepository leave.LeaveRequestRepository,
	userRepository user.UserRepository,
	logger *slog.Logger,
) leave.LeaveService {
	if logger == nil {
		logger = slog.Default()
	}
	return &LeaveServiceImpl{
		tx:                     tx,
		LeaveRequestRepository: leaveRequestRepository,
		UserRepository:         userRepository,
		logger:                 logger,
	}
}

// Create implements leave.LeaveService. Filing on behalf of another user
// requires leave.approve.
func (l *LeaveServiceImpl) Create(ctx context.Context, caller user.Caller, req leave.CreateLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	if !caller.Can(user.PermissionLeaveCreate) {
		return leave.LeaveRequestResponse{}, leave.ErrUnauthorizedAccess
	}
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	target := caller.UserID
	if req.UserID != nil && !caller.Is(*req.UserID) {
		if !caller.Can(user.PermissionLeaveApprove) {
			return leave.LeaveRequestResponse{}, leave.ErrUnauthorizedAccess
		}
		if _, err := l.UserRepository.GetByID(ctx, *req.UserID); err != nil {
			return leave.LeaveRequestResponse{}, err
		}
		target = *req.UserID
	}

	var created leave.LeaveRequest
	err := l.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := l.LeaveRequestRepository.LockUser(txCtx, target); err != nil {
			return fmt.Errorf("failed to lock leave requests: %w", err)
		}

		overlap, err := l.LeaveRequestRepository.HasOverlap(txCtx, target, req.Start, req.End)
		if err != nil {
			return err
		}
		if overlap {
			return leave.ErrOverlappingLeaveRequest
		}

		created, err = l.LeaveRequestRepository.Create(txCtx, leave.LeaveRequest{
			UserID:        target,
			LeaveType:     leave.Type(req.LeaveType),
			StartDate:     req.Start,
			EndDate:       req.End,
			DaysRequested: timeacct.DaysRequested(req.Start, req.End),
			Reason:        req.Reason,
			Status:        leave.StatusPending,
		})
		return err
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	l.logger.Info("leave request created", "request_id", created.ID, "user_id", created.UserID, "days", created.DaysRequested)
	return leave.NewLeaveRequestResponse(created), nil
}

// Get implements leave.LeaveService.
func (l *LeaveServiceImpl) Get(ctx context.Context, caller user.Caller, id string) (leave.LeaveRequestResponse, error) {
	request, err := l.LeaveRequestRepository.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if !caller.Is(request.UserID) && !caller.Can(user.PermissionLeaveViewAll) {
		return leave.LeaveRequestResponse{}, leave.ErrUnauthorizedAccess
	}
	return leave.NewLeaveRequestResponse(request), nil
}

// ListMine implements leave.LeaveService.
func (l *LeaveServiceImpl) ListMine(ctx context.Context, caller user.Caller, filter leave.LeaveRequestFilter) (leave.ListLeaveRequestResponse, error) {
	filter.UserID = &caller.UserID
	return l.list(ctx, filter)
}

// List implements leave.LeaveService.
func (l *LeaveServiceImpl) List(ctx context.Context, caller user.Caller, filter leave.LeaveRequestFilter) (leave.ListLeaveRequestResponse, error) {
	if !caller.Can(user.PermissionLeaveViewAll) {
		return leave.ListLeaveRequestResponse{}, leave.ErrUnauthorizedAccess
	}
	return l.list(ctx, filter)
}

func (l *LeaveServiceImpl) list(ctx context.Context, filter leave.LeaveRequestFilter) (leave.ListLeaveRequestResponse, error) {
	if err := filter.Validate(); err != nil {
		return leave.ListLeaveRequestResponse{}, err
	}

	requests, total, err := l.LeaveRequestRepository.List(ctx, filter)
	if err != nil {
		return leave.ListLeaveRequestResponse{}, fmt.Errorf("failed to list leave requests: %w", err)
	}

	resp := leave.ListLeaveRequestResponse{
		TotalCount:    total,
		Page:          filter.Page,
		Limit:         filter.Limit,
		TotalPages:    int(math.Ceil(float64(total) / float64(filter.Limit))),
		LeaveRequests: make([]leave.LeaveRequestResponse, 0, len(requests)),
	}
	for _, r := range requests {
		resp.LeaveRequests = append(resp.LeaveRequests, leave.NewLeaveRequestResponse(r))
	}
	return resp, nil
}

// Approve implements leave.LeaveService.
func (l *LeaveServiceImpl) Approve(ctx context.Context, caller user.Caller, id string) (leave.LeaveRequestResponse, error) {
	if err := l.checkDecider(ctx, caller, id); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	approved, err := l.LeaveRequestRepository.Transition(ctx, id, leave.StatusApproved, &caller.UserID, nil)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	l.logger.Info("leave request approved", "request_id", id, "approved_by", caller.UserID)
	return leave.NewLeaveRequestResponse(approved), nil
}

// Reject implements leave.LeaveService.
func (l *LeaveServiceImpl) Reject(ctx context.Context, caller user.Caller, req leave.RejectLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if err := l.checkDecider(ctx, caller, req.RequestID); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	rejected, err := l.LeaveRequestRepository.Transition(ctx, req.RequestID, leave.StatusRejected, &caller.UserID, &req.Reason)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	l.logger.Info("leave request rejected", "request_id", req.RequestID, "rejected_by", caller.UserID)
	return leave.NewLeaveRequestResponse(rejected), nil
}

func (l *LeaveServiceImpl) checkDecider(ctx context.Context, caller user.Caller, id string) error {
	if !caller.Can(user.PermissionLeaveApprove) {
		return leave.ErrUnauthorizedAccess
	}
	request, err := l.LeaveRequestRepository.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if caller.Is(request.UserID) {
		return leave.ErrCannotDecideOwnRequest
	}
	if !request.IsPending() {
		return leave.ErrLeaveRequestAlreadyProcessed
	}
	return nil
}

// Cancel implements leave.LeaveService. Only the owner may cancel, and only while pending.
func (l *LeaveServiceImpl) Cancel(ctx context.Context, caller user.Caller, id string) (leave.LeaveRequestResponse, error) {
	request, err := l.LeaveRequestRepository.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if !caller.Is(request.UserID) {
		return leave.LeaveRequestResponse{}, leave.ErrUnauthorizedAccess
	}

	cancelled, err := l.LeaveRequestRepository.Transition(ctx, id, leave.StatusCancelled, nil, nil)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	return leave.NewLeaveRequestResponse(cancelled), nil
}
