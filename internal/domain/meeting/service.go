package meeting

import (
	"context"

	"github.com/cmlabs-hris/office-backend-go/internal/domain/user"
)

type MeetingService interface {
	Create(ctx context.Context, caller user.Caller, req CreateMeetingRequest) (MeetingResponse, error)
	Get(ctx context.Context, caller user.Caller, id string) (MeetingResponse, error)
	ListMine(ctx context.Context, caller user.Caller, filter MeetingFilter) (ListMeetingResponse, error)
	List(ctx context.Context, caller user.Caller, filter MeetingFilter) (ListMeetingResponse, error)
	Update(ctx context.Context, caller user.Caller, req UpdateMeetingRequest) (MeetingResponse, error)
	Delete(ctx context.Context, caller user.Caller, id string) error
}
