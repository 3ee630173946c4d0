package attendance

import (
	"bytes"
	"context"

	"github.com/cmlabs-hris/office-backend-go/internal/domain/user"
)

type AttendanceService interface {
	Submit(ctx context.Context, caller user.Caller, req SubmitAttendanceRequest) (AttendanceResponse, error)
	Get(ctx context.Context, caller user.Caller, id string) (AttendanceResponse, error)
	ListMine(ctx context.Context, caller user.Caller, filter AttendanceFilter) (ListAttendanceResponse, error)
	List(ctx context.Context, caller user.Caller, filter AttendanceFilter) (ListAttendanceResponse, error)
	Delete(ctx context.Context, caller user.Caller, id string) error
	Summary(ctx context.Context, caller user.Caller, req SummaryRequest) (SummaryResponse, error)
	ExportTimesheet(ctx context.Context, caller user.Caller, filter AttendanceFilter) (*bytes.Buffer, error)
}
