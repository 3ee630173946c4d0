package meeting

import "context"

type MeetingRepository interface {
	Create(ctx context.Context, m Meeting) (Meeting, error)
	GetByID(ctx context.Context, id string) (Meeting, error)
	List(ctx context.Context, filter MeetingFilter) ([]Meeting, int64, error)
	Update(ctx context.Context, m Meeting) (Meeting, error)
	Delete(ctx context.Context, id string) error
}
