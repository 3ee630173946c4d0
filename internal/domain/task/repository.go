package task

import "context"

type TaskRepository interface {
	Create(ctx context.Context, t Task) (Task, error)
	GetByID(ctx context.Context, id string) (Task, error)
	List(ctx context.Context, filter TaskFilter) ([]Task, int64, error)
	Update(ctx context.Context, t Task) (Task, error)
	UpdateStatus(ctx context.Context, id string, status Status) (Task, error)
	Delete(ctx context.Context, id string) error
}
