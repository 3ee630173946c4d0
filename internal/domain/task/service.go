package task

import (
	"context"

	"github.com/cmlabs-hris/office-backend-go/internal/domain/user"
)

type TaskService interface {
	Create(ctx context.Context, caller user.Caller, req CreateTaskRequest) (TaskResponse, error)
	Get(ctx context.Context, caller user.Caller, id string) (TaskResponse, error)
	ListMine(ctx context.Context, caller user.Caller, filter TaskFilter) (ListTaskResponse, error)
	List(ctx context.Context, caller user.Caller, filter TaskFilter) (ListTaskResponse, error)
	Update(ctx context.Context, caller user.Caller, req UpdateTaskRequest) (TaskResponse, error)
	UpdateStatus(ctx context.Context, caller user.Caller, req UpdateTaskStatusRequest) (TaskResponse, error)
	Delete(ctx context.Context, caller user.Caller, id string) error
}
