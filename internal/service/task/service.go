package task

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/cmlabs-hris/office-backend-go/internal/domain/task"
	"github.com/cmlabs-hris/office-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/office-backend-go/internal/pkg/validator"
)

type TaskServiceImpl struct {
	task.TaskRepository
	user.UserRepository
}

func NewTaskService(taskRepository task.TaskRepository, userRepository user.UserRepository) task.TaskService {
	return &TaskServiceImpl{
		TaskRepository: taskRepository,
		UserRepository: userRepository,
	}
}

// Create implements task.TaskService.
func (s *TaskServiceImpl) Create(ctx context.Context, caller user.Caller, req task.CreateTaskRequest) (task.TaskResponse, error) {
	if !caller.Can(user.PermissionTaskManage) {
		return task.TaskResponse{}, task.ErrUnauthorizedAccess
	}
	if err := req.Validate(); err != nil {
		return task.TaskResponse{}, err
	}
	if req.AssignedTo != nil {
		if err := s.checkAssignee(ctx, *req.AssignedTo); err != nil {
			return task.TaskResponse{}, err
		}
	}

	newTask := task.Task{
		Title:       req.Title,
		Description: req.Description,
		AssignedTo:  req.AssignedTo,
		CreatedBy:   caller.UserID,
		Status:      task.StatusTodo,
		Priority:    task.Priority(req.Priority),
	}
	if req.DueDate != nil {
		due, _ := validator.IsValidDate(*req.DueDate)
		newTask.DueDate = &due
	}

	created, err := s.TaskRepository.Create(ctx, newTask)
	if err != nil {
		return task.TaskResponse{}, err
	}
	return task.NewTaskResponse(created), nil
}

// checkAssignee rejects unknown and deactivated users.
func (s *TaskServiceImpl) checkAssignee(ctx context.Context, userID string) error {
	assignee, err := s.UserRepository.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return task.ErrAssigneeNotFound
		}
		return err
	}
	if !assignee.IsActive {
		return task.ErrAssigneeNotFound
	}
	return nil
}

// Get implements task.TaskService.
func (s *TaskServiceImpl) Get(ctx context.Context, caller user.Caller, id string) (task.TaskResponse, error) {
	found, err := s.TaskRepository.GetByID(ctx, id)
	if err != nil {
		return task.TaskResponse{}, err
	}
	if !canSee(caller, found) {
		return task.TaskResponse{}, task.ErrUnauthorizedAccess
	}
	return task.NewTaskResponse(found), nil
}

func canSee(caller user.Caller, t task.Task) bool {
	if caller.Can(user.PermissionTaskViewAll) || caller.Is(t.CreatedBy) {
		return true
	}
	return t.AssignedTo != nil && caller.Is(*t.AssignedTo)
}

// ListMine implements task.TaskService.
func (s *TaskServiceImpl) ListMine(ctx context.Context, caller user.Caller, filter task.TaskFilter) (task.ListTaskResponse, error) {
	if !caller.Can(user.PermissionTaskViewOwn) {
		return task.ListTaskResponse{}, task.ErrUnauthorizedAccess
	}
	filter.AssignedTo = &caller.UserID
	return s.list(ctx, filter)
}

// List implements task.TaskService.
func (s *TaskServiceImpl) List(ctx context.Context, caller user.Caller, filter task.TaskFilter) (task.ListTaskResponse, error) {
	if !caller.Can(user.PermissionTaskViewAll) {
		return task.ListTaskResponse{}, task.ErrUnauthorizedAccess
	}
	return s.list(ctx, filter)
}

func (s *TaskServiceImpl) list(ctx context.Context, filter task.TaskFilter) (task.ListTaskResponse, error) {
	if err := filter.Validate(); err != nil {
		return task.ListTaskResponse{}, err
	}

	tasks, total, err := s.TaskRepository.List(ctx, filter)
	if err != nil {
		return task.ListTaskResponse{}, fmt.Errorf("failed to list tasks: %w", err)
	}

	resp := task.ListTaskResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Tasks:      make([]task.TaskResponse, 0, len(tasks)),
	}
	for _, t := range tasks {
		resp.Tasks = append(resp.Tasks, task.NewTaskResponse(t))
	}
	return resp, nil
}

// Update implements task.TaskService. An empty assigned_to or due_date clears the field.
func (s *TaskServiceImpl) Update(ctx context.Context, caller user.Caller, req task.UpdateTaskRequest) (task.TaskResponse, error) {
	if !caller.Can(user.PermissionTaskManage) {
		return task.TaskResponse{}, task.ErrUnauthorizedAccess
	}
	if err := req.Validate(); err != nil {
		return task.TaskResponse{}, err
	}

	existing, err := s.TaskRepository.GetByID(ctx, req.ID)
	if err != nil {
		return task.TaskResponse{}, err
	}

	if req.Title != nil {
		existing.Title = *req.Title
	}
	if req.Description != nil {
		existing.Description = req.Description
	}
	if req.AssignedTo != nil {
		if *req.AssignedTo == "" {
			existing.AssignedTo = nil
		} else {
			if err := s.checkAssignee(ctx, *req.AssignedTo); err != nil {
				return task.TaskResponse{}, err
			}
			existing.AssignedTo = req.AssignedTo
		}
	}
	if req.Status != nil {
		existing.Status = task.Status(*req.Status)
	}
	if req.Priority != nil {
		existing.Priority = task.Priority(*req.Priority)
	}
	if req.DueDate != nil {
		if *req.DueDate == "" {
			existing.DueDate = nil
		} else {
			due, _ := validator.IsValidDate(*req.DueDate)
			existing.DueDate = &due
		}
	}

	updated, err := s.TaskRepository.Update(ctx, existing)
	if err != nil {
		return task.TaskResponse{}, err
	}
	return task.NewTaskResponse(updated), nil
}

// UpdateStatus implements task.TaskService. Assignees may move their own tasks.
func (s *TaskServiceImpl) UpdateStatus(ctx context.Context, caller user.Caller, req task.UpdateTaskStatusRequest) (task.TaskResponse, error) {
	if err := req.Validate(); err != nil {
		return task.TaskResponse{}, err
	}

	existing, err := s.TaskRepository.GetByID(ctx, req.ID)
	if err != nil {
		return task.TaskResponse{}, err
	}
	assignee := existing.AssignedTo != nil && caller.Is(*existing.AssignedTo)
	if !assignee && !caller.Can(user.PermissionTaskManage) {
		return task.TaskResponse{}, task.ErrUnauthorizedAccess
	}

	updated, err := s.TaskRepository.UpdateStatus(ctx, req.ID, task.Status(req.Status))
	if err != nil {
		return task.TaskResponse{}, err
	}
	return task.NewTaskResponse(updated), nil
}

// Delete implements task.TaskService.
func (s *TaskServiceImpl) Delete(ctx context.Context, caller user.Caller, id string) error {
	if !caller.Can(user.PermissionTaskManage) {
		return task.ErrUnauthorizedAccess
	}
	return s.TaskRepository.Delete(ctx, id)
}
