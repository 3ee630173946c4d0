package http

import (
	"net/http"

	"github.com/cmlabs-hris/office-backend-go/internal/domain/task"
	"github.com/cmlabs-hris/office-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type TaskHandler interface {
	ListMine(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	UpdateStatus(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type taskHandlerImpl struct {
	taskService task.TaskService
}

func NewTaskHandler(taskService task.TaskService) TaskHandler {
	return &taskHandlerImpl{taskService: taskService}
}

func taskFilter(r *http.Request) task.TaskFilter {
	filter := task.TaskFilter{
		AssignedTo: queryPtr(r, "assigned_to"),
		Status:     queryPtr(r, "status"),
		Priority:   queryPtr(r, "priority"),
	}
	filter.Page, filter.Limit = pageParams(r)
	return filter
}

// ListMine implements TaskHandler.
func (h *taskHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOf(w, r)
	if !ok {
		return
	}

	tasks, err := h.taskService.ListMine(r.Context(), caller, taskFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMeta(w, tasks, response.PageMeta(tasks.Page, tasks.Limit, tasks.TotalCount, tasks.TotalPages))
}

// List implements TaskHandler.
func (h *taskHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOf(w, r)
	if !ok {
		return
	}

	tasks, err := h.taskService.List(r.Context(), caller, taskFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMeta(w, tasks, response.PageMeta(tasks.Page, tasks.Limit, tasks.TotalCount, tasks.TotalPages))
}

// Get implements TaskHandler.
func (h *taskHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOf(w, r)
	if !ok {
		return
	}

	found, err := h.taskService.Get(r.Context(), caller, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, found)
}

// Create implements TaskHandler.
func (h *taskHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOf(w, r)
	if !ok {
		return
	}

	var req task.CreateTaskRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	created, err := h.taskService.Create(r.Context(), caller, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Task created successfully", created)
}

// Update implements TaskHandler.
func (h *taskHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOf(w, r)
	if !ok {
		return
	}

	var req task.UpdateTaskRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.ID = chi.URLParam(r, "id")

	updated, err := h.taskService.Update(r.Context(), caller, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Task updated successfully", updated)
}

// UpdateStatus implements TaskHandler.
func (h *taskHandlerImpl) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOf(w, r)
	if !ok {
		return
	}

	var req task.UpdateTaskStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.ID = chi.URLParam(r, "id")

	updated, err := h.taskService.UpdateStatus(r.Context(), caller, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Task status updated successfully", updated)
}

// Delete implements TaskHandler.
func (h *taskHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOf(w, r)
	if !ok {
		return
	}

	if err := h.taskService.Delete(r.Context(), caller, chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Task deleted successfully", nil)
}
