package task

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/office-backend-go/internal/pkg/validator"
)

type CreateTaskRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	AssignedTo  *string `json:"assigned_to,omitempty"`
	Priority    string  `json:"priority"`
	DueDate     *string `json:"due_date,omitempty"`
}

func (r *CreateTaskRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Title = strings.TrimSpace(r.Title)
	if validator.IsEmpty(r.Title) {
		errs.Add("title", "title is required")
	} else if len(r.Title) > 200 {
		errs.Add("title", "title must not exceed 200 characters")
	}

	if r.AssignedTo != nil && !validator.IsValidUUID(*r.AssignedTo) {
		errs.Add("assigned_to", "assigned_to must be a valid UUID")
	}

	r.Priority = strings.ToLower(strings.TrimSpace(r.Priority))
	if r.Priority == "" {
		r.Priority = string(PriorityMedium)
	}
	if !validator.IsInSlice(r.Priority, Priorities()) {
		errs.Add("priority", "priority must be one of: "+strings.Join(Priorities(), ", "))
	}

	if r.DueDate != nil {
		if _, ok := validator.IsValidDate(*r.DueDate); !ok {
			errs.Add("due_date", "due_date must be in YYYY-MM-DD format")
		}
	}

	return errs.Err()
}

type UpdateTaskRequest struct {
	ID          string  `json:"-"`
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	AssignedTo  *string `json:"assigned_to,omitempty"`
	Status      *string `json:"status,omitempty"`
	Priority    *string `json:"priority,omitempty"`
	DueDate     *string `json:"due_date,omitempty"`
}

func (r *UpdateTaskRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs.Add("id", "id is required")
	}
	if r.Title != nil && validator.IsEmpty(*r.Title) {
		errs.Add("title", "title must not be empty")
	}
	if r.AssignedTo != nil && *r.AssignedTo != "" && !validator.IsValidUUID(*r.AssignedTo) {
		errs.Add("assigned_to", "assigned_to must be a valid UUID")
	}
	if r.Status != nil && !validator.IsInSlice(*r.Status, Statuses()) {
		errs.Add("status", "status must be one of: "+strings.Join(Statuses(), ", "))
	}
	if r.Priority != nil && !validator.IsInSlice(*r.Priority, Priorities()) {
		errs.Add("priority", "priority must be one of: "+strings.Join(Priorities(), ", "))
	}
	if r.DueDate != nil && *r.DueDate != "" {
		if _, ok := validator.IsValidDate(*r.DueDate); !ok {
			errs.Add("due_date", "due_date must be in YYYY-MM-DD format")
		}
	}

	return errs.Err()
}

type UpdateTaskStatusRequest struct {
	ID     string `json:"-"`
	Status string `json:"status"`
}

func (r *UpdateTaskStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs.Add("id", "id is required")
	}
	if !validator.IsInSlice(r.Status, Statuses()) {
		errs.Add("status", "status must be one of: "+strings.Join(Statuses(), ", "))
	}

	return errs.Err()
}

type TaskFilter struct {
	AssignedTo *string
	Status     *string
	Priority   *string
	Page       int
	Limit      int
}

func (f *TaskFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit == 0 {
		f.Limit = 20
	}
	if f.Limit < 0 || f.Limit > 100 {
		errs.Add("limit", "limit must be between 1 and 100")
	}
	if f.AssignedTo != nil && !validator.IsValidUUID(*f.AssignedTo) {
		errs.Add("assigned_to", "assigned_to must be a valid UUID")
	}
	if f.Status != nil && !validator.IsInSlice(*f.Status, Statuses()) {
		errs.Add("status", "status must be one of: "+strings.Join(Statuses(), ", "))
	}
	if f.Priority != nil && !validator.IsInSlice(*f.Priority, Priorities()) {
		errs.Add("priority", "priority must be one of: "+strings.Join(Priorities(), ", "))
	}

	return errs.Err()
}

type TaskResponse struct {
	ID              string  `json:"id"`
	Title           string  `json:"title"`
	Description     *string `json:"description,omitempty"`
	AssignedTo      *string `json:"assigned_to,omitempty"`
	AssigneeLoginID *string `json:"assignee_login_id,omitempty"`
	AssigneeName    *string `json:"assignee_name,omitempty"`
	CreatedBy       string  `json:"created_by"`
	Status          string  `json:"status"`
	Priority        string  `json:"priority"`
	DueDate         *string `json:"due_date,omitempty"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

func NewTaskResponse(t Task) TaskResponse {
	resp := TaskResponse{
		ID:              t.ID,
		Title:           t.Title,
		Description:     t.Description,
		AssignedTo:      t.AssignedTo,
		AssigneeLoginID: t.AssigneeLoginID,
		AssigneeName:    t.AssigneeName,
		CreatedBy:       t.CreatedBy,
		Status:          string(t.Status),
		Priority:        string(t.Priority),
		CreatedAt:       t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       t.UpdatedAt.Format(time.RFC3339),
	}
	if t.DueDate != nil {
		due := t.DueDate.Format(time.DateOnly)
		resp.DueDate = &due
	}
	return resp
}

type ListTaskResponse struct {
	TotalCount int64          `json:"total_count"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"total_pages"`
	Tasks      []TaskResponse `json:"tasks"`
}
