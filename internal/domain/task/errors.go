package task

import "errors"

var (
	ErrTaskNotFound       = errors.New("task not found")
	ErrAssigneeNotFound   = errors.New("assignee not found")
	ErrUnauthorizedAccess = errors.New("unauthorized to access this task")
)
