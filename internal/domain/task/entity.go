package task

import "time"

type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
)

func Statuses() []string {
	return []string{string(StatusTodo), string(StatusInProgress), string(StatusDone)}
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func Priorities() []string {
	return []string{string(PriorityLow), string(PriorityMedium), string(PriorityHigh)}
}

type Task struct {
	ID          string
	Title       string
	Description *string
	AssignedTo  *string
	CreatedBy   string
	Status      Status
	Priority    Priority
	DueDate     *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// DTO / Join
	AssigneeLoginID *string
	AssigneeName    *string
}
