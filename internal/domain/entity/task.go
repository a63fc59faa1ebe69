package entity

import "time"

type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusCompleted TaskStatus = "completed"
)

// TaskStatusFilter selects tasks by status when listing. TaskFilterAll
// matches every status.
type TaskStatusFilter string

const (
	TaskFilterAll       TaskStatusFilter = "all"
	TaskFilterPending   TaskStatusFilter = "pending"
	TaskFilterCompleted TaskStatusFilter = "completed"
)

// DueDateLayout is the calendar-day format accepted for due dates.
const DueDateLayout = "2006-01-02"

func (f TaskStatusFilter) Valid() bool {
	switch f {
	case TaskFilterAll, TaskFilterPending, TaskFilterCompleted:
		return true
	}
	return false
}

// Task is a to-do item owned by a single session. SessionID, ID and
// CreatedAt never change after creation; CompletedAt is non-nil exactly
// when Status is TaskStatusCompleted.
type Task struct {
	ID          string     `json:"id"`
	SessionID   string     `json:"sessionId"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      TaskStatus `json:"status"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

func (t *Task) IsCompleted() bool {
	return t.Status == TaskStatusCompleted
}

// DueDateString returns the due date as YYYY-MM-DD, or "" when unset.
func (t *Task) DueDateString() string {
	if t.DueDate == nil {
		return ""
	}
	return t.DueDate.UTC().Format(DueDateLayout)
}

type CreateTaskInput struct {
	Title       string
	Description string
	DueDate     string
}

// TaskFilter narrows a task listing. Unbounded returns every matching task
// and ignores Limit; it is never derived from model input.
type TaskFilter struct {
	Status    TaskStatusFilter
	Limit     int
	Unbounded bool
}
