package output

import (
	"context"
	"time"

	"taskchat/internal/domain/entity"
)

// TaskRepository persists tasks. Every method is scoped to a session: rows
// owned by another session behave as if they did not exist.
type TaskRepository interface {
	Create(ctx context.Context, task *entity.Task) error
	List(ctx context.Context, sessionID string, status entity.TaskStatusFilter, limit int) ([]*entity.Task, error)
	FindByID(ctx context.Context, sessionID, taskID string) (*entity.Task, error)
	// MarkCompleted moves a pending task to completed. It returns
	// entity.ErrTaskNotFound when no row matches, and the stored record
	// unchanged when the task was already completed.
	MarkCompleted(ctx context.Context, sessionID, taskID string, at time.Time) (*entity.Task, error)
	Ping(ctx context.Context) error
}

type MessageLog interface {
	Append(ctx context.Context, msg *entity.ChatMessage) error
}
