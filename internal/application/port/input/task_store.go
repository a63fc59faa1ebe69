package input

import (
	"context"

	"taskchat/internal/domain/entity"
)

type TaskStore interface {
	Create(ctx context.Context, sessionID string, in entity.CreateTaskInput) (*entity.Task, error)
	List(ctx context.Context, sessionID string, filter entity.TaskFilter) ([]*entity.Task, error)
	Complete(ctx context.Context, sessionID, taskID string) (*entity.Task, error)
	Get(ctx context.Context, sessionID, taskID string) (*entity.Task, error)
}
