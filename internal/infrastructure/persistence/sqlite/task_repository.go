package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"taskchat/internal/application/port/output"
	"taskchat/internal/domain/entity"

	"gorm.io/gorm"
)

var _ output.TaskRepository = (*TaskRepository)(nil)

// TaskRepository stores tasks in the tasks table. Every statement carries a
// session_id predicate.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *entity.Task) error {
	if err := r.db.WithContext(ctx).Create(newTaskRecord(task)).Error; err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// List returns tasks in creation order. The filtered and unfiltered cases
// share one query; only the status predicate is optional. A limit of zero
// or less returns every row.
func (r *TaskRepository) List(ctx context.Context, sessionID string, status entity.TaskStatusFilter, limit int) ([]*entity.Task, error) {
	q := r.db.WithContext(ctx).
		Model(&taskRecord{}).
		Where("session_id = ?", sessionID)

	if status != "" && status != entity.TaskFilterAll {
		q = q.Where("status = ?", string(status))
	}

	q = q.Order("created_at ASC").Order("rowid ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var records []taskRecord
	err := q.Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	tasks := make([]*entity.Task, 0, len(records))
	for i := range records {
		tasks = append(tasks, records[i].toEntity())
	}
	return tasks, nil
}

func (r *TaskRepository) FindByID(ctx context.Context, sessionID, taskID string) (*entity.Task, error) {
	var rec taskRecord
	err := r.db.WithContext(ctx).
		Where("id = ? AND session_id = ?", taskID, sessionID).
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entity.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return rec.toEntity(), nil
}

// MarkCompleted flips status only while the row is still pending, so a
// concurrent second completion cannot re-stamp completed_at.
func (r *TaskRepository) MarkCompleted(ctx context.Context, sessionID, taskID string, at time.Time) (*entity.Task, error) {
	result := r.db.WithContext(ctx).
		Model(&taskRecord{}).
		Where("id = ? AND session_id = ? AND status = ?", taskID, sessionID, string(entity.TaskStatusPending)).
		Updates(map[string]any{
			"status":       string(entity.TaskStatusCompleted),
			"completed_at": at,
		})
	if err := result.Error; err != nil {
		return nil, fmt.Errorf("failed to complete task: %w", err)
	}

	return r.FindByID(ctx, sessionID, taskID)
}

func (r *TaskRepository) Ping(ctx context.Context) error {
	return Ping(ctx, r.db)
}
