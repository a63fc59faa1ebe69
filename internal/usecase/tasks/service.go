package tasks

import (
	"context"
	"fmt"
	"strings"
	"time"

	"taskchat/internal/application/port/input"
	"taskchat/internal/application/port/output"
	"taskchat/internal/domain/entity"

	"github.com/google/uuid"
)

var _ input.TaskStore = (*Service)(nil)

const (
	DefaultListLimit = 10
	MaxListLimit     = 100
)

// Service validates task operations and enforces the lifecycle rules on top
// of a session-scoped repository.
type Service struct {
	repo   output.TaskRepository
	clock  output.Clock
	logger output.LoggerPort
}

func NewService(repo output.TaskRepository, clock output.Clock, logger output.LoggerPort) *Service {
	return &Service{
		repo:   repo,
		clock:  clock,
		logger: logger,
	}
}

func (s *Service) Create(ctx context.Context, sessionID string, in entity.CreateTaskInput) (*entity.Task, error) {
	if sessionID == "" {
		return nil, entity.NewValidationError("sessionId", "session is required")
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, entity.NewValidationError("title", "title must not be empty")
	}

	task := &entity.Task{
		ID:          uuid.NewString(),
		SessionID:   sessionID,
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		Status:      entity.TaskStatusPending,
		CreatedAt:   s.clock.Now(),
	}

	if due := strings.TrimSpace(in.DueDate); due != "" {
		parsed, err := time.ParseInLocation(entity.DueDateLayout, due, time.UTC)
		if err != nil {
			return nil, entity.NewValidationError("dueDate", fmt.Sprintf("%q is not a valid date, expected YYYY-MM-DD", due))
		}
		task.DueDate = &parsed
	}

	if err := s.repo.Create(ctx, task); err != nil {
		return nil, err
	}

	s.logger.Info("Task created", "taskId", task.ID, "sessionId", sessionID)
	return task, nil
}

func (s *Service) List(ctx context.Context, sessionID string, filter entity.TaskFilter) ([]*entity.Task, error) {
	if sessionID == "" {
		return nil, entity.NewValidationError("sessionId", "session is required")
	}

	status := filter.Status
	if status == "" {
		status = entity.TaskFilterAll
	}
	if !status.Valid() {
		return nil, entity.NewValidationError("status", fmt.Sprintf("unknown status %q", status))
	}

	if filter.Unbounded {
		return s.repo.List(ctx, sessionID, status, 0)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	return s.repo.List(ctx, sessionID, status, limit)
}

// Complete marks a pending task as completed. Completing an already
// completed task succeeds and leaves CompletedAt untouched.
func (s *Service) Complete(ctx context.Context, sessionID, taskID string) (*entity.Task, error) {
	if sessionID == "" || strings.TrimSpace(taskID) == "" {
		return nil, entity.ErrTaskNotFound
	}

	task, err := s.repo.MarkCompleted(ctx, sessionID, strings.TrimSpace(taskID), s.clock.Now())
	if err != nil {
		return nil, err
	}

	s.logger.Info("Task completed", "taskId", task.ID, "sessionId", sessionID)
	return task, nil
}

func (s *Service) Get(ctx context.Context, sessionID, taskID string) (*entity.Task, error) {
	taskID = strings.TrimSpace(taskID)
	if sessionID == "" || taskID == "" {
		return nil, entity.ErrTaskNotFound
	}
	return s.repo.FindByID(ctx, sessionID, taskID)
}
