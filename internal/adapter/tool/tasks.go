package tool

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"taskchat/internal/application/port/input"
	"taskchat/internal/application/port/output"
	"taskchat/internal/domain/entity"
	"taskchat/internal/infrastructure/session"
)

const (
	msgCreateFailed   = "Error creating task. Please try again."
	msgListFailed     = "Error listing tasks. Please try again."
	msgCompleteFailed = "Error completing task. Please try again."
	msgTaskNotFound   = "Task not found or you don't have permission to complete it."
)

var (
	_ output.ToolPort = (*CreateTaskTool)(nil)
	_ output.ToolPort = (*ListTasksTool)(nil)
	_ output.ToolPort = (*CompleteTaskTool)(nil)
)

// The task tools take the session from ctx. The schemas deliberately have
// no session field, so the model cannot address another session's tasks.

type CreateTaskTool struct {
	store  input.TaskStore
	logger output.LoggerPort
}

func NewCreateTaskTool(store input.TaskStore, logger output.LoggerPort) *CreateTaskTool {
	return &CreateTaskTool{store: store, logger: logger}
}

func (t *CreateTaskTool) Name() entity.ToolName { return entity.ToolCreateTask }
func (t *CreateTaskTool) Description() string {
	return "Create a new task for the user. Returns the created task with its id."
}
func (t *CreateTaskTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"title": map[string]interface{}{
				"type":        "string",
				"description": "Task title",
			},
			"description": map[string]interface{}{
				"type":        "string",
				"description": "Task description (optional)",
			},
			"dueDate": map[string]interface{}{
				"type":        "string",
				"description": "Due date in YYYY-MM-DD format (optional)",
			},
		},
		"required": []string{"title"},
	}
}

func (t *CreateTaskTool) Execute(ctx context.Context, args string) (string, error) {
	sessionID, ok := session.FromContext(ctx)
	if !ok {
		t.logger.Error("Create task called without session")
		return msgCreateFailed, nil
	}

	var in struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		DueDate     string `json:"dueDate"`
	}
	if err := decodeArgs(args, &in); err != nil {
		return fmt.Sprintf("Invalid input for %s: %v", t.Name(), err), nil
	}

	task, err := t.store.Create(ctx, sessionID, entity.CreateTaskInput{
		Title:       in.Title,
		Description: in.Description,
		DueDate:     in.DueDate,
	})
	if err != nil {
		var ve *entity.ValidationError
		if errors.As(err, &ve) {
			return fmt.Sprintf("Could not create task: %s", ve.Error()), nil
		}
		t.logger.Error("Create task error", "error", err)
		return msgCreateFailed, nil
	}

	msg := fmt.Sprintf("Created task: %q", task.Title)
	if due := task.DueDateString(); due != "" {
		msg += fmt.Sprintf(" (due: %s)", due)
	}
	return msg + fmt.Sprintf(" [id: %s]", task.ID), nil
}

type ListTasksTool struct {
	store  input.TaskStore
	logger output.LoggerPort
}

func NewListTasksTool(store input.TaskStore, logger output.LoggerPort) *ListTasksTool {
	return &ListTasksTool{store: store, logger: logger}
}

func (t *ListTasksTool) Name() entity.ToolName { return entity.ToolListTasks }
func (t *ListTasksTool) Description() string {
	return "List the user's tasks, optionally filtered by status. Each entry includes the task id needed by complete_task."
}
func (t *ListTasksTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"status": map[string]interface{}{
				"type":        "string",
				"enum":        []string{string(entity.TaskFilterAll), string(entity.TaskFilterPending), string(entity.TaskFilterCompleted)},
				"default":     string(entity.TaskFilterAll),
				"description": "Filter by status",
			},
			"limit": map[string]interface{}{
				"type":        "integer",
				"minimum":     1,
				"default":     10,
				"description": "Maximum number of tasks to return",
			},
		},
	}
}

func (t *ListTasksTool) Execute(ctx context.Context, args string) (string, error) {
	sessionID, ok := session.FromContext(ctx)
	if !ok {
		t.logger.Error("List tasks called without session")
		return msgListFailed, nil
	}

	var in struct {
		Status entity.TaskStatusFilter `json:"status"`
		Limit  int                     `json:"limit"`
	}
	if err := decodeArgs(args, &in); err != nil {
		return fmt.Sprintf("Invalid input for %s: %v", t.Name(), err), nil
	}
	if in.Status == "" {
		in.Status = entity.TaskFilterAll
	}

	tasks, err := t.store.List(ctx, sessionID, entity.TaskFilter{Status: in.Status, Limit: in.Limit})
	if err != nil {
		var ve *entity.ValidationError
		if errors.As(err, &ve) {
			return fmt.Sprintf("Invalid input for %s: %s", t.Name(), ve.Error()), nil
		}
		t.logger.Error("List tasks error", "error", err)
		return msgListFailed, nil
	}

	if len(tasks) == 0 {
		if in.Status == entity.TaskFilterAll {
			return "You have no tasks.", nil
		}
		return fmt.Sprintf("You have no %s tasks.", in.Status), nil
	}

	var b strings.Builder
	b.WriteString("Your tasks:")
	for i, task := range tasks {
		fmt.Fprintf(&b, "\n%d. %s", i+1, task.Title)
		if task.Description != "" {
			b.WriteString(" - " + task.Description)
		}
		if due := task.DueDateString(); due != "" {
			fmt.Fprintf(&b, " (due: %s)", due)
		}
		fmt.Fprintf(&b, " [%s] (id: %s)", task.Status, task.ID)
	}
	return b.String(), nil
}

type CompleteTaskTool struct {
	store  input.TaskStore
	logger output.LoggerPort
}

func NewCompleteTaskTool(store input.TaskStore, logger output.LoggerPort) *CompleteTaskTool {
	return &CompleteTaskTool{store: store, logger: logger}
}

func (t *CompleteTaskTool) Name() entity.ToolName { return entity.ToolCompleteTask }
func (t *CompleteTaskTool) Description() string {
	return "Mark a task as completed. Use the task id from list_tasks or create_task."
}
func (t *CompleteTaskTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"taskId": map[string]interface{}{
				"type":        "string",
				"description": "ID of the task to complete",
			},
		},
		"required": []string{"taskId"},
	}
}

func (t *CompleteTaskTool) Execute(ctx context.Context, args string) (string, error) {
	sessionID, ok := session.FromContext(ctx)
	if !ok {
		t.logger.Error("Complete task called without session")
		return msgCompleteFailed, nil
	}

	var in struct {
		TaskID string `json:"taskId"`
	}
	if err := decodeArgs(args, &in); err != nil {
		return fmt.Sprintf("Invalid input for %s: %v", t.Name(), err), nil
	}

	task, err := t.store.Complete(ctx, sessionID, in.TaskID)
	if err != nil {
		if errors.Is(err, entity.ErrTaskNotFound) {
			return msgTaskNotFound, nil
		}
		t.logger.Error("Complete task error", "taskId", in.TaskID, "error", err)
		return msgCompleteFailed, nil
	}

	return fmt.Sprintf("Completed task: %q", task.Title), nil
}
