package sqlite

import (
	"time"

	"taskchat/internal/domain/entity"
)

type taskRecord struct {
	ID          string     `gorm:"primaryKey;size:36"`
	SessionID   string     `gorm:"not null;index:idx_tasks_session_status,priority:1"`
	Title       string     `gorm:"size:255;not null"`
	Description *string    `gorm:"type:text"`
	Status      string     `gorm:"size:20;not null;default:pending;index:idx_tasks_session_status,priority:2"`
	DueDate     *time.Time
	CreatedAt   time.Time `gorm:"not null"`
	CompletedAt *time.Time
}

func (taskRecord) TableName() string {
	return "tasks"
}

type messageRecord struct {
	ID        string    `gorm:"primaryKey;size:36"`
	SessionID string    `gorm:"not null;index"`
	Role      string    `gorm:"size:20;not null"`
	Content   string    `gorm:"type:text;not null"`
	ToolCalls *string   `gorm:"type:text"`
	CreatedAt time.Time `gorm:"not null"`
}

func (messageRecord) TableName() string {
	return "messages"
}

func newTaskRecord(t *entity.Task) *taskRecord {
	rec := &taskRecord{
		ID:          t.ID,
		SessionID:   t.SessionID,
		Title:       t.Title,
		Status:      string(t.Status),
		DueDate:     t.DueDate,
		CreatedAt:   t.CreatedAt,
		CompletedAt: t.CompletedAt,
	}
	if t.Description != "" {
		desc := t.Description
		rec.Description = &desc
	}
	return rec
}

func (r *taskRecord) toEntity() *entity.Task {
	t := &entity.Task{
		ID:          r.ID,
		SessionID:   r.SessionID,
		Title:       r.Title,
		Status:      entity.TaskStatus(r.Status),
		DueDate:     utcPtr(r.DueDate),
		CreatedAt:   r.CreatedAt.UTC(),
		CompletedAt: utcPtr(r.CompletedAt),
	}
	if r.Description != nil {
		t.Description = *r.Description
	}
	return t
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
