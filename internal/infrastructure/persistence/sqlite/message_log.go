package sqlite

import (
	"context"
	"fmt"

	"taskchat/internal/application/port/output"
	"taskchat/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var _ output.MessageLog = (*MessageLog)(nil)

// MessageLog appends conversation entries to the messages table.
type MessageLog struct {
	db *gorm.DB
}

func NewMessageLog(db *gorm.DB) *MessageLog {
	return &MessageLog{db: db}
}

func (l *MessageLog) Append(ctx context.Context, msg *entity.ChatMessage) error {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}

	rec := &messageRecord{
		ID:        msg.ID,
		SessionID: msg.SessionID,
		Role:      string(msg.Role),
		Content:   msg.Content,
		CreatedAt: msg.CreatedAt,
	}
	if msg.ToolCalls != "" {
		calls := msg.ToolCalls
		rec.ToolCalls = &calls
	}

	if err := l.db.WithContext(ctx).Create(rec).Error; err != nil {
		return fmt.Errorf("failed to append message: %w", err)
	}
	return nil
}

// List returns the first limit entries for a session, oldest first.
func (l *MessageLog) List(ctx context.Context, sessionID string, limit int) ([]*entity.ChatMessage, error) {
	var records []messageRecord
	err := l.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Order("rowid ASC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	msgs := make([]*entity.ChatMessage, 0, len(records))
	for _, rec := range records {
		m := &entity.ChatMessage{
			ID:        rec.ID,
			SessionID: rec.SessionID,
			Role:      entity.MessageRole(rec.Role),
			Content:   rec.Content,
			CreatedAt: rec.CreatedAt,
		}
		if rec.ToolCalls != nil {
			m.ToolCalls = *rec.ToolCalls
		}
		msgs = append(msgs, m)
	}
	return msgs, nil
}
