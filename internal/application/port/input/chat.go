package input

import (
	"context"

	"taskchat/internal/domain/entity"
)

type ChatReply struct {
	Response  string                 `json:"response"`
	ToolCalls []entity.ToolCallTrace `json:"toolCalls,omitempty"`
}

type ChatService interface {
	Chat(ctx context.Context, sessionID, message string) (*ChatReply, error)
}
