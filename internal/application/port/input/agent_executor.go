package input

import (
	"context"

	"taskchat/internal/domain/entity"
)

type ExecuteResult struct {
	FinalAnswer string
	Iterations  int
	ToolCalls   []entity.ToolCallTrace
}

// AgentExecutor answers a user message, invoking tools as the model decides.
// The session is carried by ctx.
type AgentExecutor interface {
	Execute(ctx context.Context, message string) (*ExecuteResult, error)
}
