package chat

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"taskchat/internal/application/port/input"
	"taskchat/internal/application/port/output"
	"taskchat/internal/domain/entity"
	"taskchat/internal/infrastructure/session"
)

var _ input.ChatService = (*UseCase)(nil)

const ApologyMessage = "I encountered an error processing your request. Please try again."

type UseCase struct {
	agent   input.AgentExecutor
	log     output.MessageLog
	clock   output.Clock
	logger  output.LoggerPort
	timeout time.Duration
}

func New(
	agent input.AgentExecutor,
	log output.MessageLog,
	clock output.Clock,
	logger output.LoggerPort,
	timeout time.Duration,
) *UseCase {
	return &UseCase{
		agent:   agent,
		log:     log,
		clock:   clock,
		logger:  logger,
		timeout: timeout,
	}
}

// Chat answers one user message within a session. Agent faults never reach
// the caller: they are logged and replaced by a fixed apology.
func (uc *UseCase) Chat(ctx context.Context, sessionID, message string) (*input.ChatReply, error) {
	if strings.TrimSpace(message) == "" {
		return nil, entity.NewValidationError("message", "Message is required")
	}
	if sessionID == "" {
		return nil, entity.NewValidationError("sessionId", "session id is required")
	}

	log := uc.logger.WithField("session", sessionID)

	uc.record(ctx, log, &entity.ChatMessage{
		SessionID: sessionID,
		Role:      entity.RoleUser,
		Content:   message,
	})

	agentCtx := session.WithID(ctx, sessionID)
	if uc.timeout > 0 {
		var cancel context.CancelFunc
		agentCtx, cancel = context.WithTimeout(agentCtx, uc.timeout)
		defer cancel()
	}

	started := uc.clock.Now()
	result, err := uc.agent.Execute(agentCtx, message)
	if err != nil {
		log.Error("Agent error", "error", err, "elapsed", uc.clock.Now().Sub(started))
		return &input.ChatReply{Response: ApologyMessage}, nil
	}

	log.Info("Agent answered",
		"iterations", result.Iterations,
		"toolCalls", len(result.ToolCalls),
		"elapsed", uc.clock.Now().Sub(started),
	)

	reply := &entity.ChatMessage{
		SessionID: sessionID,
		Role:      entity.RoleAssistant,
		Content:   result.FinalAnswer,
	}
	if len(result.ToolCalls) > 0 {
		if trace, err := json.Marshal(result.ToolCalls); err == nil {
			reply.ToolCalls = string(trace)
		}
	}
	uc.record(ctx, log, reply)

	return &input.ChatReply{
		Response:  result.FinalAnswer,
		ToolCalls: result.ToolCalls,
	}, nil
}

func (uc *UseCase) record(ctx context.Context, log output.LoggerPort, msg *entity.ChatMessage) {
	if uc.log == nil {
		return
	}
	msg.CreatedAt = uc.clock.Now()
	if err := uc.log.Append(ctx, msg); err != nil {
		log.Warn("Failed to append chat message", "role", msg.Role, "error", err)
	}
}
