package executor

import (
	"context"
	"errors"
	"fmt"

	"taskchat/internal/application/port/input"
	"taskchat/internal/application/port/output"
	"taskchat/internal/domain/entity"
)

var _ input.AgentExecutor = (*UseCase)(nil)

const (
	// MaxIterations bounds LLM rounds per message so a model that keeps
	// requesting tools still terminates.
	MaxIterations     = 5
	maxObservationLen = 20000
	temperature       = 0.7
)

var ErrMaxIterations = errors.New("max iterations exceeded")

type UseCase struct {
	llm          output.LLMPort
	tools        output.ToolRegistry
	logger       output.LoggerPort
	systemPrompt string
}

func New(
	llm output.LLMPort,
	tools output.ToolRegistry,
	logger output.LoggerPort,
	systemPrompt string,
) *UseCase {
	return &UseCase{
		llm:          llm,
		tools:        tools,
		logger:       logger,
		systemPrompt: systemPrompt,
	}
}

func (uc *UseCase) Execute(ctx context.Context, message string) (*input.ExecuteResult, error) {
	messages := []entity.Message{
		{Role: entity.RoleSystem, Content: uc.systemPrompt},
		{Role: entity.RoleUser, Content: message},
	}

	toolDefs := uc.tools.Definitions()
	var traces []entity.ToolCallTrace

	for iteration := 1; iteration <= MaxIterations; iteration++ {
		uc.logger.Debug("Starting iteration", "iteration", iteration)

		resp, err := uc.llm.Chat(ctx, output.ChatRequest{
			Messages:    messages,
			Tools:       toolDefs,
			Temperature: temperature,
		})
		if err != nil {
			return nil, fmt.Errorf("llm request failed: %w", err)
		}

		messages = append(messages, resp.Message)

		if len(resp.Message.ToolCalls) == 0 {
			return &input.ExecuteResult{
				FinalAnswer: resp.Message.Content,
				Iterations:  iteration,
				ToolCalls:   traces,
			}, nil
		}

		for _, tc := range resp.Message.ToolCalls {
			observation := uc.executeTool(ctx, tc)

			traces = append(traces, entity.ToolCallTrace{
				Tool:   tc.Name,
				Input:  tc.Arguments,
				Output: observation,
			})
			messages = append(messages, entity.Message{
				Role:       entity.RoleTool,
				ToolCallID: tc.ID,
				Name:       tc.Name,
				Content:    observation,
			})
		}
	}

	return nil, fmt.Errorf("%w (%d)", ErrMaxIterations, MaxIterations)
}

// executeTool always yields text for the model; failures become
// observations rather than aborting the turn.
func (uc *UseCase) executeTool(ctx context.Context, tc entity.ToolCall) string {
	name := entity.ToolName(tc.Name)

	tool, ok := uc.tools.Get(name)
	if !ok {
		uc.logger.Warn("Unknown tool called", "name", tc.Name)
		return fmt.Sprintf("Error: unknown tool '%s'", tc.Name)
	}

	if err := uc.tools.Validate(name, tc.Arguments); err != nil {
		uc.logger.Warn("Tool arguments rejected", "name", tc.Name, "args", tc.Arguments, "error", err)
		return fmt.Sprintf("Invalid input for %s: %v", tc.Name, err)
	}

	uc.logger.Info("Executing tool", "name", tc.Name, "args", tc.Arguments)

	result, err := tool.Execute(ctx, tc.Arguments)
	if err != nil {
		uc.logger.Error("Tool execution failed", "name", tc.Name, "error", err)
		return "Error: " + err.Error()
	}

	if len(result) > maxObservationLen {
		result = result[:maxObservationLen] + "\n... (truncated)"
	}

	uc.logger.Debug("Tool completed", "name", tc.Name, "resultLen", len(result))
	return result
}
