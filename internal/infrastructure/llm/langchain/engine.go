package langchain

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"taskchat/internal/application/port/input"
	"taskchat/internal/application/port/output"
	"taskchat/internal/domain/entity"

	"github.com/tmc/langchaingo/agents"
	"github.com/tmc/langchaingo/chains"
	lcopenai "github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"
	"github.com/tmc/langchaingo/tools"
)

var _ input.AgentExecutor = (*Engine)(nil)

const MaxIterations = 5

var ErrMaxIterations = errors.New("max iterations exceeded")

type Config struct {
	APIKey       string
	Model        string
	BaseURL      string
	SystemPrompt string
	HTTPClient   *http.Client
	Logger       output.LoggerPort
}

// Engine runs a message through langchaingo's OpenAI functions agent over the
// same tool registry the native executor uses.
type Engine struct {
	executor *agents.Executor
	logger   output.LoggerPort
}

func NewEngine(cfg Config, registry output.ToolRegistry) (*Engine, error) {
	opts := []lcopenai.Option{
		lcopenai.WithToken(cfg.APIKey),
		lcopenai.WithModel(cfg.Model),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, lcopenai.WithBaseURL(cfg.BaseURL))
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, lcopenai.WithHTTPClient(cfg.HTTPClient))
	}

	llm, err := lcopenai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create langchain llm: %w", err)
	}

	ports := registry.All()
	agentTools := make([]tools.Tool, 0, len(ports))
	for _, tool := range ports {
		agentTools = append(agentTools, newToolAdapter(tool, registry))
	}

	agent := agents.NewOpenAIFunctionsAgent(llm, agentTools,
		agents.NewOpenAIOption().WithSystemMessage(cfg.SystemPrompt),
	)

	executor := agents.NewExecutor(agent, agentTools,
		agents.WithMaxIterations(MaxIterations),
		agents.WithReturnIntermediateSteps(),
	)

	return &Engine{executor: &executor, logger: cfg.Logger}, nil
}

func (e *Engine) Execute(ctx context.Context, message string) (*input.ExecuteResult, error) {
	e.logger.Debug("Running langchain agent", "messageLen", len(message))

	values, err := chains.Call(ctx, e.executor, map[string]any{"input": message})
	if err != nil {
		if errors.Is(err, agents.ErrNotFinished) {
			return nil, fmt.Errorf("%w (%d)", ErrMaxIterations, MaxIterations)
		}
		return nil, fmt.Errorf("langchain agent failed: %w", err)
	}

	answer, _ := values["output"].(string)
	steps := collectSteps(values)

	return &input.ExecuteResult{
		FinalAnswer: answer,
		Iterations:  len(steps) + 1,
		ToolCalls:   steps,
	}, nil
}

func collectSteps(values map[string]any) []entity.ToolCallTrace {
	var traces []entity.ToolCallTrace
	for _, v := range values {
		steps, ok := v.([]schema.AgentStep)
		if !ok {
			continue
		}
		for _, step := range steps {
			traces = append(traces, entity.ToolCallTrace{
				Tool:   step.Action.Tool,
				Input:  step.Action.ToolInput,
				Output: step.Observation,
			})
		}
	}
	return traces
}
