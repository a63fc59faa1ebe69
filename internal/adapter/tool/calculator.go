package tool

import (
	"context"
	"fmt"
	"strings"

	"taskchat/internal/application/port/output"
	"taskchat/internal/domain/entity"
)

var _ output.ToolPort = (*CalculatorTool)(nil)

type CalculatorTool struct {
	evaluator output.ExpressionEvaluator
	logger    output.LoggerPort
}

func NewCalculatorTool(evaluator output.ExpressionEvaluator, logger output.LoggerPort) *CalculatorTool {
	return &CalculatorTool{evaluator: evaluator, logger: logger}
}

func (t *CalculatorTool) Name() entity.ToolName { return entity.ToolCalculator }
func (t *CalculatorTool) Description() string {
	return "Perform mathematical calculations. Supports basic operations, powers (^), functions like sqrt, sin, cos, tan, log, and the constants pi and e."
}
func (t *CalculatorTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"expression": map[string]interface{}{
				"type":        "string",
				"description": "Mathematical expression to evaluate (e.g., '2 + 2', 'sqrt(16)', 'sin(pi/2)')",
			},
		},
		"required": []string{"expression"},
	}
}

func (t *CalculatorTool) Execute(ctx context.Context, args string) (string, error) {
	var input struct {
		Expression string `json:"expression"`
	}
	if err := decodeArgs(args, &input); err != nil {
		return fmt.Sprintf("Error evaluating expression: %s. Please check the syntax.", args), nil
	}

	expression := strings.TrimSpace(input.Expression)
	result, err := t.evaluator.Evaluate(expression)
	if err != nil {
		t.logger.Warn("Calculator error", "expression", expression, "error", err)
		return fmt.Sprintf("Error evaluating expression: %s. Please check the syntax.", expression), nil
	}

	return fmt.Sprintf("%s = %s", expression, result), nil
}
