package langchain

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"taskchat/internal/application/port/output"

	"github.com/tmc/langchaingo/tools"
)

var _ tools.Tool = (*toolAdapter)(nil)

// toolAdapter exposes an output.ToolPort through langchaingo's single-string
// tool interface. The functions agent hands over either the raw JSON arguments
// or a bare string, which is mapped onto the tool's only required field.
type toolAdapter struct {
	tool     output.ToolPort
	registry output.ToolRegistry
	primary  string
}

func newToolAdapter(tool output.ToolPort, registry output.ToolRegistry) *toolAdapter {
	return &toolAdapter{
		tool:     tool,
		registry: registry,
		primary:  primaryField(tool.Parameters()),
	}
}

func (a *toolAdapter) Name() string {
	return a.tool.Name().String()
}

func (a *toolAdapter) Description() string {
	schema, err := json.Marshal(a.tool.Parameters())
	if err != nil {
		return a.tool.Description()
	}
	return fmt.Sprintf("%s Input must be a JSON object matching this schema: %s", a.tool.Description(), schema)
}

func (a *toolAdapter) Call(ctx context.Context, input string) (string, error) {
	args := a.normalize(input)

	if err := a.registry.Validate(a.tool.Name(), args); err != nil {
		return fmt.Sprintf("Invalid input for %s: %v", a.Name(), err), nil
	}

	result, err := a.tool.Execute(ctx, args)
	if err != nil {
		return "Error: " + err.Error(), nil
	}
	return result, nil
}

func (a *toolAdapter) normalize(input string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" || strings.HasPrefix(trimmed, "{") {
		return trimmed
	}
	if a.primary == "" {
		return trimmed
	}

	encoded, err := json.Marshal(map[string]string{a.primary: trimmed})
	if err != nil {
		return trimmed
	}
	return string(encoded)
}

// primaryField returns the single required property of a JSON schema, or ""
// when there is not exactly one.
func primaryField(schema map[string]interface{}) string {
	switch required := schema["required"].(type) {
	case []string:
		if len(required) == 1 {
			return required[0]
		}
	case []interface{}:
		if len(required) == 1 {
			if s, ok := required[0].(string); ok {
				return s
			}
		}
	}
	return ""
}
