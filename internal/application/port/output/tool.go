package output

import (
	"context"

	"taskchat/internal/domain/entity"
)

// ToolPort is a single capability exposed to the agent. Execute receives the
// raw JSON arguments produced by the model and returns text for the model to
// read. Domain and I/O failures are reported inside the returned text.
type ToolPort interface {
	Name() entity.ToolName
	Description() string
	Parameters() map[string]interface{}
	Execute(ctx context.Context, arguments string) (string, error)
}

type ToolRegistry interface {
	Register(tool ToolPort) error
	Get(name entity.ToolName) (ToolPort, bool)
	All() []ToolPort
	Definitions() []entity.ToolDefinition
	Validate(name entity.ToolName, arguments string) error
}
