package service

import (
	"fmt"
	"sort"
	"strings"

	"taskchat/internal/application/port/output"
	"taskchat/internal/domain/entity"

	"github.com/xeipuuv/gojsonschema"
)

var _ output.ToolRegistry = (*ToolRegistryImpl)(nil)

// ToolRegistryImpl is a static name -> tool table. Input schemas are compiled
// once at registration and reused for every call.
type ToolRegistryImpl struct {
	tools   map[entity.ToolName]output.ToolPort
	schemas map[entity.ToolName]*gojsonschema.Schema
}

func NewToolRegistry() *ToolRegistryImpl {
	return &ToolRegistryImpl{
		tools:   make(map[entity.ToolName]output.ToolPort),
		schemas: make(map[entity.ToolName]*gojsonschema.Schema),
	}
}

func (r *ToolRegistryImpl) Register(tool output.ToolPort) error {
	name := tool.Name()
	if _, exists := r.tools[name]; exists {
		return fmt.Errorf("tool %q already registered", name)
	}

	schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(tool.Parameters()))
	if err != nil {
		return fmt.Errorf("invalid parameters schema for tool %q: %w", name, err)
	}

	r.tools[name] = tool
	r.schemas[name] = schema
	return nil
}

func (r *ToolRegistryImpl) Get(name entity.ToolName) (output.ToolPort, bool) {
	tool, ok := r.tools[name]
	return tool, ok
}

// All returns the registered tools sorted by name.
func (r *ToolRegistryImpl) All() []output.ToolPort {
	result := make([]output.ToolPort, 0, len(r.tools))
	for _, tool := range r.tools {
		result = append(result, tool)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name() < result[j].Name()
	})
	return result
}

func (r *ToolRegistryImpl) Definitions() []entity.ToolDefinition {
	all := r.All()
	result := make([]entity.ToolDefinition, 0, len(all))
	for _, tool := range all {
		result = append(result, entity.ToolDefinition{
			Name:        tool.Name().String(),
			Description: tool.Description(),
			Parameters:  tool.Parameters(),
		})
	}
	return result
}

// Validate checks raw JSON arguments against the tool's schema. Empty
// arguments are treated as an empty object.
func (r *ToolRegistryImpl) Validate(name entity.ToolName, arguments string) error {
	schema, ok := r.schemas[name]
	if !ok {
		return fmt.Errorf("unknown tool %q", name)
	}

	if strings.TrimSpace(arguments) == "" {
		arguments = "{}"
	}

	result, err := schema.Validate(gojsonschema.NewStringLoader(arguments))
	if err != nil {
		return entity.NewValidationError("", fmt.Sprintf("arguments are not valid JSON: %v", err))
	}

	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return entity.NewValidationError("", strings.Join(msgs, "; "))
	}

	return nil
}
