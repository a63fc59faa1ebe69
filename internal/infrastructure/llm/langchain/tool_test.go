package langchain

import (
	"context"
	"errors"
	"testing"

	"taskchat/internal/application/service"
	"taskchat/internal/domain/entity"
	"taskchat/internal/infrastructure/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/schema"
)

type recordingTool struct {
	lastArgs    string
	lastSession string
	err         error
}

func (r *recordingTool) Name() entity.ToolName { return entity.ToolCompleteTask }
func (r *recordingTool) Description() string   { return "Mark a task as completed." }
func (r *recordingTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"taskId": map[string]interface{}{"type": "string", "minLength": 1},
		},
		"required": []string{"taskId"},
	}
}
func (r *recordingTool) Execute(ctx context.Context, arguments string) (string, error) {
	r.lastArgs = arguments
	r.lastSession, _ = session.FromContext(ctx)
	if r.err != nil {
		return "", r.err
	}
	return "done", nil
}

func newAdapter(t *testing.T, tool *recordingTool) *toolAdapter {
	t.Helper()
	registry := service.NewToolRegistry()
	require.NoError(t, registry.Register(tool))
	return newToolAdapter(tool, registry)
}

func TestToolAdapter_PassesJSONThrough(t *testing.T) {
	tool := &recordingTool{}
	a := newAdapter(t, tool)

	ctx := session.WithID(context.Background(), "s-1")
	out, err := a.Call(ctx, `{"taskId":"abc"}`)
	require.NoError(t, err)
	assert.Equal(t, "done", out)
	assert.Equal(t, `{"taskId":"abc"}`, tool.lastArgs)
	assert.Equal(t, "s-1", tool.lastSession)
}

func TestToolAdapter_WrapsBareString(t *testing.T) {
	tool := &recordingTool{}
	a := newAdapter(t, tool)

	_, err := a.Call(context.Background(), "abc")
	require.NoError(t, err)
	assert.JSONEq(t, `{"taskId":"abc"}`, tool.lastArgs)
}

func TestToolAdapter_ErrorsBecomeObservations(t *testing.T) {
	tool := &recordingTool{err: errors.New("db locked")}
	a := newAdapter(t, tool)

	out, err := a.Call(context.Background(), `{"taskId":"abc"}`)
	require.NoError(t, err)
	assert.Equal(t, "Error: db locked", out)

	out, err = a.Call(context.Background(), `{}`)
	require.NoError(t, err)
	assert.Contains(t, out, "Invalid input for complete_task")
}

func TestToolAdapter_Metadata(t *testing.T) {
	a := newAdapter(t, &recordingTool{})

	assert.Equal(t, "complete_task", a.Name())
	assert.Contains(t, a.Description(), "Mark a task as completed.")
	assert.Contains(t, a.Description(), `"taskId"`)
}

func TestPrimaryField(t *testing.T) {
	assert.Equal(t, "city", primaryField(map[string]interface{}{"required": []string{"city"}}))
	assert.Equal(t, "city", primaryField(map[string]interface{}{"required": []interface{}{"city"}}))
	assert.Empty(t, primaryField(map[string]interface{}{"required": []string{"a", "b"}}))
	assert.Empty(t, primaryField(map[string]interface{}{}))
}

func TestCollectSteps(t *testing.T) {
	values := map[string]any{
		"output": "answer",
		"intermediateSteps": []schema.AgentStep{
			{
				Action:      schema.AgentAction{Tool: "calculator", ToolInput: `{"expression":"15*3"}`},
				Observation: "Result: 45",
			},
		},
	}

	traces := collectSteps(values)
	require.Len(t, traces, 1)
	assert.Equal(t, entity.ToolCallTrace{
		Tool:   "calculator",
		Input:  `{"expression":"15*3"}`,
		Output: "Result: 45",
	}, traces[0])
}
