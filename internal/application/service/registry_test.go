package service

import (
	"context"
	"testing"

	"taskchat/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTool struct {
	name   entity.ToolName
	params map[string]interface{}
}

func (s *stubTool) Name() entity.ToolName              { return s.name }
func (s *stubTool) Description() string                { return "stub " + s.name.String() }
func (s *stubTool) Parameters() map[string]interface{} { return s.params }
func (s *stubTool) Execute(ctx context.Context, arguments string) (string, error) {
	return "ok", nil
}

func weatherLikeSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"city": map[string]interface{}{
				"type":      "string",
				"minLength": 1,
			},
			"units": map[string]interface{}{
				"type": "string",
				"enum": []string{"metric", "imperial"},
			},
		},
		"required": []string{"city"},
	}
}

func TestToolRegistry_RegisterAndSortedDefinitions(t *testing.T) {
	r := NewToolRegistry()
	require.NoError(t, r.Register(&stubTool{name: "zeta", params: map[string]interface{}{"type": "object"}}))
	require.NoError(t, r.Register(&stubTool{name: "alpha", params: map[string]interface{}{"type": "object"}}))

	defs := r.Definitions()
	require.Len(t, defs, 2)
	assert.Equal(t, "alpha", defs[0].Name)
	assert.Equal(t, "zeta", defs[1].Name)

	_, ok := r.Get("alpha")
	assert.True(t, ok)
	_, ok = r.Get("missing")
	assert.False(t, ok)
}

func TestToolRegistry_DuplicateName(t *testing.T) {
	r := NewToolRegistry()
	require.NoError(t, r.Register(&stubTool{name: "dup", params: map[string]interface{}{"type": "object"}}))
	assert.Error(t, r.Register(&stubTool{name: "dup", params: map[string]interface{}{"type": "object"}}))
}

func TestToolRegistry_Validate(t *testing.T) {
	r := NewToolRegistry()
	require.NoError(t, r.Register(&stubTool{name: "weather", params: weatherLikeSchema()}))

	tests := []struct {
		name    string
		args    string
		wantErr bool
	}{
		{name: "valid", args: `{"city":"Paris"}`},
		{name: "valid with units", args: `{"city":"Paris","units":"imperial"}`},
		{name: "missing city", args: `{}`, wantErr: true},
		{name: "empty args", args: ``, wantErr: true},
		{name: "bad enum", args: `{"city":"Paris","units":"kelvin"}`, wantErr: true},
		{name: "wrong type", args: `{"city":42}`, wantErr: true},
		{name: "not json", args: `{city:`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := r.Validate("weather", tt.args)
			if tt.wantErr {
				assert.True(t, entity.IsValidationError(err), "expected validation error, got %v", err)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	assert.Error(t, r.Validate("nope", `{}`))
}
