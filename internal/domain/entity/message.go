package entity

import "time"

type MessageRole string

const (
	RoleSystem    MessageRole = "system"
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
	RoleTool      MessageRole = "tool"
)

// Message is one entry of an LLM conversation within a single turn.
type Message struct {
	Role       MessageRole
	Content    string
	ToolCalls  []ToolCall
	ToolCallID string
	Name       string
}

type ToolCall struct {
	ID        string
	Name      string
	Arguments string
}

type ToolDefinition struct {
	Name        string
	Description string
	Parameters  map[string]interface{}
}

// ToolCallTrace records one tool invocation made while answering a message.
type ToolCallTrace struct {
	Tool   string `json:"tool"`
	Input  string `json:"input"`
	Output string `json:"output"`
}

// ChatMessage is a persisted conversation log entry. The log is append-only.
type ChatMessage struct {
	ID        string
	SessionID string
	Role      MessageRole
	Content   string
	ToolCalls string
	CreatedAt time.Time
}
