package sqlite

import (
	"context"
	"testing"
	"time"

	"taskchat/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageLog_AppendKeepsOrder(t *testing.T) {
	log := NewMessageLog(setupTestDB(t))
	ctx := context.Background()
	at := time.Date(2026, 5, 5, 10, 0, 0, 0, time.UTC)

	require.NoError(t, log.Append(ctx, &entity.ChatMessage{SessionID: "s1", Role: entity.RoleUser, Content: "hi", CreatedAt: at}))
	require.NoError(t, log.Append(ctx, &entity.ChatMessage{
		SessionID: "s1",
		Role:      entity.RoleAssistant,
		Content:   "hello",
		ToolCalls: `[{"tool":"get_time"}]`,
		CreatedAt: at,
	}))
	require.NoError(t, log.Append(ctx, &entity.ChatMessage{SessionID: "s2", Role: entity.RoleUser, Content: "other", CreatedAt: at}))

	msgs, err := log.List(ctx, "s1", 10)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "hi", msgs[0].Content)
	assert.Equal(t, entity.RoleAssistant, msgs[1].Role)
	assert.Equal(t, `[{"tool":"get_time"}]`, msgs[1].ToolCalls)
	assert.NotEmpty(t, msgs[0].ID)
}
