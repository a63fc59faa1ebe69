package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"taskchat/internal/adapter/tool"
	"taskchat/internal/application/port/input"
	"taskchat/internal/application/port/output"
	"taskchat/internal/application/service"
	"taskchat/internal/domain/entity"
	"taskchat/internal/infrastructure/clock"
	"taskchat/internal/infrastructure/logger"
	"taskchat/internal/infrastructure/mathexpr"
	"taskchat/internal/infrastructure/persistence/sqlite"
	"taskchat/internal/infrastructure/session"
	"taskchat/internal/usecase/chat"
	"taskchat/internal/usecase/executor"
	"taskchat/internal/usecase/tasks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// keywordLLM calls a tool chosen from the user message, then answers with the
// tool's observation.
type keywordLLM struct{}

func (keywordLLM) Chat(ctx context.Context, req output.ChatRequest) (*output.ChatResponse, error) {
	last := req.Messages[len(req.Messages)-1]
	if last.Role == entity.RoleTool {
		return &output.ChatResponse{Message: entity.Message{
			Role:    entity.RoleAssistant,
			Content: "Here you go: " + last.Content,
		}}, nil
	}

	var call entity.ToolCall
	switch {
	case strings.Contains(last.Content, "15 times 3"):
		call = entity.ToolCall{ID: "c1", Name: "calculator", Arguments: `{"expression":"15 * 3"}`}
	case strings.HasPrefix(last.Content, "Remind me to "):
		title := strings.TrimPrefix(last.Content, "Remind me to ")
		args, _ := json.Marshal(map[string]string{"title": title})
		call = entity.ToolCall{ID: "c1", Name: "create_task", Arguments: string(args)}
	default:
		return &output.ChatResponse{Message: entity.Message{Role: entity.RoleAssistant, Content: "Hello!"}}, nil
	}

	return &output.ChatResponse{Message: entity.Message{
		Role:      entity.RoleAssistant,
		ToolCalls: []entity.ToolCall{call},
	}}, nil
}

type failingChat struct{}

func (failingChat) Chat(ctx context.Context, sessionID, message string) (*input.ChatReply, error) {
	return nil, context.DeadlineExceeded
}

type testServer struct {
	handler http.Handler
	db      *gorm.DB
	store   *tasks.Service
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db, err := sqlite.Open(sqlite.Config{Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlite.Close(db) })

	log := logger.NewNop()
	repo := sqlite.NewTaskRepository(db)
	messages := sqlite.NewMessageLog(db)
	store := tasks.NewService(repo, clock.System{}, log)

	registry := service.NewToolRegistry()
	require.NoError(t, registry.Register(tool.NewCalculatorTool(mathexpr.NewEvaluator(), log)))
	require.NoError(t, registry.Register(tool.NewCreateTaskTool(store, log)))
	require.NoError(t, registry.Register(tool.NewListTasksTool(store, log)))

	agent := executor.New(keywordLLM{}, registry, log, "system")
	chatUC := chat.New(agent, messages, clock.System{}, log, 10*time.Second)

	h := NewHandler(HandlerDeps{
		Chat:             chatUC,
		Tasks:            store,
		History:          messages,
		DB:               repo,
		Sessions:         session.NewProvider(false),
		Clock:            clock.System{},
		Logger:           log,
		OpenAIConfigured: true,
	})

	return &testServer{
		handler: NewRouter(RouterConfig{ServiceName: "taskchat-test"}, h),
		db:      db,
		store:   store,
	}
}

func (s *testServer) do(t *testing.T, method, target, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == session.CookieName {
			return c
		}
	}
	t.Fatalf("response has no %s cookie", session.CookieName)
	return nil
}

func TestChat_CalculatorAnswerSetsCookie(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodPost, "/api/chat", `{"message":"What's 15 times 3?"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Response  string                 `json:"response"`
		ToolCalls []entity.ToolCallTrace `json:"toolCalls"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Response, "45")
	require.Len(t, body.ToolCalls, 1)
	assert.Equal(t, "calculator", body.ToolCalls[0].Tool)

	c := sessionCookie(t, rec)
	assert.NotEmpty(t, c.Value)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, "/", c.Path)
	assert.Equal(t, int(session.DefaultMaxAge.Seconds()), c.MaxAge)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
}

func TestChat_ExplicitSessionSkipsCookie(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodPost, "/api/chat", `{"message":"hi","sessionId":"explicit-1"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Result().Cookies())
}

func TestChat_BadRequests(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodPost, "/api/chat", `{"message":`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.do(t, http.MethodPost, "/api/chat", `{"message":"   "}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Message is required"}`, rec.Body.String())
	assert.Empty(t, rec.Result().Cookies())
}

func TestChat_BlankSessionIDGetsCookie(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodPost, "/api/chat", `{"message":"Remind me to Call mom","sessionId":"   "}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	cookie := sessionCookie(t, rec)
	assert.NotEqual(t, "", strings.TrimSpace(cookie.Value))

	rec = srv.do(t, http.MethodGet, "/api/tasks", "", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"title":"Call mom"`)
}

func TestTasks_CreatedThroughChat(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodPost, "/api/chat", `{"message":"Remind me to Buy milk"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `Created task: \"Buy milk\"`)
	cookie := sessionCookie(t, rec)

	rec = srv.do(t, http.MethodGet, "/api/tasks?status=pending", "", cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Tasks []entity.Task `json:"tasks"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Tasks, 1)
	assert.Equal(t, "Buy milk", body.Tasks[0].Title)
	assert.Equal(t, entity.TaskStatusPending, body.Tasks[0].Status)
	assert.Equal(t, cookie.Value, body.Tasks[0].SessionID)

	rec = srv.do(t, http.MethodGet, "/api/tasks?status=completed", "", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"tasks":[]}`, rec.Body.String())

	other := &http.Cookie{Name: session.CookieName, Value: "someone-else"}
	rec = srv.do(t, http.MethodGet, "/api/tasks", "", other)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"tasks":[]}`, rec.Body.String())

	rec = srv.do(t, http.MethodGet, "/api/messages", "", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	var history struct {
		Messages []messageView `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &history))
	require.Len(t, history.Messages, 2)
	assert.Equal(t, "user", history.Messages[0].Role)
	assert.Equal(t, "assistant", history.Messages[1].Role)
	assert.Contains(t, history.Messages[1].ToolCalls, "create_task")
}

func TestTasks_ReturnsEveryTask(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	const total = tasks.MaxListLimit + 5
	for i := 0; i < total; i++ {
		_, err := srv.store.Create(ctx, "s1", entity.CreateTaskInput{Title: "task"})
		require.NoError(t, err)
	}

	rec := srv.do(t, http.MethodGet, "/api/tasks", "", &http.Cookie{Name: session.CookieName, Value: "s1"})
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Tasks []entity.Task `json:"tasks"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Tasks, total)
}

func TestTask_ByID(t *testing.T) {
	srv := newTestServer(t)

	task, err := srv.store.Create(context.Background(), "s1", entity.CreateTaskInput{Title: "Buy milk"})
	require.NoError(t, err)

	owner := &http.Cookie{Name: session.CookieName, Value: "s1"}
	rec := srv.do(t, http.MethodGet, "/api/tasks/"+task.ID, "", owner)
	require.Equal(t, http.StatusOK, rec.Code)

	var got entity.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, task.ID, got.ID)
	assert.Equal(t, "Buy milk", got.Title)

	other := &http.Cookie{Name: session.CookieName, Value: "s2"}
	rec = srv.do(t, http.MethodGet, "/api/tasks/"+task.ID, "", other)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Task not found"}`, rec.Body.String())

	rec = srv.do(t, http.MethodGet, "/api/tasks/missing", "", owner)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = srv.do(t, http.MethodGet, "/api/tasks/"+task.ID, "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMessages_LimitCapped(t *testing.T) {
	db, err := sqlite.Open(sqlite.Config{Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlite.Close(db) })

	messages := sqlite.NewMessageLog(db)
	for i := 0; i < 5; i++ {
		require.NoError(t, messages.Append(context.Background(), &entity.ChatMessage{
			SessionID: "s1",
			Role:      entity.RoleUser,
			Content:   "hello",
			CreatedAt: time.Now().UTC(),
		}))
	}

	h := NewHandler(HandlerDeps{
		History:    messages,
		MaxHistory: 2,
		Sessions:   session.NewProvider(false),
		Clock:      clock.System{},
		Logger:     logger.NewNop(),
	})
	req := httptest.NewRequest(http.MethodGet, "/api/messages?limit=10", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "s1"})
	rec := httptest.NewRecorder()
	NewRouter(RouterConfig{}, h).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Messages []messageView `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Messages, 2)
}

func TestTasks_Errors(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodGet, "/api/tasks", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"No session found"}`, rec.Body.String())

	cookie := &http.Cookie{Name: session.CookieName, Value: "s-1"}
	rec = srv.do(t, http.MethodGet, "/api/tasks?status=archived", "", cookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.do(t, http.MethodGet, "/api/messages?limit=zero", "", cookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.do(t, http.MethodGet, "/api/messages", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "connected", body["database"])
	assert.Equal(t, "configured", body["openai"])
	assert.NotEmpty(t, body["timestamp"])

	require.NoError(t, sqlite.Close(srv.db))

	rec = srv.do(t, http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	body = map[string]string{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "unhealthy", body["status"])
	assert.Equal(t, "Database connection failed", body["error"])
}

func TestChat_UnhandledFault(t *testing.T) {
	h := NewHandler(HandlerDeps{
		Chat:     failingChat{},
		Sessions: session.NewProvider(false),
		Clock:    clock.System{},
		Logger:   logger.NewNop(),
	})
	handler := NewRouter(RouterConfig{}, h)

	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"message":"hi"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, rec.Body.String())
}
