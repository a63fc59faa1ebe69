package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"taskchat/internal/application/port/input"
	"taskchat/internal/application/port/output"
	"taskchat/internal/domain/entity"
	"taskchat/internal/infrastructure/session"

	"github.com/go-chi/chi/v5"
)

const (
	maxChatBodyBytes  = 64 << 10
	defaultHistory    = 50
	DefaultMaxHistory = 500
	internalError     = "Internal server error"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type MessageHistory interface {
	List(ctx context.Context, sessionID string, limit int) ([]*entity.ChatMessage, error)
}

type Handler struct {
	chat       input.ChatService
	tasks      input.TaskStore
	history    MessageHistory
	maxHistory int
	db         Pinger
	sessions   *session.Provider
	clock      output.Clock
	logger     output.LoggerPort
	llmConfig  bool
}

type HandlerDeps struct {
	Chat             input.ChatService
	Tasks            input.TaskStore
	History          MessageHistory
	MaxHistory       int
	DB               Pinger
	Sessions         *session.Provider
	Clock            output.Clock
	Logger           output.LoggerPort
	OpenAIConfigured bool
}

func NewHandler(deps HandlerDeps) *Handler {
	maxHistory := deps.MaxHistory
	if maxHistory <= 0 {
		maxHistory = DefaultMaxHistory
	}

	return &Handler{
		chat:       deps.Chat,
		tasks:      deps.Tasks,
		history:    deps.History,
		maxHistory: maxHistory,
		db:         deps.DB,
		sessions:   deps.Sessions,
		clock:      deps.Clock,
		logger:     deps.Logger,
		llmConfig:  deps.OpenAIConfigured,
	}
}

type chatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId,omitempty"`
}

func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxChatBodyBytes))
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	explicit := strings.TrimSpace(req.SessionID)
	sessionID := h.sessions.Resolve(r, explicit)

	reply, err := h.chat.Chat(r.Context(), sessionID, req.Message)
	if err != nil {
		var ve *entity.ValidationError
		if errors.As(err, &ve) {
			writeError(w, http.StatusBadRequest, ve.Message)
			return
		}
		h.logger.Error("Chat API error", "session", sessionID, "error", err)
		writeError(w, http.StatusInternalServerError, internalError)
		return
	}

	if explicit == "" {
		h.sessions.SetCookie(w, sessionID)
	}
	writeJSON(w, http.StatusOK, reply)
}

type tasksResponse struct {
	Tasks []*entity.Task `json:"tasks"`
}

func (h *Handler) Tasks(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessions.FromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "No session found")
		return
	}

	status := entity.TaskStatusFilter(r.URL.Query().Get("status"))
	tasks, err := h.tasks.List(r.Context(), sessionID, entity.TaskFilter{
		Status:    status,
		Unbounded: true,
	})
	if err != nil {
		var ve *entity.ValidationError
		if errors.As(err, &ve) {
			writeError(w, http.StatusBadRequest, ve.Message)
			return
		}
		h.logger.Error("Tasks API error", "session", sessionID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch tasks")
		return
	}

	if tasks == nil {
		tasks = []*entity.Task{}
	}
	writeJSON(w, http.StatusOK, tasksResponse{Tasks: tasks})
}

func (h *Handler) Task(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessions.FromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "No session found")
		return
	}

	taskID := chi.URLParam(r, "id")
	task, err := h.tasks.Get(r.Context(), sessionID, taskID)
	if err != nil {
		if errors.Is(err, entity.ErrTaskNotFound) {
			writeError(w, http.StatusNotFound, "Task not found")
			return
		}
		h.logger.Error("Task API error", "session", sessionID, "taskId", taskID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch task")
		return
	}

	writeJSON(w, http.StatusOK, task)
}

type messageView struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	ToolCalls string    `json:"toolCalls,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type messagesResponse struct {
	Messages []messageView `json:"messages"`
}

// Messages returns the session's conversation log, oldest first. Diagnostic
// only; the chat flow never reads it.
func (h *Handler) Messages(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessions.FromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "No session found")
		return
	}

	limit := defaultHistory
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, h.maxHistory)
	}

	msgs, err := h.history.List(r.Context(), sessionID, limit)
	if err != nil {
		h.logger.Error("Messages API error", "session", sessionID, "error", err)
		writeError(w, http.StatusInternalServerError, internalError)
		return
	}

	views := make([]messageView, 0, len(msgs))
	for _, m := range msgs {
		views = append(views, messageView{
			ID:        m.ID,
			Role:      string(m.Role),
			Content:   m.Content,
			ToolCalls: m.ToolCalls,
			CreatedAt: m.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, messagesResponse{Messages: views})
}

type healthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database,omitempty"`
	OpenAI    string `json:"openai,omitempty"`
	Error     string `json:"error,omitempty"`
	Timestamp string `json:"timestamp"`
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	timestamp := h.clock.Now().UTC().Format(time.RFC3339Nano)

	if err := h.db.Ping(r.Context()); err != nil {
		h.logger.Error("Health check failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, healthResponse{
			Status:    "unhealthy",
			Error:     "Database connection failed",
			Timestamp: timestamp,
		})
		return
	}

	openai := "missing"
	if h.llmConfig {
		openai = "configured"
	}

	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "healthy",
		Database:  "connected",
		OpenAI:    openai,
		Timestamp: timestamp,
	})
}
