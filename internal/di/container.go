package di

import (
	"fmt"
	"net/http"

	"taskchat/internal/adapter/tool"
	"taskchat/internal/application/port/input"
	"taskchat/internal/application/port/output"
	"taskchat/internal/application/service"
	"taskchat/internal/infrastructure/clock"
	"taskchat/internal/infrastructure/httpapi"
	"taskchat/internal/infrastructure/llm/langchain"
	"taskchat/internal/infrastructure/llm/openaichat"
	"taskchat/internal/infrastructure/logger"
	"taskchat/internal/infrastructure/mathexpr"
	"taskchat/internal/infrastructure/persistence/sqlite"
	"taskchat/internal/infrastructure/prompts"
	"taskchat/internal/infrastructure/session"
	"taskchat/internal/infrastructure/weather/wttr"
	"taskchat/internal/usecase/chat"
	"taskchat/internal/usecase/executor"
	"taskchat/internal/usecase/tasks"

	"gorm.io/gorm"
)

type Container struct {
	Config   Config
	DB       *gorm.DB
	Logger   output.LoggerPort
	Tools    output.ToolRegistry
	Tasks    input.TaskStore
	Agent    input.AgentExecutor
	Chat     input.ChatService
	Handler  http.Handler
	closeLog func() error
}

func NewContainer(cfg Config) (*Container, error) {
	log, err := logger.NewLoggerAdapter(logger.Config{
		Level:       cfg.LogLevel,
		Development: !cfg.Production(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	db, err := sqlite.Open(sqlite.Config{Path: cfg.DBPath, Debug: cfg.DBDebug})
	if err != nil {
		log.Close()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sysClock := clock.System{}
	repo := sqlite.NewTaskRepository(db)
	messages := sqlite.NewMessageLog(db)
	store := tasks.NewService(repo, sysClock, log.WithField("component", "tasks"))

	tools := service.NewToolRegistry()
	weather := wttr.NewClient(wttr.Config{BaseURL: cfg.WeatherBaseURL})
	if err := registerTools(tools, weather, store, sysClock, log.WithField("component", "tools")); err != nil {
		_ = sqlite.Close(db)
		log.Close()
		return nil, err
	}

	systemPrompt := cfg.SystemPrompt
	if systemPrompt == "" {
		systemPrompt, err = prompts.GenerateSystemPrompt(prompts.SystemPromptTemplate, tools)
		if err != nil {
			_ = sqlite.Close(db)
			log.Close()
			return nil, fmt.Errorf("failed to render system prompt: %w", err)
		}
	}

	agent, err := newAgent(cfg, tools, systemPrompt, log.WithField("component", "agent"))
	if err != nil {
		_ = sqlite.Close(db)
		log.Close()
		return nil, err
	}

	chatUC := chat.New(agent, messages, sysClock, log.WithField("component", "chat"), cfg.ChatTimeout)

	handler := httpapi.NewHandler(httpapi.HandlerDeps{
		Chat:             chatUC,
		Tasks:            store,
		History:          messages,
		MaxHistory:       cfg.HistoryMax,
		DB:               repo,
		Sessions:         session.NewProvider(cfg.Production()),
		Clock:            sysClock,
		Logger:           log.WithField("component", "http"),
		OpenAIConfigured: cfg.OpenAIAPIKey != "",
	})
	router := httpapi.NewRouter(httpapi.RouterConfig{
		ServiceName: "taskchat",
		JSONLogs:    cfg.Production(),
		AccessLog:   true,
	}, handler)

	log.Info("Container initialised",
		"engine", cfg.AgentEngine,
		"model", cfg.OpenAIModel,
		"db", cfg.DBPath,
		"tools", len(tools.All()),
	)

	return &Container{
		Config:   cfg,
		DB:       db,
		Logger:   log,
		Tools:    tools,
		Tasks:    store,
		Agent:    agent,
		Chat:     chatUC,
		Handler:  router,
		closeLog: log.Close,
	}, nil
}

func (c *Container) Close() error {
	var dbErr error
	if c.DB != nil {
		dbErr = sqlite.Close(c.DB)
	}
	if c.closeLog != nil {
		_ = c.closeLog()
	}
	return dbErr
}

// newAgent builds the single LLM client for the process and the executor
// that drives it.
func newAgent(cfg Config, tools output.ToolRegistry, systemPrompt string, log output.LoggerPort) (input.AgentExecutor, error) {
	switch cfg.AgentEngine {
	case EngineOpenAI, "":
		llmCfg := openaichat.DefaultConfig(cfg.OpenAIAPIKey, cfg.OpenAIModel)
		llmCfg.BaseURL = cfg.OpenAIBaseURL
		if cfg.LLMHTTPLog {
			llmCfg.Logger = log
		}
		llm := openaichat.NewAdapter(llmCfg)
		return executor.New(llm, tools, log, systemPrompt), nil

	case EngineLangChain:
		engine, err := langchain.NewEngine(langchain.Config{
			APIKey:       cfg.OpenAIAPIKey,
			Model:        cfg.OpenAIModel,
			BaseURL:      cfg.OpenAIBaseURL,
			SystemPrompt: systemPrompt,
			Logger:       log,
		}, tools)
		if err != nil {
			return nil, fmt.Errorf("failed to create langchain engine: %w", err)
		}
		return engine, nil

	default:
		return nil, fmt.Errorf("unknown agent engine %q", cfg.AgentEngine)
	}
}

func registerTools(
	registry *service.ToolRegistryImpl,
	weather output.WeatherPort,
	store input.TaskStore,
	clk output.Clock,
	log output.LoggerPort,
) error {
	all := []output.ToolPort{
		tool.NewWeatherTool(weather, log),
		tool.NewCalculatorTool(mathexpr.NewEvaluator(), log),
		tool.NewClockTool(clk, log),
		tool.NewCreateTaskTool(store, log),
		tool.NewListTasksTool(store, log),
		tool.NewCompleteTaskTool(store, log),
	}
	for _, t := range all {
		if err := registry.Register(t); err != nil {
			return fmt.Errorf("failed to register tool %s: %w", t.Name(), err)
		}
	}
	return nil
}
