package di

import (
	"time"

	"taskchat/internal/application/port/output"
	"taskchat/internal/infrastructure/httpapi"
)

const (
	EngineOpenAI    = "openai"
	EngineLangChain = "langchain"
)

type Config struct {
	AppEnv         string
	HTTPAddr       string
	DBPath         string
	DBDebug        bool
	OpenAIAPIKey   string
	OpenAIModel    string
	OpenAIBaseURL  string
	AgentEngine    string
	WeatherBaseURL string
	ChatTimeout    time.Duration
	LogLevel       string
	LLMHTTPLog     bool
	HistoryMax     int
	SystemPrompt   string
}

func ConfigFromEnv(env output.ConfigPort) Config {
	return Config{
		AppEnv:         env.GetWithDefault("APP_ENV", "dev"),
		HTTPAddr:       env.GetWithDefault("HTTP_ADDR", ":3000"),
		DBPath:         env.GetWithDefault("DB_PATH", "taskchat.db"),
		DBDebug:        env.GetBool("DB_DEBUG", false),
		OpenAIAPIKey:   env.Get("OPENAI_API_KEY"),
		OpenAIModel:    env.GetWithDefault("OPENAI_MODEL", "gpt-4-turbo-preview"),
		OpenAIBaseURL:  env.Get("OPENAI_BASE_URL"),
		AgentEngine:    env.GetWithDefault("AGENT_ENGINE", EngineOpenAI),
		WeatherBaseURL: env.Get("WEATHER_BASE_URL"),
		ChatTimeout:    env.GetDuration("CHAT_TIMEOUT", 60*time.Second),
		LogLevel:       env.GetWithDefault("LOG_LEVEL", "info"),
		LLMHTTPLog:     env.GetBool("LLM_HTTP_LOG", false),
		HistoryMax:     env.GetInt("HISTORY_MAX", httpapi.DefaultMaxHistory),
	}
}

func (c Config) Production() bool {
	return c.AppEnv == "production"
}
