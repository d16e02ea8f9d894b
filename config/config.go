package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	AppName  string `json:"app_name"`
	HTTPAddr string `json:"http_addr"`

	// OpenAI-compatible chat model used by the financial manager agent.
	OpenAIAPIKey  string `json:"openai_api_key"`
	OpenAIBaseURL string `json:"openai_base_url"`
	OpenAIModel   string `json:"openai_model"`

	// NewsAPI credential. When empty the news fetcher serves mock articles.
	NewsAPIKey string `json:"news_api_key"`

	// Optional sqlite path for durable conversations. Empty keeps the
	// process-local in-memory store.
	ConversationsDB string `json:"conversations_db"`

	CORSOrigins     []string `json:"cors_origins"`
	ShutdownTimeout int      `json:"shutdown_timeout_seconds"`

	LogLevel string `json:"log_level"`
	Debug    bool   `json:"debug"`
}

func DefaultConfig() *Config {
	cfg := &Config{
		AppName:  "finsightai-api",
		HTTPAddr: ":8000",

		OpenAIBaseURL: "https://api.openai.com/v1",
		OpenAIModel:   "gpt-4o",

		CORSOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		ShutdownTimeout: 10,

		LogLevel: "info",
		Debug:    false,
	}

	// Load environment variables from .env file
	_ = godotenv.Load()

	cfg.loadFromEnv()

	return cfg
}

func (c *Config) loadFromEnv() {
	if val := os.Getenv("APP_NAME"); val != "" {
		c.AppName = val
	}
	if val := os.Getenv("HTTP_ADDR"); val != "" {
		c.HTTPAddr = val
	}

	if val := os.Getenv("OPENAI_API_KEY"); val != "" {
		c.OpenAIAPIKey = val
	}
	if val := os.Getenv("OPENAI_BASE_URL"); val != "" {
		c.OpenAIBaseURL = val
	}
	if val := os.Getenv("OPENAI_MODEL"); val != "" {
		c.OpenAIModel = val
	}

	if val := os.Getenv("NEWS_API_KEY"); val != "" {
		c.NewsAPIKey = val
	}

	if val := os.Getenv("CONVERSATIONS_DB"); val != "" {
		c.ConversationsDB = val
	}

	if val := os.Getenv("CORS_ORIGINS"); val != "" {
		origins := make([]string, 0)
		for _, origin := range strings.Split(val, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				origins = append(origins, origin)
			}
		}
		if len(origins) > 0 {
			c.CORSOrigins = origins
		}
	}

	if val := os.Getenv("SHUTDOWN_TIMEOUT"); val != "" {
		if v, err := strconv.Atoi(val); err == nil && v > 0 {
			c.ShutdownTimeout = v
		}
	}

	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.LogLevel = val
	}
	if val := os.Getenv("DEBUG"); val != "" {
		if enabled, err := strconv.ParseBool(val); err == nil {
			c.Debug = enabled
		}
	}
}
