package config

import (
	"reflect"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.AppName != "finsightai-api" {
		t.Errorf("app name: got %q", cfg.AppName)
	}
	if cfg.HTTPAddr != ":8000" {
		t.Errorf("http addr: got %q", cfg.HTTPAddr)
	}
	if cfg.OpenAIBaseURL != "https://api.openai.com/v1" {
		t.Errorf("openai base url: got %q", cfg.OpenAIBaseURL)
	}
	if cfg.OpenAIModel != "gpt-4o" {
		t.Errorf("openai model: got %q", cfg.OpenAIModel)
	}
	if cfg.ShutdownTimeout != 10 {
		t.Errorf("shutdown timeout: got %d", cfg.ShutdownTimeout)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("log level: got %q", cfg.LogLevel)
	}
}

func TestLoadFromEnvOverrides(t *testing.T) {
	t.Setenv("APP_NAME", "custom-api")
	t.Setenv("HTTP_ADDR", ":9000")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_MODEL", "gpt-4o-mini")
	t.Setenv("CONVERSATIONS_DB", "/tmp/conv.db")
	t.Setenv("SHUTDOWN_TIMEOUT", "30")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("DEBUG", "true")

	cfg := DefaultConfig()

	if cfg.AppName != "custom-api" || cfg.HTTPAddr != ":9000" {
		t.Errorf("basic overrides: %q %q", cfg.AppName, cfg.HTTPAddr)
	}
	if cfg.OpenAIAPIKey != "sk-test" || cfg.OpenAIModel != "gpt-4o-mini" {
		t.Errorf("model overrides: %q %q", cfg.OpenAIAPIKey, cfg.OpenAIModel)
	}
	if cfg.ConversationsDB != "/tmp/conv.db" {
		t.Errorf("db override: %q", cfg.ConversationsDB)
	}
	if cfg.ShutdownTimeout != 30 {
		t.Errorf("shutdown override: %d", cfg.ShutdownTimeout)
	}
	if cfg.LogLevel != "debug" || !cfg.Debug {
		t.Errorf("logging overrides: %q %v", cfg.LogLevel, cfg.Debug)
	}
}

func TestCORSOriginsParsing(t *testing.T) {
	t.Setenv("CORS_ORIGINS", "https://app.example.com, https://staging.example.com ,")

	cfg := DefaultConfig()
	want := []string{"https://app.example.com", "https://staging.example.com"}
	if !reflect.DeepEqual(cfg.CORSOrigins, want) {
		t.Errorf("cors origins: got %v, want %v", cfg.CORSOrigins, want)
	}
}

func TestInvalidNumericEnvIgnored(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-number")
	t.Setenv("DEBUG", "maybe")

	cfg := DefaultConfig()
	if cfg.ShutdownTimeout != 10 {
		t.Errorf("invalid timeout should keep default: got %d", cfg.ShutdownTimeout)
	}
	if cfg.Debug {
		t.Error("invalid debug flag should keep default")
	}
}
