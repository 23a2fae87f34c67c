package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "SERVER_PORT", "CLIENT_ORIGIN", "QUESTIONS_PATH", "LLM_PROVIDER", "LLM_SERVER",
		"REDIS_ADDRESS", "REDIS_PASSWORD", "SESSION_TTL", "LLM_TIMEOUT",
	} {
		t.Setenv(key, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o644))
	return dir
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 4000, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "http://localhost:8080", cfg.Server.ClientOrigin)
	assert.Equal(t, "data/questions.json", cfg.Storage.QuestionsPath)
	assert.Equal(t, 2*time.Hour, cfg.Session.TTL)
	assert.Equal(t, ProviderOpenAI, cfg.LLM.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.OpenAI.Model)
	assert.InDelta(t, 0.7, cfg.LLM.Temperature, 1e-9)
	assert.Equal(t, 10, cfg.Generation.DefaultPerLevel)
	assert.Equal(t, 30, cfg.Generation.MaxPerLevel)
	assert.Equal(t, time.Minute, cfg.Generation.RateLimit.Window)
	assert.Empty(t, cfg.Redis.Address)
}

func TestLoadConfig_FromFile(t *testing.T) {
	clearEnv(t)
	dir := writeConfig(t, `
server:
  port: 5000
  read_timeout: 15s
  client_origin: https://quiz.example.com
storage:
  questions_path: /srv/quiz/questions.json
session:
  ttl: 30m
llm:
  provider: Anthropic
  temperature: 0.2
  anthropic:
    model: claude-sonnet-4-0
redis:
  address: localhost:6379
  db: 2
logger:
  level: debug
  file:
    path: logs/app.log
`)

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "https://quiz.example.com", cfg.Server.ClientOrigin)
	assert.Equal(t, "/srv/quiz/questions.json", cfg.Storage.QuestionsPath)
	assert.Equal(t, 30*time.Minute, cfg.Session.TTL)
	assert.Equal(t, ProviderAnthropic, cfg.LLM.Provider)
	assert.Equal(t, "claude-sonnet-4-0", cfg.LLM.Anthropic.Model)
	assert.Equal(t, "localhost:6379", cfg.Redis.Address)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, "logs/app.log", cfg.Logger.File.Path)
	assert.Equal(t, 100, cfg.Logger.File.MaxSizeMB)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("SERVER_PORT", "6001")
	t.Setenv("QUESTIONS_PATH", "/tmp/q.json")
	t.Setenv("CLIENT_ORIGIN", "http://localhost:3000")
	t.Setenv("LLM_PROVIDER", "ollama")
	t.Setenv("LLM_SERVER", "http://ollama:11434")
	t.Setenv("REDIS_ADDRESS", "redis:6379")

	cfg, err := LoadConfig(writeConfig(t, "server:\n  port: 5000\n"))
	require.NoError(t, err)

	assert.Equal(t, 6001, cfg.Server.Port)
	assert.Equal(t, "/tmp/q.json", cfg.Storage.QuestionsPath)
	assert.Equal(t, "http://localhost:3000", cfg.Server.ClientOrigin)
	assert.Equal(t, ProviderOllama, cfg.LLM.Provider)
	assert.Equal(t, "http://ollama:11434", cfg.LLM.Ollama.BaseURL)
	assert.Equal(t, "redis:6379", cfg.Redis.Address)
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	clearEnv(t)

	_, err := LoadConfig(writeConfig(t, "llm:\n  provider: mystery\n"))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "generation:\n  default_per_level: 40\n  max_per_level: 30\n"))
	assert.Error(t, err)

	t.Setenv("SERVER_PORT", "not-a-port")
	_, err = LoadConfig(t.TempDir())
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	valid := Config{
		Server:     ServerConfig{Port: 4000},
		Storage:    StorageConfig{QuestionsPath: "q.json"},
		LLM:        LLMConfig{Provider: ProviderGemini},
		Generation: GenerationConfig{DefaultPerLevel: 10, MaxPerLevel: 30},
	}
	assert.NoError(t, valid.Validate())

	noPort := valid
	noPort.Server.Port = 0
	assert.Error(t, noPort.Validate())

	noPath := valid
	noPath.Storage.QuestionsPath = ""
	assert.Error(t, noPath.Validate())
}
