package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Supported completion providers.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
	ProviderOllama    = "ollama"
)

type Config struct {
	Server     ServerConfig
	Logger     LoggerConfig
	Storage    StorageConfig
	Redis      RedisConfig
	Session    SessionConfig
	LLM        LLMConfig
	Generation GenerationConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	ClientOrigin string
}

type LoggerConfig struct {
	Level string
	Env   string
	File  LogFileConfig
}

// LogFileConfig enables a rotating file sink next to stdout when Path is set.
type LogFileConfig struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

type StorageConfig struct {
	QuestionsPath string
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type SessionConfig struct {
	TTL time.Duration
}

type LLMConfig struct {
	Provider    string
	Temperature float64
	Timeout     time.Duration
	OpenAI      ProviderConfig
	Anthropic   ProviderConfig
	Gemini      ProviderConfig
	Ollama      ProviderConfig
}

// ProviderConfig holds the connection settings of a single completion provider.
type ProviderConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type GenerationConfig struct {
	DefaultPerLevel int
	MaxPerLevel     int
	RateLimit       RateLimitConfig
}

// RateLimitConfig bounds generation requests per client IP.
type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 4000)
	v.SetDefault("server.read_timeout", 30)
	v.SetDefault("server.write_timeout", 120)
	v.SetDefault("server.client_origin", "http://localhost:8080")

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.env", "development")
	v.SetDefault("logger.file.max_size_mb", 100)
	v.SetDefault("logger.file.max_backups", 5)
	v.SetDefault("logger.file.max_age_days", 30)
	v.SetDefault("logger.file.compress", true)

	v.SetDefault("storage.questions_path", "data/questions.json")

	v.SetDefault("session.ttl", "2h")

	v.SetDefault("llm.provider", ProviderOpenAI)
	v.SetDefault("llm.temperature", 0.7)
	v.SetDefault("llm.timeout", "90s")
	v.SetDefault("llm.openai.model", "gpt-4o-mini")
	v.SetDefault("llm.anthropic.model", "claude-3-5-haiku-latest")
	v.SetDefault("llm.gemini.model", "gemini-2.0-flash")
	v.SetDefault("llm.ollama.model", "qwen3:8b")
	v.SetDefault("llm.ollama.base_url", "http://localhost:11434")

	v.SetDefault("generation.default_per_level", 10)
	v.SetDefault("generation.max_per_level", 30)
	v.SetDefault("generation.rate_limit.requests", 5)
	v.SetDefault("generation.rate_limit.window", "1m")
}

// LoadConfig reads config.yaml from the given directories (default "." and
// "./config"). A missing file is not an error: defaults and environment
// variables are used instead.
func LoadConfig(paths ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if len(paths) == 0 {
		paths = []string{".", "./config"}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Log the config file being used
	if configFile := v.ConfigFileUsed(); configFile != "" {
		absPath, _ := filepath.Abs(configFile)
		fmt.Printf("Using config file: %s\n", absPath)
	}

	config := &Config{
		Server: ServerConfig{
			Port:         v.GetInt("server.port"),
			ReadTimeout:  seconds(v, "server.read_timeout"),
			WriteTimeout: seconds(v, "server.write_timeout"),
			ClientOrigin: v.GetString("server.client_origin"),
		},
		Logger: LoggerConfig{
			Level: v.GetString("logger.level"),
			Env:   v.GetString("logger.env"),
			File: LogFileConfig{
				Path:       v.GetString("logger.file.path"),
				MaxSizeMB:  v.GetInt("logger.file.max_size_mb"),
				MaxBackups: v.GetInt("logger.file.max_backups"),
				MaxAgeDays: v.GetInt("logger.file.max_age_days"),
				Compress:   v.GetBool("logger.file.compress"),
			},
		},
		Storage: StorageConfig{
			QuestionsPath: v.GetString("storage.questions_path"),
		},
		Redis: RedisConfig{
			Address:  v.GetString("redis.address"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Session: SessionConfig{
			TTL: v.GetDuration("session.ttl"),
		},
		LLM: LLMConfig{
			Provider:    strings.ToLower(v.GetString("llm.provider")),
			Temperature: v.GetFloat64("llm.temperature"),
			Timeout:     v.GetDuration("llm.timeout"),
			OpenAI:      providerConfig(v, "llm.openai"),
			Anthropic:   providerConfig(v, "llm.anthropic"),
			Gemini:      providerConfig(v, "llm.gemini"),
			Ollama:      providerConfig(v, "llm.ollama"),
		},
		Generation: GenerationConfig{
			DefaultPerLevel: v.GetInt("generation.default_per_level"),
			MaxPerLevel:     v.GetInt("generation.max_per_level"),
			RateLimit: RateLimitConfig{
				Requests: v.GetInt("generation.rate_limit.requests"),
				Window:   v.GetDuration("generation.rate_limit.window"),
			},
		},
	}

	// Override with environment variables if set
	if port := os.Getenv("SERVER_PORT"); port != "" {
		if _, err := fmt.Sscanf(port, "%d", &config.Server.Port); err != nil {
			return nil, fmt.Errorf("invalid SERVER_PORT %q: %w", port, err)
		}
	} else if port := os.Getenv("PORT"); port != "" {
		if _, err := fmt.Sscanf(port, "%d", &config.Server.Port); err != nil {
			return nil, fmt.Errorf("invalid PORT %q: %w", port, err)
		}
	}
	if origin := os.Getenv("CLIENT_ORIGIN"); origin != "" {
		config.Server.ClientOrigin = origin
	}
	if path := os.Getenv("QUESTIONS_PATH"); path != "" {
		config.Storage.QuestionsPath = path
	}
	if provider := os.Getenv("LLM_PROVIDER"); provider != "" {
		config.LLM.Provider = strings.ToLower(provider)
	}
	if llmServer := os.Getenv("LLM_SERVER"); llmServer != "" {
		config.LLM.Ollama.BaseURL = llmServer
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		config.LLM.OpenAI.APIKey = key
	}
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		config.LLM.Anthropic.APIKey = key
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		config.LLM.Gemini.APIKey = key
	}
	if redisAddress := os.Getenv("REDIS_ADDRESS"); redisAddress != "" {
		config.Redis.Address = redisAddress
	}
	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		config.Redis.Password = redisPassword
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate rejects settings the server cannot run with.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	switch c.LLM.Provider {
	case ProviderOpenAI, ProviderAnthropic, ProviderGemini, ProviderOllama:
	default:
		return fmt.Errorf("unknown llm.provider %q", c.LLM.Provider)
	}
	if c.Generation.MaxPerLevel <= 0 {
		return fmt.Errorf("generation.max_per_level must be positive")
	}
	if c.Generation.DefaultPerLevel <= 0 || c.Generation.DefaultPerLevel > c.Generation.MaxPerLevel {
		return fmt.Errorf("generation.default_per_level must be between 1 and %d", c.Generation.MaxPerLevel)
	}
	if c.Storage.QuestionsPath == "" {
		return fmt.Errorf("storage.questions_path is required")
	}
	return nil
}

// seconds reads a plain number of seconds, or a duration string such as "30s".
func seconds(v *viper.Viper, key string) time.Duration {
	if n := v.GetInt(key); n > 0 {
		return time.Duration(n) * time.Second
	}
	return v.GetDuration(key)
}

func providerConfig(v *viper.Viper, prefix string) ProviderConfig {
	return ProviderConfig{
		APIKey:  v.GetString(prefix + ".api_key"),
		Model:   v.GetString(prefix + ".model"),
		BaseURL: v.GetString(prefix + ".base_url"),
	}
}
