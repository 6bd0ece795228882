package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Generation GenerationConfig
	Interview  InterviewConfig
	Upload     UploadConfig
	Recorder   RecorderConfig
	Log        LogConfig
}

type ServerConfig struct {
	Port         string
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	AllowOrigins string
}

type DatabaseConfig struct {
	Enabled  bool
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// GenerationConfig selects the provider and the model used for each call type.
type GenerationConfig struct {
	Provider            string
	GeminiAPIKey        string
	OpenAIAPIKey        string
	OpenAIBaseURL       string
	QuestionModel       string
	FeedbackModel       string
	QuestionTemperature float32
	FeedbackTemperature float32
}

type InterviewConfig struct {
	DefaultQuestionType  string
	DefaultQuestionCount int
	StrictQuestionCount  bool
}

type UploadConfig struct {
	MaxFileSize int64
}

type RecorderConfig struct {
	Concurrency int
	QueueSize   int
}

type LogConfig struct {
	Level string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found. Using environment and default values.")
	}

	env := getEnv("ENV", "development")
	provider := strings.ToLower(getEnv("GENERATION_PROVIDER", ProviderGemini))

	defaultModel := "gemini-2.5-flash"
	if provider == ProviderOpenAI {
		defaultModel = "gpt-4o-mini"
	}

	defaultLevel := "info"
	if env == "development" {
		defaultLevel = "debug"
	}

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "3000"),
			Env:          env,
			ReadTimeout:  getEnvAsDuration("READ_TIMEOUT", "30s"),
			WriteTimeout: getEnvAsDuration("WRITE_TIMEOUT", "120s"),
			AllowOrigins: getEnv("CORS_ALLOW_ORIGINS", "*"),
		},
		Database: DatabaseConfig{
			Enabled:  getEnvAsBool("DB_ENABLED", false),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "prepio"),
		},
		Generation: GenerationConfig{
			Provider:            provider,
			GeminiAPIKey:        getEnv("GEMINI_API_KEY", ""),
			OpenAIAPIKey:        getEnv("OPENAI_API_KEY", ""),
			OpenAIBaseURL:       getEnv("OPENAI_BASE_URL", ""),
			QuestionModel:       getEnv("QUESTION_MODEL", defaultModel),
			FeedbackModel:       getEnv("FEEDBACK_MODEL", defaultModel),
			QuestionTemperature: getEnvAsFloat32("QUESTION_TEMPERATURE", 0.7),
			FeedbackTemperature: getEnvAsFloat32("FEEDBACK_TEMPERATURE", 0.4),
		},
		Interview: InterviewConfig{
			DefaultQuestionType:  getEnv("DEFAULT_QUESTION_TYPE", "General"),
			DefaultQuestionCount: getEnvAsInt("DEFAULT_QUESTION_COUNT", 5),
			StrictQuestionCount:  getEnvAsBool("STRICT_QUESTION_COUNT", false),
		},
		Upload: UploadConfig{
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
		},
		Recorder: RecorderConfig{
			Concurrency: getEnvAsInt("RECORDER_CONCURRENCY", 2),
			QueueSize:   getEnvAsInt("RECORDER_QUEUE_SIZE", 100),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", defaultLevel),
		},
	}
}

// Validate checks the settings that cannot be defaulted.
func (c *Config) Validate() error {
	switch c.Generation.Provider {
	case ProviderGemini:
		if c.Generation.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required for provider %q", ProviderGemini)
		}
	case ProviderOpenAI:
		if c.Generation.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required for provider %q", ProviderOpenAI)
		}
	default:
		return fmt.Errorf("unknown GENERATION_PROVIDER %q (want %q or %q)",
			c.Generation.Provider, ProviderGemini, ProviderOpenAI)
	}

	if c.Interview.DefaultQuestionCount < 1 {
		return fmt.Errorf("DEFAULT_QUESTION_COUNT must be positive, got %d", c.Interview.DefaultQuestionCount)
	}

	if c.Upload.MaxFileSize <= 0 {
		return fmt.Errorf("MAX_FILE_SIZE must be positive, got %d", c.Upload.MaxFileSize)
	}

	return nil
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 32); err == nil {
		return float32(value)
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
