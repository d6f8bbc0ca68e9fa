package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	ModeInline   = "inline"
	ModeTemporal = "temporal"
)

type ErrUnknownMode struct {
	Mode string
}

func (e ErrUnknownMode) Error() string {
	return fmt.Sprintf("unknown analysis mode: %s", e.Mode)
}

type Config struct {
	Port              string
	APIKey            string
	LLMProvider       string
	LLMModel          string
	LLMBaseURL        string
	LLMRatePerMinute  float64
	LLMBurst          int
	AnalyticsFile     string
	AnalysisMode      string
	TemporalAddress   string
	TemporalTaskQueue string
	LogLevel          string
	LogFile           string
}

// Load seeds the environment from a dotenv file (if one exists) and reads the config.
// Variables already present in the environment win over the file.
func Load() (Config, error) {
	path := getEnv("DOTENV_PATH", ".env")
	if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", path, err)
	}
	cfg := FromEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func FromEnv() Config {
	apiKey := getEnv("API_KEY", "")
	if apiKey == "" {
		apiKey = getEnv("GEMINI_API_KEY", "")
	}
	return Config{
		Port:              getEnv("PORT", "8080"),
		APIKey:            apiKey,
		LLMProvider:       getEnv("LLM_PROVIDER", "gemini"),
		LLMModel:          getEnv("LLM_MODEL", "gemini-3-flash-preview"),
		LLMBaseURL:        getEnv("LLM_BASE_URL", ""),
		LLMRatePerMinute:  getEnvFloat("LLM_RATE_PER_MINUTE", 0),
		LLMBurst:          getEnvInt("LLM_BURST", 1),
		AnalyticsFile:     getEnv("ANALYTICS_FILE", ""),
		AnalysisMode:      strings.ToLower(getEnv("ANALYSIS_MODE", ModeInline)),
		TemporalAddress:   getEnv("TEMPORAL_ADDRESS", "localhost:7233"),
		TemporalTaskQueue: getEnv("TEMPORAL_TASK_QUEUE", "trendintel-analysis"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFile:           getEnv("LOG_FILE", ""),
	}
}

func (c Config) Validate() error {
	switch c.AnalysisMode {
	case ModeInline, ModeTemporal:
		return nil
	default:
		return ErrUnknownMode{Mode: c.AnalysisMode}
	}
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(strings.TrimSpace(value))
		if err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err == nil {
			return parsed
		}
	}
	return fallback
}
