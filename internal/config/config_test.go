package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

var allEnvKeys = []string{
	"DOTENV_PATH",
	"PORT",
	"API_KEY",
	"GEMINI_API_KEY",
	"LLM_PROVIDER",
	"LLM_MODEL",
	"LLM_BASE_URL",
	"LLM_RATE_PER_MINUTE",
	"LLM_BURST",
	"ANALYTICS_FILE",
	"ANALYSIS_MODE",
	"TEMPORAL_ADDRESS",
	"TEMPORAL_TASK_QUEUE",
	"LOG_LEVEL",
	"LOG_FILE",
}

// clearEnv blanks every key for the duration of the test; t.Setenv restores them afterwards.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range allEnvKeys {
		t.Setenv(key, "")
		_ = os.Unsetenv(key)
	}
}

func TestFromEnv_AllDefaults(t *testing.T) {
	clearEnv(t)

	cfg := FromEnv()
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "", cfg.APIKey)
	require.Equal(t, "gemini", cfg.LLMProvider)
	require.Equal(t, "gemini-3-flash-preview", cfg.LLMModel)
	require.Equal(t, "", cfg.LLMBaseURL)
	require.Equal(t, float64(0), cfg.LLMRatePerMinute)
	require.Equal(t, 1, cfg.LLMBurst)
	require.Equal(t, ModeInline, cfg.AnalysisMode)
	require.Equal(t, "localhost:7233", cfg.TemporalAddress)
	require.Equal(t, "trendintel-analysis", cfg.TemporalTaskQueue)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, "", cfg.LogFile)
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("API_KEY", "key-1")
	t.Setenv("LLM_MODEL", "gemini-2.5-flash")
	t.Setenv("LLM_RATE_PER_MINUTE", "30")
	t.Setenv("LLM_BURST", "2")
	t.Setenv("ANALYSIS_MODE", "TEMPORAL")
	t.Setenv("TEMPORAL_TASK_QUEUE", "custom-queue")

	cfg := FromEnv()
	require.Equal(t, "9090", cfg.Port)
	require.Equal(t, "key-1", cfg.APIKey)
	require.Equal(t, "gemini-2.5-flash", cfg.LLMModel)
	require.Equal(t, float64(30), cfg.LLMRatePerMinute)
	require.Equal(t, 2, cfg.LLMBurst)
	require.Equal(t, ModeTemporal, cfg.AnalysisMode)
	require.Equal(t, "custom-queue", cfg.TemporalTaskQueue)
}

func TestFromEnv_GeminiKeyFallback(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "gemini-key")

	require.Equal(t, "gemini-key", FromEnv().APIKey)

	t.Setenv("API_KEY", "primary-key")
	require.Equal(t, "primary-key", FromEnv().APIKey)
}

func TestFromEnv_InvalidNumbersFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("LLM_RATE_PER_MINUTE", "fast")
	t.Setenv("LLM_BURST", "many")

	cfg := FromEnv()
	require.Equal(t, float64(0), cfg.LLMRatePerMinute)
	require.Equal(t, 1, cfg.LLMBurst)
}

func TestValidate_UnknownMode(t *testing.T) {
	err := Config{AnalysisMode: "batch"}.Validate()
	require.ErrorIs(t, err, ErrUnknownMode{Mode: "batch"})
	require.EqualError(t, err, "unknown analysis mode: batch")
}

func TestLoad_ReadsDotenv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("API_KEY=from-file\nPORT=7000\n"), 0o600))
	t.Setenv("DOTENV_PATH", path)
	t.Setenv("PORT", "7100")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "from-file", cfg.APIKey)
	require.Equal(t, "7100", cfg.Port)
	_ = os.Unsetenv("API_KEY")
}

func TestLoad_MissingDotenvIgnored(t *testing.T) {
	clearEnv(t)
	t.Setenv("DOTENV_PATH", filepath.Join(t.TempDir(), "missing.env"))

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Port)
}

func TestLoad_RejectsUnknownMode(t *testing.T) {
	clearEnv(t)
	t.Setenv("DOTENV_PATH", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("ANALYSIS_MODE", "batch")

	_, err := Load()
	require.Error(t, err)
}
