package trends

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/Keyring-Network/trendintel/internal/config"
	"github.com/Keyring-Network/trendintel/internal/llm"
	"github.com/Keyring-Network/trendintel/internal/report"
)

// FromConfig wires the provider, analytics and limits named by cfg into a Fetcher.
func FromConfig(cfg config.Config, log logrus.FieldLogger) (*Fetcher, error) {
	provider, err := llm.NewProvider(llm.Config{
		Provider: cfg.LLMProvider,
		APIKey:   cfg.APIKey,
		BaseURL:  cfg.LLMBaseURL,
	})
	if err != nil {
		return nil, err
	}
	analytics, err := report.LoadAnalytics(cfg.AnalyticsFile)
	if err != nil {
		return nil, fmt.Errorf("analytics: %w", err)
	}
	return NewFetcher(provider, Options{
		Model:         cfg.LLMModel,
		Analytics:     analytics,
		RatePerMinute: cfg.LLMRatePerMinute,
		Burst:         cfg.LLMBurst,
		Logger:        log,
	}), nil
}
