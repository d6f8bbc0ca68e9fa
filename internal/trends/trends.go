// Package trends assembles a market report from one grounded model call and the
// configured analytics constants.
package trends

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/Keyring-Network/trendintel/internal/llm"
	"github.com/Keyring-Network/trendintel/internal/report"
)

const (
	DefaultModel = "gemini-3-flash-preview"

	SystemInstruction = "You are a senior market analyst specializing in the global beauty and personal care industry. Provide professional, data-driven insights."

	Prompt = `
Analyze the current global cosmetic trends for 2024 and 2025.
Provide a detailed report including:
1. A executive summary of the global beauty market.
2. Key market segments with estimated growth rates (Skincare, Makeup, Haircare, Fragrance).
3. Regional trends (focus on K-Beauty, European luxury, and US clean beauty).
4. Top 5 trending ingredients and their momentum.
5. Key shifts in consumer behavior (e.g., sustainability, AI-driven skincare).

Format the response as a structured report.
Include citations and specific market data where possible using Google Search.
`

	EmptySummaryText   = "Failed to generate summary."
	DefaultSourceTitle = "Reference Source"
	DefaultSourceURI   = "#"
)

type Options struct {
	Model     string
	Analytics report.Analytics
	// RatePerMinute caps outbound calls; zero or less means unlimited.
	RatePerMinute float64
	Burst         int
	Logger        logrus.FieldLogger
}

type Fetcher struct {
	provider  llm.Provider
	model     string
	analytics report.Analytics
	limiter   *rate.Limiter
	log       logrus.FieldLogger
}

func NewFetcher(provider llm.Provider, opts Options) *Fetcher {
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = DefaultModel
	}
	limit := rate.Inf
	if opts.RatePerMinute > 0 {
		limit = rate.Limit(opts.RatePerMinute / 60.0)
	}
	burst := opts.Burst
	if burst < 1 {
		burst = 1
	}
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Fetcher{
		provider:  provider,
		model:     model,
		analytics: opts.Analytics,
		limiter:   rate.NewLimiter(limit, burst),
		log:       log,
	}
}

// Fetch performs one grounded generation call. Provider errors are returned as-is.
func (f *Fetcher) Fetch(ctx context.Context) (report.Record, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return report.Record{}, err
	}

	f.log.WithField("model", f.model).Info("requesting trend analysis")
	resp, err := f.provider.Generate(ctx, llm.Request{
		Model:             f.model,
		Prompt:            Prompt,
		SystemInstruction: SystemInstruction,
		WebSearch:         true,
	})
	if err != nil {
		f.log.WithError(err).Error("trend analysis request failed")
		return report.Record{}, err
	}

	if resp == nil {
		resp = &llm.Response{}
	}
	summary := resp.Text
	if summary == "" {
		summary = EmptySummaryText
	}
	sources := Sources(resp.Citations)
	f.log.WithFields(logrus.Fields{
		"summary_chars": len(summary),
		"sources":       len(sources),
	}).Info("trend analysis received")

	return f.analytics.Record(summary, sources), nil
}

// Sources maps citations one-to-one, filling in a missing title or URI.
func Sources(citations []llm.Citation) []report.Source {
	sources := make([]report.Source, 0, len(citations))
	for _, citation := range citations {
		source := report.Source{Title: citation.Title, URI: citation.URI}
		if source.Title == "" {
			source.Title = DefaultSourceTitle
		}
		if source.URI == "" {
			source.URI = DefaultSourceURI
		}
		sources = append(sources, source)
	}
	return sources
}
