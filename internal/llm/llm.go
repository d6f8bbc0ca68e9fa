package llm

import (
	"context"
)

// Request is a single-turn generation request.
type Request struct {
	Model             string
	Prompt            string
	SystemInstruction string
	WebSearch         bool
}

// Citation is one grounding reference attached to a response. Either field may be empty.
type Citation struct {
	Title string
	URI   string
}

type Response struct {
	Text      string
	Citations []Citation
}

type Provider interface {
	Generate(ctx context.Context, req Request) (*Response, error)
}

type Config struct {
	Provider string
	APIKey   string
	BaseURL  string
}

func NewProvider(cfg Config) (Provider, error) {
	switch cfg.Provider {
	case "gemini", "":
		return NewGeminiProvider(GeminiConfig{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
		}), nil
	case "local":
		return LocalProvider{}, nil
	default:
		return nil, ErrUnsupportedProvider{Provider: cfg.Provider}
	}
}
