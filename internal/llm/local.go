package llm

import "context"

// LocalProvider is selected by LLM_PROVIDER=local. No local model backend exists yet.
type LocalProvider struct{}

func (LocalProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	return nil, ErrLocalNotImplemented
}
