package llm

import (
	"errors"
	"fmt"
)

// ErrLocalNotImplemented is returned by the local provider for every request.
var ErrLocalNotImplemented = errors.New("local LLM mode is not implemented")

// ErrUnsupportedProvider names an LLM_PROVIDER value no provider is registered for.
type ErrUnsupportedProvider struct {
	Provider string
}

func (e ErrUnsupportedProvider) Error() string {
	return fmt.Sprintf("unsupported LLM provider: %q (want gemini or local)", e.Provider)
}
