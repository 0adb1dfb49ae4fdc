package ai

import (
	"context"
)

// Chat roles understood by every provider.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one role-tagged entry of the prompt context.
type Message struct {
	Role    string
	Content string
}

// Completer sends an ordered message list to a chat model and returns the
// assistant reply. Implementations allow swapping providers (OpenAI, Gemini).
type Completer interface {
	Complete(ctx context.Context, model string, messages []Message) (string, error)
}

// CompleterFunc adapts a plain function to Completer.
type CompleterFunc func(ctx context.Context, model string, messages []Message) (string, error)

func (f CompleterFunc) Complete(ctx context.Context, model string, messages []Message) (string, error) {
	return f(ctx, model, messages)
}
