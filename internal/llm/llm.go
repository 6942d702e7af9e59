package llm

import "context"

// TextGenerator is an interface for a client that can generate text from a
// prompt.
type TextGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}
