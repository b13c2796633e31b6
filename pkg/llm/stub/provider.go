package stub

import (
	"context"
	"fmt"

	"shadowwork-be/pkg/llm"
)

// StubProvider is a deterministic offline llm.Provider for tests and
// demo deployments. Selected by configuration, never by runtime feature
// detection.
type StubProvider struct {
	// Reply, when set, is returned verbatim for every call.
	Reply string

	// Err, when set, is returned from every call so tests can exercise
	// the canned-fallback path.
	Err error
}

var _ llm.Provider = &StubProvider{}

func NewStubProvider() *StubProvider {
	return &StubProvider{}
}

func (p *StubProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	if p.Err != nil {
		return "", p.Err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if p.Reply != "" {
		return p.Reply, nil
	}
	if len(history) == 0 {
		return "", fmt.Errorf("empty history")
	}
	// Echo the tail of the prompt so assertions can see what was sent.
	last := history[len(history)-1]
	return fmt.Sprintf("[stub reply to %d chars]", len(last.Content)), nil
}

func (p *StubProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}
