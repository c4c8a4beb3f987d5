package llm

import "context"

// MockClient permite tests sin llamar a un LLM real.
type MockClient struct {
	Response   string
	Err        error
	LastPrompt string
}

func (m *MockClient) Complete(ctx context.Context, prompt string) (string, error) {
	m.LastPrompt = prompt
	return m.Response, m.Err
}
