package inference

import (
	"context"

	"llmapi/internal/runner"
)

// Default sampling options used when a request leaves them unset.
const (
	DefaultMaxTokens   = 256
	DefaultTemperature = 0.7
)

// Generate runs prompt against the active model and returns the response text.
// Without an active model it fails with ErrNoActiveModel and never calls the runner.
func (s *Service) Generate(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error) {
	model := s.Current()
	if model == "" {
		return "", ErrNoActiveModel
	}
	text, err := s.runner.Generate(ctx, runner.GenerateRequest{
		Model:       model,
		Prompt:      prompt,
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return "", runnerError{op: "generate", err: err}
	}
	return text, nil
}
