package inference

import (
	"context"
	"errors"
	"strings"

	"llmapi/internal/runner"
)

// ErrEmptyModelName is returned when an operation is given a blank model name.
var ErrEmptyModelName = errors.New("model name is required")

// Load makes name the active model. Loading the active model is a no-op.
// A model that is not installed is pulled first; progress, when non-nil,
// receives every pull record. A failed pull leaves the active model unchanged.
func (s *Service) Load(ctx context.Context, name string, progress runner.ProgressFunc) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyModelName
	}
	if s.Current() == name {
		s.log.Info().Str("model", name).Msg("model already loaded")
		return nil
	}
	s.publisher.Publish(Event{Name: "load_start", Model: name})

	if !isInstalled(name, s.ListAvailable(ctx)) {
		s.log.Info().Str("model", name).Msg("pulling model")
		if err := s.runner.Pull(ctx, name, progress); err != nil {
			s.log.Error().Err(err).Str("model", name).Msg("pull failed")
			s.publisher.Publish(Event{Name: "pull_failed", Model: name, Fields: map[string]any{"error": err.Error()}})
			return runnerError{op: "pull", err: err}
		}
		s.publisher.Publish(Event{Name: "pull_done", Model: name})
	}

	s.setActive(name)
	s.log.Info().Str("model", name).Msg("model ready")
	s.publisher.Publish(Event{Name: "load_done", Model: name})
	return nil
}

// Unload asks the runner to evict the active model and clears it. Runner
// failures are logged only; the active model is cleared regardless.
func (s *Service) Unload(ctx context.Context) {
	name := s.Current()
	if name == "" {
		return
	}
	s.log.Info().Str("model", name).Msg("unloading model")
	if err := s.runner.Unload(ctx, name); err != nil {
		s.log.Warn().Err(err).Str("model", name).Msg("unload failed")
	}
	s.mu.Lock()
	if s.active == name {
		s.active = ""
	}
	s.mu.Unlock()
	s.publisher.Publish(Event{Name: "unload_done", Model: name})
}

// Delete removes name from the runner. If it was the active model, the active
// model is cleared. On runner failure nothing changes.
func (s *Service) Delete(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyModelName
	}
	s.log.Info().Str("model", name).Msg("deleting model")
	if err := s.runner.Delete(ctx, name); err != nil {
		return runnerError{op: "delete", err: err}
	}
	s.mu.Lock()
	cleared := s.active == name
	if cleared {
		s.active = ""
	}
	s.mu.Unlock()
	s.publisher.Publish(Event{Name: "delete_done", Model: name, Fields: map[string]any{"was_active": cleared}})
	return nil
}

// isInstalled matches name against installed names; an untagged name also
// matches its ":latest" tag.
func isInstalled(name string, installed []string) bool {
	for _, n := range installed {
		if n == name || (!strings.Contains(name, ":") && n == name+":latest") {
			return true
		}
	}
	return false
}
