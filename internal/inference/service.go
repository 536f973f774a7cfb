package inference

import (
	"sync"

	"github.com/rs/zerolog"

	"llmapi/internal/runner"
)

// Service tracks the active model and forwards operations to the runner.
// The zero active model means nothing is loaded.
type Service struct {
	mu     sync.RWMutex
	active string

	runner    runner.Runner
	log       zerolog.Logger
	publisher EventPublisher
}

// Option configures a Service.
type Option func(*Service)

// WithLogger installs a structured logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Service) { s.log = l }
}

// WithPublisher installs a lifecycle event publisher.
func WithPublisher(p EventPublisher) Option {
	return func(s *Service) {
		if p != nil {
			s.publisher = p
		}
	}
}

// New constructs a Service with no active model.
func New(r runner.Runner, opts ...Option) *Service {
	s := &Service{
		runner:    r,
		log:       zerolog.Nop(),
		publisher: noopPublisher{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Current returns the active model name, or "" when nothing is loaded.
func (s *Service) Current() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

func (s *Service) setActive(name string) {
	s.mu.Lock()
	s.active = name
	s.mu.Unlock()
}
