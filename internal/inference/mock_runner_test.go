package inference

import (
	"context"

	"github.com/stretchr/testify/mock"

	"llmapi/internal/runner"
)

// mockRunner is a testify mock of runner.Runner.
type mockRunner struct {
	mock.Mock
}

func (m *mockRunner) List(ctx context.Context) ([]runner.Descriptor, error) {
	args := m.Called(ctx)
	ds, _ := args.Get(0).([]runner.Descriptor)
	return ds, args.Error(1)
}

func (m *mockRunner) Pull(ctx context.Context, name string, fn runner.ProgressFunc) error {
	args := m.Called(ctx, name, fn)
	return args.Error(0)
}

func (m *mockRunner) Generate(ctx context.Context, req runner.GenerateRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *mockRunner) Delete(ctx context.Context, name string) error {
	return m.Called(ctx, name).Error(0)
}

func (m *mockRunner) Unload(ctx context.Context, name string) error {
	return m.Called(ctx, name).Error(0)
}

func installed(names ...string) []runner.Descriptor {
	out := make([]runner.Descriptor, 0, len(names))
	for _, n := range names {
		out = append(out, runner.Descriptor{Name: n})
	}
	return out
}
