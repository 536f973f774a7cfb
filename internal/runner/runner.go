// Package runner is the client boundary to the external model runner that owns
// model weights and performs inference. Everything that talks to the runner goes
// through the Runner interface; response shapes are normalized here and nowhere else.
package runner

import "context"

// Runner is the request/response contract of the external model runner.
type Runner interface {
	// List returns the models installed in the runner.
	List(ctx context.Context) ([]Descriptor, error)
	// Pull fetches a model's weights, invoking fn for each progress record as it arrives.
	Pull(ctx context.Context, name string, fn ProgressFunc) error
	// Generate runs a single non-streaming completion and returns the response text.
	Generate(ctx context.Context, req GenerateRequest) (string, error)
	// Delete removes an installed model.
	Delete(ctx context.Context, name string) error
	// Unload evicts a model from runner memory (zero keep-alive).
	Unload(ctx context.Context, name string) error
}

// Descriptor is the normalized view of one installed model.
type Descriptor struct {
	Name   string
	Family string
	Size   int64
}

// Progress is one pull-progress record.
type Progress struct {
	Status    string
	Digest    string
	Total     int64
	Completed int64
}

// ProgressFunc receives pull progress. Returning an error aborts the pull.
type ProgressFunc func(Progress) error

// GenerateRequest carries a prompt and its sampling options.
type GenerateRequest struct {
	Model       string
	Prompt      string
	MaxTokens   int
	Temperature float64
	// Images are raw encoded image files attached to the prompt.
	Images [][]byte
}

// Names projects descriptors to their names, preserving order.
func Names(ds []Descriptor) []string {
	out := make([]string, 0, len(ds))
	for _, d := range ds {
		out = append(out, d.Name)
	}
	return out
}
