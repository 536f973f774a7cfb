//go:build !cgo

package tesseract

import "context"

// Engine is the cgo-less placeholder; every recognition fails with
// ErrUnavailable.
type Engine struct {
	languages []string
}

func New(languages ...string) *Engine { return &Engine{languages: languages} }

func (e *Engine) Name() string { return "tesseract" }

func (e *Engine) RecognizeFile(ctx context.Context, path string) (string, error) {
	return "", ErrUnavailable
}
