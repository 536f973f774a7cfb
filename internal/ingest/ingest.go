// Package ingest extracts text from document images. Images are sent to an OCR
// model on the runner when accelerated hardware is present; otherwise, or when
// the runner fails, a local recognizer is used.
package ingest

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"llmapi/internal/runner"
)

// DefaultModel is the runner model used for accelerated OCR.
const DefaultModel = "glm-ocr"

// Prompt is the fixed instruction sent with every image.
const Prompt = "Extract all text from this image exactly as it appears. Do not add any additional comments or formatting."

// Recognizer performs local image-to-text on a file path.
type Recognizer interface {
	Name() string
	RecognizeFile(ctx context.Context, path string) (string, error)
}

// Generator is the subset of runner.Runner used for OCR.
type Generator interface {
	Generate(ctx context.Context, req runner.GenerateRequest) (string, error)
}

// Ingestor performs OCR with graceful fallback.
type Ingestor struct {
	model    string
	gen      Generator
	local    Recognizer
	detector Detector
	log      zerolog.Logger
}

// Option configures an Ingestor.
type Option func(*Ingestor)

// WithModel overrides the runner OCR model.
func WithModel(name string) Option {
	return func(in *Ingestor) {
		if strings.TrimSpace(name) != "" {
			in.model = name
		}
	}
}

// WithDetector overrides accelerator detection.
func WithDetector(d Detector) Option {
	return func(in *Ingestor) {
		if d != nil {
			in.detector = d
		}
	}
}

// WithLogger installs a structured logger.
func WithLogger(l zerolog.Logger) Option {
	return func(in *Ingestor) { in.log = l }
}

// New constructs an Ingestor. gen may be nil, in which case only the local
// recognizer is used.
func New(gen Generator, local Recognizer, opts ...Option) *Ingestor {
	in := &Ingestor{
		model:    DefaultModel,
		gen:      gen,
		local:    local,
		detector: AutoDetector{},
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// PerformOCR returns the text found in the image at imagePath. It never fails:
// runner errors fall back to the local recognizer, and local errors yield "".
func (in *Ingestor) PerformOCR(ctx context.Context, imagePath string) string {
	if in.gen != nil && in.detector.Accelerated() {
		text, err := in.runnerOCR(ctx, imagePath)
		if err == nil {
			return text
		}
		in.log.Warn().Err(err).Str("image", imagePath).Str("model", in.model).Msg("runner OCR failed, falling back to local recognizer")
	}
	return in.localOCR(ctx, imagePath)
}

func (in *Ingestor) runnerOCR(ctx context.Context, imagePath string) (string, error) {
	img, err := os.ReadFile(imagePath)
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	return in.gen.Generate(ctx, runner.GenerateRequest{
		Model:  in.model,
		Prompt: Prompt,
		Images: [][]byte{img},
	})
}

func (in *Ingestor) localOCR(ctx context.Context, imagePath string) string {
	if in.local == nil {
		in.log.Error().Str("image", imagePath).Msg("no local recognizer configured")
		return ""
	}
	text, err := in.local.RecognizeFile(ctx, imagePath)
	if err != nil {
		in.log.Error().Err(err).Str("image", imagePath).Str("engine", in.local.Name()).Msg("local OCR failed")
		return ""
	}
	return text
}
