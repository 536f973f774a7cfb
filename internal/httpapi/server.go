package httpapi

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"llmapi/internal/inference"
	"llmapi/internal/runner"
)

// Service defines the model operations required by the HTTP API layer.
type Service interface {
	Inventory(ctx context.Context) inference.Inventory
	Load(ctx context.Context, name string, progress runner.ProgressFunc) error
	Unload(ctx context.Context)
	Delete(ctx context.Context, name string) error
	Generate(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error)
}

// Trending supplies popular model names for discovery.
type Trending interface {
	Popular(ctx context.Context) []string
}

// OCR extracts text from an image on disk.
type OCR interface {
	PerformOCR(ctx context.Context, imagePath string) string
}

// api binds the collaborators to HTTP handlers.
type api struct {
	svc      Service
	trending Trending
	ocr      OCR
}

// NewMux builds the router. trending and ocr may be nil; their routes then
// report 503.
func NewMux(svc Service, trending Trending, ocr OCR) http.Handler {
	a := &api{svc: svc, trending: trending, ocr: ocr}

	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(MetricsMiddleware)
	// Compression for JSON endpoints; NDJSON streams are left as-is.
	r.Use(middleware.Compress(5, "application/json"))
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})
	if corsEnabled {
		r.Use(cors.Handler(corsOptions()))
	}

	r.Get("/", a.handleRoot)
	r.Route("/api", func(r chi.Router) {
		r.Get("/models", a.handleListModels)
		r.Get("/trending-models", a.handleTrending)
		r.Post("/models/load", a.handleLoad)
		r.Post("/models/unload", a.handleUnload)
		r.Post("/models/delete", a.handleDelete)
		r.Post("/generate", a.handleGenerate)
		r.Post("/ocr", a.handleOCR)
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)
	MountSwagger(r)

	return r
}
