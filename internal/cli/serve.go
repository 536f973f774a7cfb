package cli

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"llmapi/internal/config"
	"llmapi/internal/httpapi"
	"llmapi/internal/inference"
	"llmapi/internal/ingest"
	"llmapi/internal/runner"
	"llmapi/internal/trending"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(deps Deps, opts *options) *cobra.Command {
	var addr, defaultModel, corsOrigins string
	cmd := &cobra.Command{
		Use:     "serve",
		Short:   "Run the HTTP API",
		Example: "  llmapi serve --addr :8000 --default-model llama3.2",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.resolve()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}
			if defaultModel != "" {
				cfg.DefaultModel = defaultModel
			}
			if origins := splitCSV(corsOrigins); len(origins) > 0 {
				cfg.CORSOrigins = origins
			}
			log := newLogger(cfg.LogLevel)
			ln, err := net.Listen("tcp", cfg.Addr)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), ln, cfg, deps, log)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", os.Getenv("LLMAPI_ADDR"), "HTTP listen address (defaults LLMAPI_ADDR or "+config.DefaultAddr+")")
	cmd.Flags().StringVar(&defaultModel, "default-model", "", "Model to load at startup")
	cmd.Flags().StringVar(&corsOrigins, "cors-origins", os.Getenv("LLMAPI_CORS_ORIGINS"), "Comma-separated allowed CORS origins (default *)")
	return cmd
}

// splitCSV splits a comma-separated list, dropping blanks.
func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// app is the wired object graph behind the HTTP server.
type app struct {
	svc     *inference.Service
	handler http.Handler
}

// buildApp wires the runner, services and HTTP layer from cfg.
func buildApp(ctx context.Context, cfg config.Config, deps Deps, log zerolog.Logger) (*app, error) {
	r, err := deps.NewRunner(cfg.RunnerURL)
	if err != nil {
		return nil, err
	}
	r = runner.Instrument(r)

	svc := inference.New(r,
		inference.WithLogger(log.With().Str("component", "inference").Logger()),
		inference.WithPublisher(inference.LogPublisher{Logger: log.With().Str("component", "events").Logger()}),
	)

	trend := trending.New(
		trending.WithURL(cfg.TrendingURL),
		trending.WithLimit(cfg.TrendingLimit),
		trending.WithTimeout(time.Duration(cfg.TrendingTimeoutSeconds)*time.Second),
		trending.WithLogger(log.With().Str("component", "trending").Logger()),
	)

	ocr, err := buildIngestor(cfg, deps, r, log)
	if err != nil {
		return nil, err
	}

	httpapi.SetLogger(log.With().Str("component", "http").Logger())
	httpapi.SetMaxBodyBytes(cfg.MaxBodyBytes)
	httpapi.SetCORSOptions(true, cfg.CORSOrigins, nil, nil)
	httpapi.SetBaseContext(ctx)

	return &app{svc: svc, handler: httpapi.NewMux(svc, trend, ocr)}, nil
}

func buildIngestor(cfg config.Config, deps Deps, gen ingest.Generator, log zerolog.Logger) (*ingest.Ingestor, error) {
	det, err := ingest.ParseDetector(cfg.OCRAccelerator)
	if err != nil {
		return nil, err
	}
	var local ingest.Recognizer
	if deps.NewRecognizer != nil {
		local = deps.NewRecognizer(cfg.OCRLanguages)
	}
	return ingest.New(gen, local,
		ingest.WithModel(cfg.OCRModel),
		ingest.WithDetector(det),
		ingest.WithLogger(log.With().Str("component", "ingest").Logger()),
	), nil
}

// serve runs the API on ln until ctx is done, then shuts down gracefully.
func serve(ctx context.Context, ln net.Listener, cfg config.Config, deps Deps, log zerolog.Logger) error {
	a, err := buildApp(ctx, cfg, deps, log)
	if err != nil {
		ln.Close()
		return err
	}

	if cfg.DefaultModel != "" {
		// Pulls can take minutes; the API is usable meanwhile.
		go func() {
			if err := a.svc.Load(ctx, cfg.DefaultModel, nil); err != nil {
				log.Error().Err(err).Str("model", cfg.DefaultModel).Msg("default model load failed")
			}
		}()
	}

	srv := &http.Server{Handler: a.handler, ReadHeaderTimeout: 10 * time.Second}
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", ln.Addr().String()).Str("runner", cfg.RunnerURL).Msg("llmapi listening")
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown error")
		return err
	}
	log.Info().Msg("server stopped")
	return nil
}
