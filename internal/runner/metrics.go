package runner

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	runnerRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "llmapi",
			Subsystem: "runner",
			Name:      "requests_total",
			Help:      "Total number of calls made to the model runner",
		},
		[]string{"op", "result"},
	)

	runnerRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "llmapi",
			Subsystem: "runner",
			Name:      "request_duration_seconds",
			Help:      "Duration of model runner calls in seconds",
			Buckets:   []float64{.01, .05, .1, .5, 1, 2.5, 5, 10, 30, 60, 300, 1800},
		},
		[]string{"op"},
	)
)

func init() {
	prometheus.MustRegister(runnerRequestsTotal, runnerRequestDuration)
}

// instrumented records call counts and latency for every Runner operation.
type instrumented struct {
	next Runner
}

// Instrument wraps r with Prometheus metrics.
func Instrument(r Runner) Runner { return instrumented{next: r} }

func observe(op string, start time.Time, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	runnerRequestsTotal.WithLabelValues(op, result).Inc()
	runnerRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

func (i instrumented) List(ctx context.Context) (ds []Descriptor, err error) {
	start := time.Now()
	defer func() { observe("list", start, err) }()
	return i.next.List(ctx)
}

func (i instrumented) Pull(ctx context.Context, name string, fn ProgressFunc) (err error) {
	start := time.Now()
	defer func() { observe("pull", start, err) }()
	return i.next.Pull(ctx, name, fn)
}

func (i instrumented) Generate(ctx context.Context, req GenerateRequest) (text string, err error) {
	start := time.Now()
	defer func() { observe("generate", start, err) }()
	return i.next.Generate(ctx, req)
}

func (i instrumented) Delete(ctx context.Context, name string) (err error) {
	start := time.Now()
	defer func() { observe("delete", start, err) }()
	return i.next.Delete(ctx, name)
}

func (i instrumented) Unload(ctx context.Context, name string) (err error) {
	start := time.Now()
	defer func() { observe("unload", start, err) }()
	return i.next.Unload(ctx, name)
}
