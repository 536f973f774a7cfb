package runner

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ollama/ollama/api"
)

// Ollama implements Runner on top of the Ollama HTTP API client.
type Ollama struct {
	client *api.Client
}

var _ Runner = (*Ollama)(nil)

// NewOllama constructs a runner client for the given base URL, e.g. http://127.0.0.1:11434.
func NewOllama(baseURL string) (*Ollama, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse runner url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("runner url must be absolute: %q", baseURL)
	}
	tr := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	// No client timeout: pulls stream for as long as the download takes.
	return &Ollama{client: api.NewClient(u, &http.Client{Transport: tr})}, nil
}

func (o *Ollama) List(ctx context.Context) ([]Descriptor, error) {
	resp, err := o.client.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list models: %w", err)
	}
	return describeAll(resp.Models), nil
}

func (o *Ollama) Pull(ctx context.Context, name string, fn ProgressFunc) error {
	req := &api.PullRequest{Model: name}
	err := o.client.Pull(ctx, req, func(p api.ProgressResponse) error {
		if fn == nil {
			return nil
		}
		return fn(Progress{Status: p.Status, Digest: p.Digest, Total: p.Total, Completed: p.Completed})
	})
	if err != nil {
		return fmt.Errorf("pull %s: %w", name, err)
	}
	return nil
}

func (o *Ollama) Generate(ctx context.Context, r GenerateRequest) (string, error) {
	stream := false
	req := &api.GenerateRequest{
		Model:  r.Model,
		Prompt: r.Prompt,
		Stream: &stream,
		Options: map[string]interface{}{
			"num_predict": r.MaxTokens,
			"temperature": r.Temperature,
		},
	}
	for _, img := range r.Images {
		req.Images = append(req.Images, api.ImageData(img))
	}
	var b strings.Builder
	err := o.client.Generate(ctx, req, func(resp api.GenerateResponse) error {
		b.WriteString(resp.Response)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("generate with %s: %w", r.Model, err)
	}
	return b.String(), nil
}

func (o *Ollama) Delete(ctx context.Context, name string) error {
	if err := o.client.Delete(ctx, &api.DeleteRequest{Model: name}); err != nil {
		return fmt.Errorf("delete %s: %w", name, err)
	}
	return nil
}

func (o *Ollama) Unload(ctx context.Context, name string) error {
	stream := false
	req := &api.GenerateRequest{
		Model:     name,
		Stream:    &stream,
		KeepAlive: &api.Duration{Duration: 0},
	}
	if err := o.client.Generate(ctx, req, func(api.GenerateResponse) error { return nil }); err != nil {
		return fmt.Errorf("unload %s: %w", name, err)
	}
	return nil
}
