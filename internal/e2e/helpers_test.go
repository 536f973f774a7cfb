package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"llmapi/internal/httpapi"
	"llmapi/internal/inference"
	"llmapi/internal/ingest"
	"llmapi/internal/runner"
	"llmapi/internal/trending"
)

// ollamaStub serves the runner endpoints from memory.
type ollamaStub struct {
	mu        sync.Mutex
	installed map[string]string // name -> family
	order     []string
	pulls     []string
	generate  []map[string]any
	failTags  bool
}

func newOllamaStub(models ...[2]string) *ollamaStub {
	s := &ollamaStub{installed: map[string]string{}}
	for _, m := range models {
		s.installed[m[0]] = m[1]
		s.order = append(s.order, m[0])
	}
	return s
}

func (s *ollamaStub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch r.URL.Path {
	case "/api/tags":
		if s.failTags {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = io.WriteString(w, `{"error":"runner exploded"}`)
			return
		}
		models := []map[string]any{}
		for _, n := range s.order {
			if fam, ok := s.installed[n]; ok {
				models = append(models, map[string]any{"name": n, "model": n, "details": map[string]any{"family": fam}})
			}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"models": models})
	case "/api/pull":
		var req struct {
			Model string `json:"model"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		s.pulls = append(s.pulls, req.Model)
		s.installed[req.Model] = "llama"
		s.order = append(s.order, req.Model)
		w.Header().Set("Content-Type", "application/x-ndjson")
		_, _ = io.WriteString(w, `{"status":"pulling manifest"}`+"\n")
		_, _ = io.WriteString(w, `{"status":"success"}`+"\n")
	case "/api/generate":
		var req map[string]any
		_ = json.NewDecoder(r.Body).Decode(&req)
		s.generate = append(s.generate, req)
		prompt, _ := req["prompt"].(string)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"model": req["model"], "response": "re: " + prompt, "done": true})
	case "/api/delete":
		var req struct {
			Model string `json:"model"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		if _, ok := s.installed[req.Model]; !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"error":"model not found"}`)
			return
		}
		delete(s.installed, req.Model)
	default:
		http.NotFound(w, r)
	}
}

func (s *ollamaStub) pullNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.pulls...)
}

func (s *ollamaStub) generateRequests() []map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]map[string]any(nil), s.generate...)
}

type fixedRecognizer string

func (f fixedRecognizer) Name() string { return "fixed" }
func (f fixedRecognizer) RecognizeFile(ctx context.Context, path string) (string, error) {
	return string(f), nil
}

// newServer wires the real runner client, service and HTTP layer against stub.
func newServer(t *testing.T, stub *ollamaStub, accelerated bool) (*httptest.Server, *inference.Service) {
	t.Helper()
	runnerSrv := httptest.NewServer(stub)
	t.Cleanup(runnerSrv.Close)

	o, err := runner.NewOllama(runnerSrv.URL)
	if err != nil {
		t.Fatalf("runner: %v", err)
	}
	r := runner.Instrument(o)
	svc := inference.New(r)
	ocr := ingest.New(r, fixedRecognizer("from tesseract"), ingest.WithDetector(ingest.Fixed(accelerated)))

	library := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `<html><body><a href="/library/qwen3">qwen3</a><a href="/library/gemma3">gemma3</a></body></html>`)
	}))
	t.Cleanup(library.Close)
	trend := trending.New(trending.WithURL(library.URL))

	srv := httptest.NewServer(httpapi.NewMux(svc, trend, ocr))
	t.Cleanup(srv.Close)
	return srv, svc
}

func postJSON(t *testing.T, url, body string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("post %s: %v", url, err)
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return resp, b
}

func getBody(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("get %s: %v", url, err)
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return resp, b
}

func ndjsonLines(b []byte) []string {
	return strings.Split(strings.TrimSpace(string(bytes.TrimSpace(b))), "\n")
}
