package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"llmapi/internal/config"
	"llmapi/internal/ingest"
	"llmapi/internal/runner"
)

// memRunner is an in-memory runner.Runner.
type memRunner struct {
	mu        sync.Mutex
	installed []runner.Descriptor
	pulled    []string
	deleteErr error
	url       string
}

func (m *memRunner) List(ctx context.Context) ([]runner.Descriptor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]runner.Descriptor(nil), m.installed...), nil
}

func (m *memRunner) Pull(ctx context.Context, name string, fn runner.ProgressFunc) error {
	m.mu.Lock()
	m.pulled = append(m.pulled, name)
	m.installed = append(m.installed, runner.Descriptor{Name: name})
	m.mu.Unlock()
	if fn != nil {
		if err := fn(runner.Progress{Status: "pulling manifest"}); err != nil {
			return err
		}
		return fn(runner.Progress{Status: "downloading", Total: 10, Completed: 10})
	}
	return nil
}

func (m *memRunner) Generate(ctx context.Context, req runner.GenerateRequest) (string, error) {
	return "generated", nil
}

func (m *memRunner) Delete(ctx context.Context, name string) error { return m.deleteErr }

func (m *memRunner) Unload(ctx context.Context, name string) error { return nil }

func (m *memRunner) pulledNames() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.pulled...)
}

type stubRecognizer struct{ text string }

func (s stubRecognizer) Name() string { return "stub" }
func (s stubRecognizer) RecognizeFile(ctx context.Context, path string) (string, error) {
	return s.text, nil
}

func testDeps(r *memRunner) Deps {
	return Deps{
		NewRunner: func(u string) (runner.Runner, error) {
			r.url = u
			return r, nil
		},
		NewRecognizer: func([]string) ingest.Recognizer { return stubRecognizer{text: "local text"} },
	}
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"OLLAMA_HOST", "LLMAPI_ADDR", "LLMAPI_CONFIG", "LLMAPI_LOG_LEVEL", "LLMAPI_CORS_ORIGINS"} {
		t.Setenv(k, "")
	}
}

func run(t *testing.T, deps Deps, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(deps)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRunnerURLFromEnv(t *testing.T) {
	t.Setenv("OLLAMA_HOST", "")
	assert.Equal(t, "", runnerURLFromEnv())
	t.Setenv("OLLAMA_HOST", "10.0.0.2:11434")
	assert.Equal(t, "http://10.0.0.2:11434", runnerURLFromEnv())
	t.Setenv("OLLAMA_HOST", "https://runner.local")
	assert.Equal(t, "https://runner.local", runnerURLFromEnv())
}

func TestResolve_FileThenFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "llmapi.yaml")
	require.NoError(t, os.WriteFile(path, []byte("runner_url: http://file:11434\nlog_level: debug\ntrending_limit: 3\n"), 0o644))

	cfg, err := (&options{configPath: path}).resolve()
	require.NoError(t, err)
	assert.Equal(t, "http://file:11434", cfg.RunnerURL)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 3, cfg.TrendingLimit)
	assert.Equal(t, config.DefaultAddr, cfg.Addr)

	cfg, err = (&options{configPath: path, runnerURL: "http://flag:1"}).resolve()
	require.NoError(t, err)
	assert.Equal(t, "http://flag:1", cfg.RunnerURL)
}

func TestResolve_Invalid(t *testing.T) {
	_, err := (&options{runnerURL: "not a url"}).resolve()
	require.Error(t, err)

	_, err = (&options{configPath: filepath.Join(t.TempDir(), "missing.toml")}).resolve()
	require.Error(t, err)
}

func TestModelsList(t *testing.T) {
	clearEnv(t)
	r := &memRunner{installed: []runner.Descriptor{{Name: "llama3.2:latest"}, {Name: "nomic-embed-text:latest"}}}
	out, err := run(t, testDeps(r), "models", "list", "--runner-url", "http://runner:11434")
	require.NoError(t, err)
	assert.Equal(t, "llama3.2:latest\nnomic-embed-text:latest\n", out)
	assert.Equal(t, "http://runner:11434", r.url)
}

func TestModelsCategorized(t *testing.T) {
	clearEnv(t)
	r := &memRunner{installed: []runner.Descriptor{{Name: "nomic-embed-text:latest"}}}
	out, err := run(t, testDeps(r), "models", "categorized")
	require.NoError(t, err)
	assert.Contains(t, out, `"Embedding model": [`)
	assert.Contains(t, out, `"Audio": []`)
}

func TestModelsPull(t *testing.T) {
	clearEnv(t)
	r := &memRunner{}
	out, err := run(t, testDeps(r), "models", "pull", "llama3.2")
	require.NoError(t, err)
	assert.Equal(t, []string{"llama3.2"}, r.pulledNames())
	assert.Equal(t, "pulling manifest\ndownloading 10/10\n", out)
}

func TestModelsDelete(t *testing.T) {
	clearEnv(t)
	out, err := run(t, testDeps(&memRunner{}), "models", "delete", "mistral")
	require.NoError(t, err)
	assert.Equal(t, "Model mistral deleted successfully.\n", out)

	_, err = run(t, testDeps(&memRunner{deleteErr: errors.New("not found")}), "models", "rm", "mistral")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestModelsRequiresSubcommand(t *testing.T) {
	clearEnv(t)
	_, err := run(t, testDeps(&memRunner{}), "models")
	require.Error(t, err)
}

func TestOCR_LocalFallback(t *testing.T) {
	clearEnv(t)
	img := filepath.Join(t.TempDir(), "scan.png")
	require.NoError(t, os.WriteFile(img, []byte("png"), 0o600))
	out, err := run(t, testDeps(&memRunner{}), "ocr", img, "--accelerator", "off")
	require.NoError(t, err)
	assert.Equal(t, "local text\n", out)

	out, err = run(t, testDeps(&memRunner{}), "ocr", img, "--accelerator", "on")
	require.NoError(t, err)
	assert.Equal(t, "generated\n", out)
}

func TestOCR_MissingImage(t *testing.T) {
	clearEnv(t)
	_, err := run(t, testDeps(&memRunner{}), "ocr", filepath.Join(t.TempDir(), "nope.png"))
	require.Error(t, err)
}

func TestCompletionBash(t *testing.T) {
	clearEnv(t)
	out, err := run(t, testDeps(&memRunner{}), "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "llmapi")
}

func TestServe_ServesAndLoadsDefaultModel(t *testing.T) {
	r := &memRunner{}
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	cfg := config.Config{RunnerURL: "http://runner:11434", DefaultModel: "llama3.2"}.WithDefaults()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, ln, cfg, testDeps(r), zerolog.Nop()) }()

	base := "http://" + ln.Addr().String()
	require.Eventually(t, func() bool {
		resp, err := http.Get(base + "/healthz")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	require.Eventually(t, func() bool {
		resp, err := http.Get(base + "/api/models")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		return bytes.Contains(body, []byte(`"current_model":"llama3.2"`))
	}, 2*time.Second, 20*time.Millisecond)
	assert.Equal(t, []string{"llama3.2"}, r.pulledNames())

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("serve did not stop")
	}
}
