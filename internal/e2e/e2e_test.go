package e2e

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"strings"
	"testing"

	"llmapi/pkg/types"
)

func TestE2E_LoadGenerateDelete(t *testing.T) {
	stub := newOllamaStub([2]string{"mistral:latest", "llama"}, [2]string{"nomic-embed-text:latest", "nomic-bert"})
	srv, svc := newServer(t, stub, false)

	// generate before any load is an invalid-state error
	resp, body := postJSON(t, srv.URL+"/api/generate", `{"query":"hi","max_tokens":10,"temperature":0.1}`)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d %s", resp.StatusCode, body)
	}
	if len(stub.generateRequests()) != 0 {
		t.Fatal("runner must not be called without an active model")
	}

	// load pulls a missing model exactly once
	resp, body = postJSON(t, srv.URL+"/api/models/load", `{"model_name":"llama3.2"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("load: %d %s", resp.StatusCode, body)
	}
	lines := ndjsonLines(body)
	var final types.StatusResponse
	if err := json.Unmarshal([]byte(lines[len(lines)-1]), &final); err != nil || final.Status != "success" {
		t.Fatalf("final record %q: %v", lines[len(lines)-1], err)
	}
	if got := stub.pullNames(); len(got) != 1 || got[0] != "llama3.2" {
		t.Fatalf("pulls=%v", got)
	}
	if svc.Current() != "llama3.2" {
		t.Fatalf("current=%q", svc.Current())
	}

	// loading it again is a no-op
	resp, _ = postJSON(t, srv.URL+"/api/models/load", `{"model_name":"llama3.2"}`)
	if resp.StatusCode != http.StatusOK || len(stub.pullNames()) != 1 {
		t.Fatalf("reload should not pull: status=%d pulls=%v", resp.StatusCode, stub.pullNames())
	}

	resp, body = postJSON(t, srv.URL+"/api/generate", `{"query":"hi","max_tokens":10,"temperature":0.1}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("generate: %d %s", resp.StatusCode, body)
	}
	var gen types.GenerateResponse
	_ = json.Unmarshal(body, &gen)
	if gen.Response != "re: hi" {
		t.Fatalf("response=%q", gen.Response)
	}
	reqs := stub.generateRequests()
	opts, _ := reqs[0]["options"].(map[string]any)
	if reqs[0]["model"] != "llama3.2" || opts["num_predict"] != float64(10) || opts["temperature"] != 0.1 {
		t.Fatalf("runner request=%v", reqs[0])
	}

	// deleting another model keeps the active one
	resp, _ = postJSON(t, srv.URL+"/api/models/delete", `{"model_name":"mistral:latest"}`)
	if resp.StatusCode != http.StatusOK || svc.Current() != "llama3.2" {
		t.Fatalf("delete other: status=%d current=%q", resp.StatusCode, svc.Current())
	}
	// deleting the active model clears it
	resp, _ = postJSON(t, srv.URL+"/api/models/delete", `{"model_name":"llama3.2"}`)
	if resp.StatusCode != http.StatusOK || svc.Current() != "" {
		t.Fatalf("delete active: status=%d current=%q", resp.StatusCode, svc.Current())
	}
}

func TestE2E_ListingAndCategories(t *testing.T) {
	stub := newOllamaStub(
		[2]string{"mistral:latest", "llama"},
		[2]string{"nomic-embed-text:latest", "nomic-bert"},
		[2]string{"llava:7b", "llama"},
		[2]string{"whisper:small", "whisper"},
		[2]string{"mystery:1b", "unknown"},
	)
	srv, _ := newServer(t, stub, false)

	resp, body := getBody(t, srv.URL+"/api/models")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status=%d", resp.StatusCode)
	}
	var mr types.ModelsResponse
	if err := json.Unmarshal(body, &mr); err != nil {
		t.Fatalf("json: %v", err)
	}
	want := map[string]string{
		"mistral:latest":          "LLM",
		"nomic-embed-text:latest": "Embedding model",
		"llava:7b":                "OCR model",
		"whisper:small":           "Audio",
		"mystery:1b":              "Other",
	}
	for name, cat := range want {
		found := false
		for _, n := range mr.CategorizedModels[cat] {
			found = found || n == name
		}
		if !found {
			t.Fatalf("%s not under %s: %v", name, cat, mr.CategorizedModels)
		}
	}
}

func TestE2E_ListingDegradesOnRunnerFailure(t *testing.T) {
	stub := newOllamaStub()
	stub.failTags = true
	srv, _ := newServer(t, stub, false)

	resp, body := getBody(t, srv.URL+"/api/models")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status=%d", resp.StatusCode)
	}
	var mr types.ModelsResponse
	if err := json.Unmarshal(body, &mr); err != nil {
		t.Fatalf("json: %v", err)
	}
	if len(mr.Models) != 0 || len(mr.CategorizedModels) != 5 {
		t.Fatalf("unexpected degraded body: %s", body)
	}
	for cat, names := range mr.CategorizedModels {
		if len(names) != 0 {
			t.Fatalf("%s should be empty: %v", cat, names)
		}
	}
}

func TestE2E_Trending(t *testing.T) {
	srv, _ := newServer(t, newOllamaStub(), false)
	_, body := getBody(t, srv.URL+"/api/trending-models")
	var tr types.TrendingResponse
	_ = json.Unmarshal(body, &tr)
	if strings.Join(tr.Popular, ",") != "qwen3,gemma3" {
		t.Fatalf("popular=%v", tr.Popular)
	}
}

func TestE2E_OCR(t *testing.T) {
	for _, tc := range []struct {
		name        string
		accelerated bool
		want        string
	}{
		{"runner", true, "re: " + "Extract all text from this image exactly as it appears. Do not add any additional comments or formatting."},
		{"local", false, "from tesseract"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			stub := newOllamaStub()
			srv, _ := newServer(t, stub, tc.accelerated)

			var buf bytes.Buffer
			mw := multipart.NewWriter(&buf)
			fw, _ := mw.CreateFormFile("image", "page.jpg")
			_, _ = fw.Write([]byte("jpeg"))
			_ = mw.Close()
			resp, err := http.Post(srv.URL+"/api/ocr", mw.FormDataContentType(), &buf)
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()
			var or types.OCRResponse
			_ = json.NewDecoder(resp.Body).Decode(&or)
			if or.Text != tc.want {
				t.Fatalf("text=%q", or.Text)
			}
			if tc.accelerated {
				reqs := stub.generateRequests()
				if len(reqs) != 1 || reqs[0]["model"] != "glm-ocr" {
					t.Fatalf("runner requests=%v", reqs)
				}
				if imgs, _ := reqs[0]["images"].([]any); len(imgs) != 1 {
					t.Fatalf("expected one image, got %v", reqs[0]["images"])
				}
			}
		})
	}
}
