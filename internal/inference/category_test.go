package inference

import (
	"testing"

	"llmapi/internal/runner"
)

func TestCategorize(t *testing.T) {
	cases := []struct {
		name   string
		family string
		want   Category
	}{
		{"nomic-embed-text", "llama", CategoryEmbedding},
		{"llama-embed", "", CategoryEmbedding},
		{"BGE-M3", "", CategoryEmbedding},
		{"llava", "llama", CategoryOCR},
		{"llama3.2-vision", "mllama", CategoryOCR},
		{"glm-ocr", "", CategoryOCR},
		{"whisper", "", CategoryAudio},
		{"my-audio-model", "", CategoryAudio},
		{"all-minilm", "bert", CategoryEmbedding},
		{"granite", "nomic-bert", CategoryEmbedding},
		{"snowflake", "snowflake-embed", CategoryEmbedding},
		{"siglip", "clip", CategoryOCR},
		{"distil", "whisper", CategoryAudio},
		{"mistral:7b", "", CategoryLLM},
		{"deepseek-r1", "qwen2", CategoryLLM},
		{"qwen2.5:0.5b", "", CategoryLLM},
		{"starcoder2", "starcoder2", CategoryLLM},
		{"unknown", "", CategoryOther},
		{"unknown", "gptneox", CategoryOther},
	}
	for _, c := range cases {
		got := Categorize(runner.Descriptor{Name: c.name, Family: c.family})
		if got != c.want {
			t.Fatalf("Categorize(%q, %q) = %q, want %q", c.name, c.family, got, c.want)
		}
	}
}
