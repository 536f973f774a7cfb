package inference

import (
	"strings"

	"llmapi/internal/runner"
)

// Category is the heuristic classification of an installed model.
type Category string

const (
	CategoryLLM       Category = "LLM"
	CategoryEmbedding Category = "Embedding model"
	CategoryOCR       Category = "OCR model"
	CategoryAudio     Category = "Audio"
	CategoryOther     Category = "Other"
)

// Categories lists every category in display order.
var Categories = []Category{CategoryLLM, CategoryEmbedding, CategoryOCR, CategoryAudio, CategoryOther}

var (
	embeddingKeywords = []string{"embed", "bge-m3"}
	visionKeywords    = []string{"vision", "llava", "ocr", "clip"}
	audioKeywords     = []string{"whisper", "audio"}
	llmKeywords       = []string{"llama", "mistral", "gemma", "phi", "qwen", "coder", "deepseek"}
)

// Categorize classifies a model. Name keywords take precedence over the family
// tag, which takes precedence over the LLM keyword fallback.
func Categorize(d runner.Descriptor) Category {
	name := strings.ToLower(d.Name)
	switch {
	case containsAny(name, embeddingKeywords):
		return CategoryEmbedding
	case containsAny(name, visionKeywords):
		return CategoryOCR
	case containsAny(name, audioKeywords):
		return CategoryAudio
	}

	switch family := strings.ToLower(d.Family); {
	case family == "":
	case strings.Contains(family, "embed"), family == "bert", family == "nomic-bert":
		return CategoryEmbedding
	case family == "clip":
		return CategoryOCR
	case family == "whisper":
		return CategoryAudio
	}

	if containsAny(name, llmKeywords) {
		return CategoryLLM
	}
	return CategoryOther
}

func containsAny(s string, kws []string) bool {
	for _, kw := range kws {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// emptyCategories returns a map with every category present and empty.
func emptyCategories() map[Category][]string {
	out := make(map[Category][]string, len(Categories))
	for _, c := range Categories {
		out[c] = []string{}
	}
	return out
}
