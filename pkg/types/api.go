package types

// RootResponse is returned by GET / as a liveness marker.
type RootResponse struct {
	// example: LLM Inference API is running
	Message string `json:"message" example:"LLM Inference API is running"`
}

// ModelsResponse is returned by GET /api/models.
type ModelsResponse struct {
	// Names of models installed in the runner.
	// example: ["llama3.2:latest","mistral:latest"]
	Models []string `json:"models"`
	// Installed model names bucketed by category.
	CategorizedModels map[string][]string `json:"categorized_models"`
	// Active model, or null when nothing is loaded.
	// example: llama3.2:latest
	CurrentModel *string `json:"current_model" example:"llama3.2:latest"`
}

// TrendingResponse is returned by GET /api/trending-models.
type TrendingResponse struct {
	// example: ["llama3.2","mistral"]
	Popular []string `json:"popular"`
}

// ModelRequest names a model for load and delete.
type ModelRequest struct {
	// example: llama3.2
	ModelName string `json:"model_name" validate:"required" example:"llama3.2"`
}

// StatusResponse is the outcome of a model operation. Status is "success" or "error".
type StatusResponse struct {
	// example: success
	Status string `json:"status" example:"success"`
	// example: Model llama3.2 loaded and ready.
	Message string `json:"message" example:"Model llama3.2 loaded and ready."`
}

// GenerateRequest is the payload of POST /api/generate.
type GenerateRequest struct {
	// Prompt text. An empty prompt is forwarded as-is.
	// example: Write a haiku about the ocean.
	Query string `json:"query" example:"Write a haiku about the ocean."`
	// Maximum number of tokens to generate. Defaults to 256; -1 means no limit.
	// example: 256
	MaxTokens *int `json:"max_tokens,omitempty" validate:"omitempty,min=-1" example:"256"`
	// Sampling temperature. Defaults to 0.7.
	// example: 0.7
	Temperature *float64 `json:"temperature,omitempty" validate:"omitempty,min=0,max=2" example:"0.7"`
}

// GenerateResponse carries the generated text.
type GenerateResponse struct {
	Response string `json:"response"`
}

// OCRResponse carries text recognized from an uploaded image.
type OCRResponse struct {
	Text string `json:"text"`
}

// PullProgress is one NDJSON record of a streamed model pull.
type PullProgress struct {
	// example: pulling manifest
	Status    string `json:"status" example:"pulling manifest"`
	Digest    string `json:"digest,omitempty"`
	Total     int64  `json:"total,omitempty"`
	Completed int64  `json:"completed,omitempty"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: invalid JSON body
	Error string `json:"error" example:"invalid JSON body"`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
}
