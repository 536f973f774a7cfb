package httpapi

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"llmapi/internal/common/fsutil"
	"llmapi/internal/inference"
	"llmapi/pkg/types"
)

// handleGenerate godoc
// @Summary  Generate text with the active model
// @Tags     inference
// @Accept   json
// @Produce  json
// @Param    request body types.GenerateRequest true "Prompt and sampling options"
// @Success  200 {object} types.GenerateResponse
// @Failure  400 {object} types.ErrorResponse
// @Failure  409 {object} types.ErrorResponse "no model is currently loaded"
// @Failure  502 {object} types.ErrorResponse
// @Router   /api/generate [post]
func (a *api) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req types.GenerateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		if errors.Is(err, errUnsupportedMediaType) {
			writeJSONError(w, http.StatusUnsupportedMediaType, err.Error())
			return
		}
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	maxTokens := inference.DefaultMaxTokens
	if req.MaxTokens != nil {
		maxTokens = *req.MaxTokens
	}
	temperature := inference.DefaultTemperature
	if req.Temperature != nil {
		temperature = *req.Temperature
	}

	start := time.Now()
	ctx, cancel := joinContexts(serverBaseCtx, r.Context())
	defer cancel()
	text, err := a.svc.Generate(ctx, req.Query, maxTokens, temperature)
	if err != nil {
		if r.Context().Err() != nil {
			return
		}
		status := statusFor(err)
		logEnd(r, "generate", status, start, err)
		writeJSONError(w, status, err.Error())
		return
	}
	logEnd(r, "generate", http.StatusOK, start, nil)
	writeJSON(w, http.StatusOK, types.GenerateResponse{Response: text})
}

// handleOCR godoc
// @Summary  Extract text from an uploaded image
// @Tags     inference
// @Accept   mpfd
// @Produce  json
// @Param    image formData file true "Image file"
// @Success  200 {object} types.OCRResponse
// @Failure  400 {object} types.ErrorResponse
// @Router   /api/ocr [post]
func (a *api) handleOCR(w http.ResponseWriter, r *http.Request) {
	if a.ocr == nil {
		writeJSONError(w, http.StatusServiceUnavailable, "OCR unavailable")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(8 << 20); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid multipart body")
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()
	file, hdr, err := r.FormFile("image")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "image file is required")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(hdr.Filename))
	path := filepath.Join(os.TempDir(), "llmapi-ocr-"+uuid.NewString()+ext)
	if err := fsutil.WriteNew(path, file); err != nil {
		l := requestLogger(r)
		l.Error().Err(err).Msg("store upload")
		writeJSONError(w, http.StatusInternalServerError, "failed to store upload")
		return
	}
	defer os.Remove(path)

	start := time.Now()
	text := a.ocr.PerformOCR(r.Context(), path)
	logEnd(r, "ocr", http.StatusOK, start, nil)
	writeJSON(w, http.StatusOK, types.OCRResponse{Text: text})
}
