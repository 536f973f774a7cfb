package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"llmapi/internal/inference"
	"llmapi/internal/runner"
	"llmapi/pkg/types"
)

// handleRoot godoc
// @Summary  Liveness marker
// @Tags     meta
// @Produce  json
// @Success  200 {object} types.RootResponse
// @Router   / [get]
func (a *api) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, types.RootResponse{Message: "LLM Inference API is running"})
}

// handleListModels godoc
// @Summary  List installed models and the active model
// @Tags     models
// @Produce  json
// @Success  200 {object} types.ModelsResponse
// @Router   /api/models [get]
func (a *api) handleListModels(w http.ResponseWriter, r *http.Request) {
	inv := a.svc.Inventory(r.Context())
	resp := types.ModelsResponse{
		Models:            inv.Models,
		CategorizedModels: make(map[string][]string, len(inv.Categorized)),
	}
	for c, names := range inv.Categorized {
		resp.CategorizedModels[string(c)] = names
	}
	if inv.Current != "" {
		cur := inv.Current
		resp.CurrentModel = &cur
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleTrending godoc
// @Summary  Popular models from the public library
// @Tags     models
// @Produce  json
// @Success  200 {object} types.TrendingResponse
// @Router   /api/trending-models [get]
func (a *api) handleTrending(w http.ResponseWriter, r *http.Request) {
	if a.trending == nil {
		writeJSONError(w, http.StatusServiceUnavailable, "trending models unavailable")
		return
	}
	writeJSON(w, http.StatusOK, types.TrendingResponse{Popular: a.trending.Popular(r.Context())})
}

// handleLoad godoc
// @Summary      Load a model, pulling it first when it is not installed
// @Description  When a pull is needed the response is an NDJSON stream of pull
// @Description  progress records ending with a {status, message} record.
// @Tags         models
// @Accept       json
// @Produce      json
// @Produce      application/x-ndjson
// @Param        request body types.ModelRequest true "Model to load"
// @Success      200 {object} types.StatusResponse
// @Failure      400 {object} types.StatusResponse
// @Failure      502 {object} types.StatusResponse
// @Router       /api/models/load [post]
func (a *api) handleLoad(w http.ResponseWriter, r *http.Request) {
	var req types.ModelRequest
	if !a.decode(w, r, &req) {
		return
	}
	start := time.Now()
	ctx, cancel := joinContexts(serverBaseCtx, r.Context())
	defer cancel()

	var (
		streaming bool
		out       io.Writer = w
	)
	if requestLogLevel(r) >= LevelDebug {
		out = io.MultiWriter(w, &loggingLineWriter{log: requestLogger(r)})
	}
	enc := json.NewEncoder(out)
	flush := func() {
		if f, ok := w.(http.Flusher); ok {
			f.Flush()
		}
	}
	progress := func(p runner.Progress) error {
		if !streaming {
			w.Header().Set("Content-Type", "application/x-ndjson")
			w.WriteHeader(http.StatusOK)
			streaming = true
		}
		if err := enc.Encode(types.PullProgress{Status: p.Status, Digest: p.Digest, Total: p.Total, Completed: p.Completed}); err != nil {
			return err
		}
		pullRecordsTotal.Inc()
		flush()
		return nil
	}

	err := a.svc.Load(ctx, req.ModelName, progress)
	status := http.StatusOK
	if err != nil {
		status = statusFor(err)
	}
	logEnd(r, "load", status, start, err)

	final := types.StatusResponse{Status: "success", Message: fmt.Sprintf("Model %s loaded and ready.", req.ModelName)}
	if err != nil {
		final = types.StatusResponse{Status: "error", Message: err.Error()}
	}
	if streaming {
		// Headers are gone; the outcome travels as the last record.
		_ = enc.Encode(final)
		flush()
		return
	}
	writeJSON(w, status, final)
}

// handleUnload godoc
// @Summary  Unload the active model
// @Tags     models
// @Produce  json
// @Success  200 {object} types.StatusResponse
// @Router   /api/models/unload [post]
func (a *api) handleUnload(w http.ResponseWriter, r *http.Request) {
	a.svc.Unload(r.Context())
	writeStatus(w, http.StatusOK, "success", "Model unloaded.")
}

// handleDelete godoc
// @Summary  Delete an installed model
// @Tags     models
// @Accept   json
// @Produce  json
// @Param    request body types.ModelRequest true "Model to delete"
// @Success  200 {object} types.StatusResponse
// @Failure  400 {object} types.StatusResponse
// @Failure  502 {object} types.StatusResponse
// @Router   /api/models/delete [post]
func (a *api) handleDelete(w http.ResponseWriter, r *http.Request) {
	var req types.ModelRequest
	if !a.decode(w, r, &req) {
		return
	}
	start := time.Now()
	if err := a.svc.Delete(r.Context(), req.ModelName); err != nil {
		status := statusFor(err)
		logEnd(r, "delete", status, start, err)
		writeStatus(w, status, "error", err.Error())
		return
	}
	logEnd(r, "delete", http.StatusOK, start, nil)
	writeStatus(w, http.StatusOK, "success", fmt.Sprintf("Model %s deleted successfully.", req.ModelName))
}

// decode reads a JSON request body into dst, writing the error response
// itself when decoding or validation fails. Model operations answer with the
// {status, message} shape.
func (a *api) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	err := decodeJSON(w, r, dst)
	if err == nil {
		return true
	}
	if errors.Is(err, errUnsupportedMediaType) {
		writeStatus(w, http.StatusUnsupportedMediaType, "error", err.Error())
		return false
	}
	writeStatus(w, http.StatusBadRequest, "error", err.Error())
	return false
}

var _ Service = (*inference.Service)(nil)
