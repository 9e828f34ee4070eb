package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/joseph-ayodele/legal-docify/internal/common"
)

type httpHandler struct {
	svc        *Service
	maxPayload int64
	logger     *slog.Logger
}

// NewRouter serves POST /process-docs with a JSON array of documents and
// GET /healthz.
func NewRouter(svc *Service, maxPayload int64, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	h := &httpHandler{svc: svc, maxPayload: maxPayload, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	r.Post("/process-docs", h.processDocs)
	return r
}

type errorBody struct {
	Detail string `json:"detail"`
}

func (h *httpHandler) processDocs(w http.ResponseWriter, r *http.Request) {
	ctx := common.WithRequestID(r.Context(), middleware.GetReqID(r.Context()))

	body := r.Body
	if h.maxPayload > 0 {
		body = http.MaxBytesReader(w, r.Body, h.maxPayload)
	}

	docs, err := DecodeDocuments(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.writeJSON(w, http.StatusRequestEntityTooLarge, errorBody{Detail: fmt.Sprintf("payload exceeds %d bytes", tooLarge.Limit)})
			return
		}
		appErr := common.NewAppError("INVALID_PAYLOAD", "invalid JSON payload", err)
		h.writeJSON(w, common.HTTPStatus(appErr), errorBody{Detail: appErr.Error()})
		return
	}

	res, err := h.svc.ProcessDocuments(ctx, docs)
	if err != nil {
		h.writeJSON(w, common.HTTPStatus(err), errorBody{Detail: err.Error()})
		return
	}
	h.writeJSON(w, http.StatusOK, res)
}

func (h *httpHandler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Warn("http.write_error", "error", err)
	}
}
