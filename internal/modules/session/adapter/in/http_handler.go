package in

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	hclog "github.com/hashicorp/go-hclog"

	sessionin "studyclock/internal/modules/session/port/in"
	apperrors "studyclock/internal/platform/errors"
)

// HTTPHandler serves the read-only session API.
type HTTPHandler struct {
	usecase sessionin.Usecase
	log     hclog.Logger
}

func NewHTTPHandler(usecase sessionin.Usecase, log hclog.Logger) *HTTPHandler {
	return &HTTPHandler{usecase: usecase, log: log}
}

// Router mounts the API routes with request id, logging and recovery middleware.
func (h *HTTPHandler) Router() *chi.Mux {
	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger(h.log))
	r.Use(Recovery(h.log))

	r.Get("/health", h.Health)
	r.Route("/api", func(r chi.Router) {
		r.Get("/history", h.History)
		r.Get("/summary", h.Summary)
	})
	return r
}

func (h *HTTPHandler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// History handles GET /api/history, newest record first.
func (h *HTTPHandler) History(w http.ResponseWriter, r *http.Request) {
	records, err := h.usecase.History(r.Context())
	if err != nil {
		writeUsecaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"records": records})
}

// Summary handles GET /api/summary?date=YYYY-MM-DD; the date defaults to today.
func (h *HTTPHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.usecase.Summary(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		writeUsecaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func writeUsecaseError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperrors.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, apperrors.ErrNotFound), errors.Is(err, apperrors.ErrIndexOutOfRange):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
