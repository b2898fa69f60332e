package metrics

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/aristath/trading-dashboard/internal/domain"
	"github.com/aristath/trading-dashboard/internal/modules/summary"
)

// Handler serves computed performance reports
type Handler struct {
	service *Service
	log     zerolog.Logger
}

// NewHandler creates a new metrics handler
func NewHandler(service *Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "metrics").Logger(),
	}
}

// HandleGetReport returns the full report for a granularity and
// filter. No matching records is a 200 with an explicit empty flag,
// so the dashboard can show its empty state instead of zeros.
func (h *Handler) HandleGetReport(w http.ResponseWriter, r *http.Request) {
	kind, err := domain.ParsePeriodKind(chi.URLParam(r, "kind"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	filter, err := summary.FilterFromQuery(r.URL.Query())
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	report, err := h.service.Report(kind, filter)
	if err != nil {
		h.writeComputeError(w, err)
		return
	}

	if report == nil {
		h.writeJSON(w, http.StatusOK, map[string]interface{}{
			"kind":  kind,
			"empty": true,
		})
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"kind":   kind,
		"empty":  false,
		"report": report,
	})
}

func (h *Handler) writeComputeError(w http.ResponseWriter, err error) {
	var dataErr *domain.DataError
	var srcErr *domain.SourceUnavailableError

	switch {
	case errors.As(err, &dataErr):
		h.log.Warn().Err(err).Msg("Report aborted on untrusted row")
		h.writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.As(err, &srcErr):
		h.log.Error().Err(err).Msg("Summary source unavailable")
		h.writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		h.writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// writeJSON writes a JSON response
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// writeError writes an error response
func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
