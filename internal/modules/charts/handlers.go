package charts

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/aristath/trading-dashboard/internal/domain"
	"github.com/aristath/trading-dashboard/internal/modules/summary"
)

// Handler serves chart data endpoints
type Handler struct {
	service *Service
	log     zerolog.Logger
}

// NewHandler creates a new charts handler
func NewHandler(service *Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "charts").Logger(),
	}
}

// HandleGetEquity returns the equity curve chart
func (h *Handler) HandleGetEquity(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func(kind domain.PeriodKind, filter summary.Filter) (any, error) {
		curve, err := h.service.EquityCurve(kind, filter)
		if curve == nil {
			return nil, err
		}
		return curve, err
	})
}

// HandleGetDistribution returns the profit distribution histogram
func (h *Handler) HandleGetDistribution(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func(kind domain.PeriodKind, filter summary.Filter) (any, error) {
		bins, err := h.service.Distribution(kind, filter)
		if bins == nil {
			return nil, err
		}
		return bins, err
	})
}

// HandleGetPerformance returns gains-vs-losses and per-period bars
func (h *Handler) HandleGetPerformance(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func(kind domain.PeriodKind, filter summary.Filter) (any, error) {
		perf, err := h.service.Performance(kind, filter)
		if perf == nil {
			return nil, err
		}
		return perf, err
	})
}

func (h *Handler) serve(w http.ResponseWriter, r *http.Request, load func(domain.PeriodKind, summary.Filter) (any, error)) {
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

	data, err := load(kind, filter)
	if err != nil {
		h.writeChartError(w, err)
		return
	}

	if data == nil {
		h.writeJSON(w, http.StatusOK, map[string]interface{}{
			"kind":  kind,
			"empty": true,
		})
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"kind":  kind,
		"empty": false,
		"chart": data,
	})
}

func (h *Handler) writeChartError(w http.ResponseWriter, err error) {
	var dataErr *domain.DataError
	var srcErr *domain.SourceUnavailableError

	switch {
	case errors.As(err, &dataErr):
		h.writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.As(err, &srcErr):
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
