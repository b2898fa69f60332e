package summary

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/aristath/trading-dashboard/internal/domain"
)

// Handler serves the filtered record table
type Handler struct {
	source Source
	log    zerolog.Logger
}

// NewHandler creates a new summary handler
func NewHandler(source Source, log zerolog.Logger) *Handler {
	return &Handler{
		source: source,
		log:    log.With().Str("handler", "summary").Logger(),
	}
}

// HandleGetRecords returns the filtered records for a granularity,
// most recent first for daily and yearly tables, the order the
// dashboard history table displays them in.
func (h *Handler) HandleGetRecords(w http.ResponseWriter, r *http.Request) {
	kind, err := domain.ParsePeriodKind(chi.URLParam(r, "kind"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	filter, err := FilterFromQuery(r.URL.Query())
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	records, err := h.source.Load(kind)
	if err != nil {
		h.writeLoadError(w, err)
		return
	}
	records = filter.Apply(records)

	switch kind {
	case domain.KindDaily:
		sort.SliceStable(records, func(i, j int) bool { return records[i].Date.After(records[j].Date) })
	case domain.KindYearly:
		sort.SliceStable(records, func(i, j int) bool { return records[i].Year > records[j].Year })
	}

	keys := make([]string, len(records))
	for i, rec := range records {
		keys[i] = rec.Key(kind)
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"kind":        kind,
		"count":       len(records),
		"period_keys": keys,
		"records":     records,
	})
}

// writeLoadError maps loader failures onto HTTP statuses: bad rows are
// the client's data problem, storage failures are ours.
func (h *Handler) writeLoadError(w http.ResponseWriter, err error) {
	var dataErr *domain.DataError
	var srcErr *domain.SourceUnavailableError

	switch {
	case errors.As(err, &dataErr):
		h.log.Warn().Err(err).Msg("Untrusted summary row")
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
