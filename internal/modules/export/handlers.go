package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog"

	"github.com/aristath/trading-dashboard/internal/domain"
	"github.com/aristath/trading-dashboard/internal/events"
	"github.com/aristath/trading-dashboard/internal/modules/summary"
)

// Handler serves CSV downloads
type Handler struct {
	service *Service
	events  *events.Manager
	log     zerolog.Logger
}

// NewHandler creates a new export handler
func NewHandler(service *Service, eventManager *events.Manager, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		events:  eventManager,
		log:     log.With().Str("handler", "export").Logger(),
	}
}

// HandleExportCSV streams the filtered table as a UTF-8 CSV attachment
func (h *Handler) HandleExportCSV(w http.ResponseWriter, r *http.Request) {
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

	rows, filename, err := h.service.Build(kind, filter)
	if err != nil {
		h.writeExportError(w, err)
		return
	}
	if rows == nil {
		h.writeError(w, http.StatusNotFound, fmt.Sprintf("no records for %s with the given filter", kind))
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := gocsv.Marshal(&rows, w); err != nil {
		h.log.Error().Err(err).Str("filename", filename).Msg("Failed to write CSV")
		return
	}

	h.events.Emit(events.ExportGenerated, "export", map[string]interface{}{
		"filename": filename,
		"rows":     len(rows),
	})
}

func (h *Handler) writeExportError(w http.ResponseWriter, err error) {
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

// writeError writes an error response
func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(map[string]string{"error": message}); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
