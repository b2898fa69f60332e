package export

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/trading-dashboard/internal/events"
)

func newTestRouter(source *fakeSource) *chi.Mux {
	log := zerolog.Nop()
	handler := NewHandler(newTestExport(source), events.NewManager(log), log)
	router := chi.NewRouter()
	router.Get("/summary/{kind}/export", handler.HandleExportCSV)
	return router
}

func doRequest(t *testing.T, router *chi.Mux, url string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandleExportCSV(t *testing.T) {
	rec := doRequest(t, newTestRouter(dailySource(100, -50)), "/summary/daily/export")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="trading_daily_20240315.csv"`, rec.Header().Get("Content-Disposition"))

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "PERIOD,NET PROFIT,TOTAL TRADES,GAINS,LOSSES,CAPITAL,PEAK,DRAWDOWN", strings.TrimSpace(lines[0]))

	// Parsing the download back reproduces the profit values
	var parsed []Row
	require.NoError(t, gocsv.UnmarshalBytes(rec.Body.Bytes(), &parsed))
	require.Len(t, parsed, 2)
	assert.Equal(t, "01/03/2024", parsed[0].Period)
	assert.Equal(t, 100.0, parsed[0].NetProfit)
	assert.Equal(t, -50.0, parsed[1].NetProfit)
	assert.Equal(t, -50.0, parsed[1].Drawdown)
}

func TestHandleExportCSVNoData(t *testing.T) {
	rec := doRequest(t, newTestRouter(&fakeSource{}), "/summary/daily/export")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleExportCSVUnknownKind(t *testing.T) {
	rec := doRequest(t, newTestRouter(&fakeSource{}), "/summary/weekly/export")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleExportCSVBadFilter(t *testing.T) {
	rec := doRequest(t, newTestRouter(&fakeSource{}), "/summary/daily/export?sign=flat")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
