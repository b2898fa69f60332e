package metrics

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/trading-dashboard/internal/domain"
)

func newTestRouter(source *fakeSource) *chi.Mux {
	handler := NewHandler(newTestService(source), zerolog.Nop())
	router := chi.NewRouter()
	router.Get("/summary/{kind}/metrics", handler.HandleGetReport)
	return router
}

func doRequest(t *testing.T, router *chi.Mux, url string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandleGetReport(t *testing.T) {
	source := &fakeSource{
		records:   []domain.PeriodRecord{record("01/03/2024", 100), record("02/03/2024", -50), record("03/03/2024", 80)},
		freshness: "3:3",
	}
	rec := doRequest(t, newTestRouter(source), "/summary/daily/metrics")

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Kind   string  `json:"kind"`
		Empty  bool    `json:"empty"`
		Report *Report `json:"report"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, "daily", body.Kind)
	assert.False(t, body.Empty)
	require.NotNil(t, body.Report)
	assert.Equal(t, 130.0, body.Report.CapitalFinal)
	assert.Equal(t, -50.0, body.Report.MaxDrawdown)
	assert.InDelta(t, 3.6, body.Report.ProfitFactor, 1e-9)
}

func TestHandleGetReportEmpty(t *testing.T) {
	rec := doRequest(t, newTestRouter(&fakeSource{freshness: "0:0"}), "/summary/daily/metrics")

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["empty"])
	assert.NotContains(t, body, "report")
}

func TestHandleGetReportUnknownKind(t *testing.T) {
	rec := doRequest(t, newTestRouter(&fakeSource{freshness: "0:0"}), "/summary/weekly/metrics")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleGetReportBadFilter(t *testing.T) {
	rec := doRequest(t, newTestRouter(&fakeSource{freshness: "0:0"}), "/summary/daily/metrics?from=03-01-2024")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleGetReportSignFilter(t *testing.T) {
	source := &fakeSource{
		records:   []domain.PeriodRecord{record("01/03/2024", 100), record("02/03/2024", -50)},
		freshness: "2:2",
	}
	rec := doRequest(t, newTestRouter(source), "/summary/daily/metrics?sign=negative")

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Report *Report `json:"report"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.Report)
	assert.Equal(t, 1, body.Report.TotalPeriods)
	assert.Equal(t, -50.0, body.Report.CapitalFinal)
}

func TestHandleGetReportSourceUnavailable(t *testing.T) {
	source := &fakeSource{
		loadErr:   &domain.SourceUnavailableError{Table: "resumo_diario"},
		freshness: "0:0",
	}
	rec := doRequest(t, newTestRouter(source), "/summary/daily/metrics")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHandleGetReportUntrustedRow(t *testing.T) {
	source := &fakeSource{
		loadErr:   &domain.DataError{Table: "resumo_diario", PeriodKey: "02/03/2024", Field: "LUCRO LIQUIDO", Reason: "not numeric"},
		freshness: "1:1",
	}
	rec := doRequest(t, newTestRouter(source), "/summary/daily/metrics")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
