package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecofinanzas/savings-engine/internal/cache"
	"github.com/ecofinanzas/savings-engine/pkg/projection"
)

const projectionsBody = `{
	"loan": {
		"outstandingBalance": 56069733.47,
		"currentInstallment": 305034.17,
		"remainingInstallments": 325,
		"annualEffectiveRate": 0.0471,
		"originalPrincipal": 45200180,
		"monthlySubsidy": 183855.65,
		"inflationIndexed": true
	},
	"extraPayments": [200000, 300000],
	"labels": ["First choice"],
	"periodsPaid": 35,
	"periodsContracted": 360
}`

func newTestHandler() http.Handler {
	calculator := projection.NewCalculator(projection.DefaultConfig(), nil)
	return NewHandler(nil, calculator, cache.NewMemoryCache(), 0, "test")
}

func TestHandleHealth(t *testing.T) {
	handler := newTestHandler()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestHandleVersion(t *testing.T) {
	handler := newTestHandler()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/version", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"version":"test"}`, rec.Body.String())
}

func TestHandleProjections(t *testing.T) {
	handler := newTestHandler()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/projections", strings.NewReader(projectionsBody)))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp projectionsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.NotEmpty(t, resp.AnalysisID)
	require.Len(t, resp.Projections, 2)

	first := resp.Projections[0]
	assert.Equal(t, 1, first.OptionNumber)
	assert.Equal(t, "First choice", first.OptionLabel)
	assert.True(t, first.NewInstallment.Equal(decimal.RequireFromString("505034.17")),
		"NewInstallment = %s", first.NewInstallment)
	assert.True(t, first.InterestSaved.Sign() > 0, "InterestSaved = %s", first.InterestSaved)
	assert.Less(t, first.NewPeriodCount, 325)
	assert.True(t, first.Fee.GreaterThanOrEqual(decimal.RequireFromString("500000")),
		"Fee = %s", first.Fee)

	assert.Equal(t, "Option 2", resp.Projections[1].OptionLabel)

	require.NotNil(t, resp.Summary)
	assert.True(t, resp.Summary.AmountPaidToDate.Equal(decimal.RequireFromString("10676195.95")),
		"AmountPaidToDate = %s", resp.Summary.AmountPaidToDate)
	require.NotNil(t, resp.Summary.InflationAdjustment)
}

func TestHandleProjectionsCached(t *testing.T) {
	handler := newTestHandler()

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, httptest.NewRequest(http.MethodPost, "/api/v1/projections", strings.NewReader(projectionsBody)))
	require.Equal(t, http.StatusOK, first.Code)
	assert.Empty(t, first.Header().Get("X-Cache"))

	second := httptest.NewRecorder()
	handler.ServeHTTP(second, httptest.NewRequest(http.MethodPost, "/api/v1/projections", strings.NewReader(projectionsBody)))
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "hit", second.Header().Get("X-Cache"))
	assert.Equal(t, first.Body.String(), second.Body.String())
}

func TestHandleProjectionsInvalidInput(t *testing.T) {
	handler := newTestHandler()

	body := `{
		"loan": {"outstandingBalance": -1, "currentInstallment": 100, "originalPrincipal": 1000},
		"extraPayments": [100]
	}`
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/projections", strings.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "outstanding balance")
}

func TestHandleProjectionsNoCandidates(t *testing.T) {
	handler := newTestHandler()

	body := `{"loan": {"outstandingBalance": 1000, "currentInstallment": 100, "originalPrincipal": 1000}}`
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/projections", strings.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "extraPayments")
}

func TestHandleProjectionsMalformedBody(t *testing.T) {
	handler := newTestHandler()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/projections", strings.NewReader("{not json")))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid request body")
}

func TestHandleSummary(t *testing.T) {
	handler := newTestHandler()

	body := `{
		"loan": {
			"outstandingBalance": 56069733.47,
			"currentInstallment": 305034.17,
			"originalPrincipal": 45200180,
			"monthlySubsidy": 183855.65,
			"inflationIndexed": true
		},
		"periodsPaid": 35,
		"periodsContracted": 360
	}`
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/summary", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp summaryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.NotEmpty(t, resp.AnalysisID)
	assert.Equal(t, 325, resp.Summary.PeriodsRemaining)
	assert.True(t, resp.Summary.AmountPaidToBank.Equal(decimal.RequireFromString("17111143.70")),
		"AmountPaidToBank = %s", resp.Summary.AmountPaidToBank)
}

func TestHandleSummaryInvalidPeriods(t *testing.T) {
	handler := newTestHandler()

	body := `{
		"loan": {"outstandingBalance": 1000, "currentInstallment": 100, "originalPrincipal": 1000},
		"periodsPaid": 5,
		"periodsContracted": 0
	}`
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/summary", strings.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlerNilCache(t *testing.T) {
	calculator := projection.NewCalculator(projection.DefaultConfig(), nil)
	handler := NewHandler(nil, calculator, nil, 0, "")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/projections", strings.NewReader(projectionsBody)))

	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}
