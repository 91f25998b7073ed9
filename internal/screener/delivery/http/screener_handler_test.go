package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang-idx-screener/internal/entity"
	"golang-idx-screener/internal/screener/dto"
	"golang-idx-screener/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang-idx-screener/internal/screener/service"
)

type fakeScanService struct {
	result   *dto.ScanResult
	err      error
	snapshot *dto.ScanResult
}

func (f *fakeScanService) Scan(_ context.Context) (*dto.ScanResult, error) {
	return f.result, f.err
}

func (f *fakeScanService) Snapshot() (*dto.ScanResult, bool) {
	return f.snapshot, f.snapshot != nil
}

type fakeParamsService struct{}

func (f *fakeParamsService) GetDefaults(mode entity.Mode) entity.ScannerParams {
	return entity.DefaultParams(mode)
}

func (f *fakeParamsService) Load(_ context.Context, mode entity.Mode) (entity.ScannerParams, error) {
	return entity.DefaultParams(mode), nil
}

func (f *fakeParamsService) Save(_ context.Context, mode entity.Mode, patch dto.ScannerParamsPatch) (entity.ScannerParams, error) {
	return patch.Apply(entity.DefaultParams(mode)), nil
}

func newTestHandler(t *testing.T, scanSvc *fakeScanService) *ScreenerHandler {
	t.Helper()
	log, err := logger.New("error", "console")
	require.NoError(t, err)
	return NewScreenerHandler(scanSvc, service.NewScreenerService(log), &fakeParamsService{}, log)
}

func doRequest(t *testing.T, handler func(echo.Context) error, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	require.NoError(t, handler(c))
	return rec
}

func TestScanEndpoint_Success(t *testing.T) {
	scanSvc := &fakeScanService{
		result: &dto.ScanResult{
			Rows:      []entity.ScanRow{{Name: "BBCA", ValueB: 45}},
			FetchedAt: time.Now(),
		},
	}
	h := newTestHandler(t, scanSvc)

	rec := doRequest(t, h.Scan, http.MethodPost, "/api/v1/screener/scan")
	assert.Equal(t, http.StatusOK, rec.Code)

	var body dto.ScanResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Ok)
	require.Len(t, body.Rows, 1)
	assert.Equal(t, "BBCA", body.Rows[0].Name)
}

func TestScanEndpoint_MalformedUpstreamIs502(t *testing.T) {
	h := newTestHandler(t, &fakeScanService{err: dto.ErrUnexpectedResponseFormat})

	rec := doRequest(t, h.Scan, http.MethodPost, "/api/v1/screener/scan")
	assert.Equal(t, http.StatusBadGateway, rec.Code)

	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Ok)
	assert.Equal(t, "Unexpected response format", body.Error)
}

func TestScanEndpoint_UpstreamStatusPassesThrough(t *testing.T) {
	h := newTestHandler(t, &fakeScanService{err: &dto.UpstreamStatusError{
		StatusCode: http.StatusTooManyRequests,
		Body:       "rate limited",
	}})

	rec := doRequest(t, h.Scan, http.MethodPost, "/api/v1/screener/scan")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Scanner request failed (429)", body.Error)
	assert.Equal(t, "rate limited", body.Details)
}

func TestViewEndpoint_ComputesFromSnapshot(t *testing.T) {
	row := entity.ScanRow{
		Name:        "BBCA",
		Close:       1000,
		Volume:      5_000_000,
		Change:      5,
		AvgVol10:    1_000_000,
		ValueB:      5,
		WickPct:     0.5,
		VwapDistPct: 1,
	}
	scanSvc := &fakeScanService{snapshot: &dto.ScanResult{
		Rows:      []entity.ScanRow{row},
		FetchedAt: time.Now(),
	}}
	h := newTestHandler(t, scanSvc)

	rec := doRequest(t, h.View, http.MethodGet, "/api/v1/screener/view?mode=BTST&sort_key=change&sort_order=asc")
	assert.Equal(t, http.StatusOK, rec.Code)

	var view dto.ViewResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.True(t, view.Ok)
	assert.Equal(t, 1, view.TotalRows)
	require.Len(t, view.Rows, 1)
	assert.Equal(t, "BBCA", view.Rows[0].Name)
	require.NotNil(t, view.FetchedAt)
	assert.False(t, view.FetchedAt.IsZero())
}

func TestViewEndpoint_NoSnapshotIsEmptyView(t *testing.T) {
	h := newTestHandler(t, &fakeScanService{})

	rec := doRequest(t, h.View, http.MethodGet, "/api/v1/screener/view")
	assert.Equal(t, http.StatusOK, rec.Code)

	var view dto.ViewResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Zero(t, view.TotalRows)
	assert.Equal(t, 1, view.Page)

	// no scan yet: fetched_at must be absent, not the zero time
	assert.Nil(t, view.FetchedAt)
	assert.NotContains(t, rec.Body.String(), "fetched_at")
}

func TestViewEndpoint_RejectsInvalidInputs(t *testing.T) {
	h := newTestHandler(t, &fakeScanService{})

	for _, target := range []string{
		"/api/v1/screener/view?mode=SWING",
		"/api/v1/screener/view?sort_key=volume",
		"/api/v1/screener/view?sort_order=up",
		"/api/v1/screener/view?page=abc",
		"/api/v1/screener/view?page_size=abc",
	} {
		rec := doRequest(t, h.View, http.MethodGet, target)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}
