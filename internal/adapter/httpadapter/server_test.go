package httpadapter_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/couchcryptid/weather-wheel/internal/adapter/httpadapter"
	"github.com/couchcryptid/weather-wheel/internal/domain"
	"github.com/couchcryptid/weather-wheel/internal/wheel"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockReadiness struct {
	err error
}

func (m *mockReadiness) CheckReadiness(_ context.Context) error { return m.err }

// chartService adapts a bare chart to WheelService.
type chartService struct {
	chart  *wheel.Chart
	ended  int
	frames int
}

func (c *chartService) Frame() wheel.Frame {
	c.frames++
	return c.chart.Frame()
}
func (c *chartService) Summary() wheel.Summary { return c.chart.Summary() }
func (c *chartService) SelectMonth(_ context.Context, m int) (wheel.Summary, error) {
	return c.chart.SelectMonth(m)
}
func (c *chartService) ToggleYear(_ context.Context) (wheel.Summary, error) {
	return c.chart.ToggleYear()
}
func (c *chartService) HoverMonth(_ context.Context, m int) (wheel.Summary, time.Time, error) {
	return c.chart.HoverMonth(m)
}
func (c *chartService) HoverDay(_ context.Context, i int) (wheel.DayInfo, error) {
	return c.chart.HoverDay(i)
}
func (c *chartService) EndHover(_ context.Context) {
	c.ended++
	c.chart.EndHover()
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testRecords() []domain.DailyRecord {
	start := time.Date(2021, time.January, 1, 0, 0, 0, 0, time.UTC)
	records := make([]domain.DailyRecord, 90)
	for i := range records {
		d := start.AddDate(0, 0, i)
		records[i] = domain.DailyRecord{
			DateStr:        d.Format("01/02/2006"),
			Date:           d,
			Month:          int(d.Month()) - 1,
			Low:            float64(10 + i%20),
			High:           float64(30 + i%20),
			Avg:            float64(20 + i%20),
			Precipitation:  float64(i%4) / 10,
			Humidity:       float64(50 + i%25),
			Condition:      domain.Condition(i % 5),
			ConditionLabel: "x",
		}
	}
	return records
}

func newTestServer(t *testing.T, readyErr error) (*httpadapter.Server, *chartService) {
	t.Helper()
	chart, err := wheel.NewFromRecords(testRecords(), wheel.DefaultOptions())
	require.NoError(t, err)
	svc := &chartService{chart: chart}
	return httpadapter.NewServer(":0", &mockReadiness{err: readyErr}, svc, discardLogger()), svc
}

func do(t *testing.T, srv http.Handler, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func TestHealthzReturns200(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	rec := do(t, srv, http.MethodGet, "/healthz")

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReadyzReturns200WhenReady(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	rec := do(t, srv, http.MethodGet, "/readyz")

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReadyzReturns503WhenNotReady(t *testing.T) {
	srv, _ := newTestServer(t, fmt.Errorf("not ready yet"))

	rec := do(t, srv, http.MethodGet, "/readyz")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "not ready yet")
}

func TestMetricsEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	rec := do(t, srv, http.MethodGet, "/metrics")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestGetWheel(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	rec := do(t, srv, http.MethodGet, "/api/v1/wheel")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var frame struct {
		Year    int               `json:"year"`
		Days    []json.RawMessage `json:"days"`
		Months  []json.RawMessage `json:"months"`
		Summary struct {
			Label string `json:"label"`
			Scope struct {
				Mode string `json:"mode"`
			} `json:"scope"`
		} `json:"summary"`
		Highlight int `json:"highlight"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &frame))
	assert.Equal(t, 2021, frame.Year)
	assert.Len(t, frame.Days, 90)
	assert.Len(t, frame.Months, 12)
	assert.Equal(t, "2021", frame.Summary.Label)
	assert.Equal(t, "year", frame.Summary.Scope.Mode)
	assert.Equal(t, -1, frame.Highlight)
}

func TestGetSummaryDoesNotBuildFrame(t *testing.T) {
	srv, svc := newTestServer(t, nil)

	rec := do(t, srv, http.MethodGet, "/api/v1/summary")

	require.Equal(t, http.StatusOK, rec.Code)
	var summary struct {
		Label   string            `json:"label"`
		Circles []json.RawMessage `json:"circles"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, "2021", summary.Label)
	assert.Len(t, summary.Circles, 5)
	assert.Equal(t, 0, svc.frames)
}

// brokenFrameService returns a frame that cannot be encoded as JSON.
type brokenFrameService struct {
	*chartService
}

func (b brokenFrameService) Frame() wheel.Frame {
	return wheel.Frame{AverageLineWidth: math.NaN()}
}

func TestGetWheelEncodingFailureIs500(t *testing.T) {
	_, svc := newTestServer(t, nil)
	srv := httpadapter.NewServer(":0", &mockReadiness{}, brokenFrameService{svc}, discardLogger())

	rec := do(t, srv, http.MethodGet, "/api/v1/wheel")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"response encoding failed"}`, rec.Body.String())
}

func TestScopeRoutes(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	tests := []struct {
		name      string
		method    string
		path      string
		wantCode  int
		wantLabel string
	}{
		{name: "select february", method: http.MethodPost, path: "/api/v1/scope/month/1", wantCode: http.StatusOK, wantLabel: "February"},
		{name: "summary follows", method: http.MethodGet, path: "/api/v1/summary", wantCode: http.StatusOK, wantLabel: "February"},
		{name: "toggle year", method: http.MethodPost, path: "/api/v1/scope/year", wantCode: http.StatusOK, wantLabel: "2021"},
		{name: "toggle year again", method: http.MethodPost, path: "/api/v1/scope/year", wantCode: http.StatusOK, wantLabel: "2021"},
		{name: "month out of range", method: http.MethodPost, path: "/api/v1/scope/month/12", wantCode: http.StatusBadRequest},
		{name: "month not a number", method: http.MethodPost, path: "/api/v1/scope/month/may", wantCode: http.StatusBadRequest},
		{name: "wrong method", method: http.MethodGet, path: "/api/v1/scope/year", wantCode: http.StatusMethodNotAllowed},
	}

	// Cases run in order against one chart.
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, srv, tt.method, tt.path)
			require.Equal(t, tt.wantCode, rec.Code)
			if tt.wantLabel == "" {
				return
			}
			var summary struct {
				Label string `json:"label"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
			assert.Equal(t, tt.wantLabel, summary.Label)
		})
	}
}

func TestHoverMonth(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	rec := do(t, srv, http.MethodPost, "/api/v1/hover/month/2")

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Summary struct {
			Label string `json:"label"`
		} `json:"summary"`
		Focus time.Time `json:"focus"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "March", body.Summary.Label)
	assert.True(t, body.Focus.Equal(time.Date(2021, time.March, 1, 0, 0, 0, 0, time.UTC)))
}

func TestHoverDay(t *testing.T) {
	srv, svc := newTestServer(t, nil)

	rec := do(t, srv, http.MethodPost, "/api/v1/hover/day/2")
	require.Equal(t, http.StatusOK, rec.Code)

	var info struct {
		Date string `json:"date"`
		High string `json:"high"`
		Low  string `json:"low"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))
	assert.Equal(t, "01/03/2021", info.Date)
	assert.Equal(t, "High: 32°F", info.High)
	assert.Equal(t, "Low: 12°F", info.Low)
	assert.Equal(t, 2, svc.chart.Highlight())

	rec = do(t, srv, http.MethodDelete, "/api/v1/hover")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 1, svc.ended)
	assert.Equal(t, wheel.NoHighlight, svc.chart.Highlight())
}

func TestHoverDayOutOfRange(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	rec := do(t, srv, http.MethodPost, "/api/v1/hover/day/90")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "out of range")
}
