package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tdhoang/weather-insight/internal/series"
	"github.com/tdhoang/weather-insight/internal/store"
	"github.com/tdhoang/weather-insight/internal/weather"
)

var hanoi = weather.Location{Name: "Hanoi", Lat: 21.0278, Lon: 105.8342}

func day(d int) time.Time {
	return time.Date(2024, 5, d, 0, 0, 0, 0, time.UTC)
}

func sampleSeries() *series.Series {
	records := make([]series.Record, 0, 14)
	for i := 1; i <= 14; i++ {
		records = append(records, series.NewRecord(day(i)).
			With(series.TempMax, 30+float64(i%3)).
			With(series.TempMean, 26).
			With(series.Precipitation, float64(i%4)).
			With(series.WindSpeedMax, 12))
	}
	return series.New(records...)
}

// newTestApp wires the routes against an in-memory store preloaded with
// two weeks of data for Hanoi. No outbound calls are made.
func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	memStore := store.NewMemoryStore(0)
	memStore.SaveSeries(hanoi, sampleSeries())

	service := weather.NewService(weather.ServiceConfig{
		Store:    memStore,
		Provider: nil,
	})

	app := fiber.New()
	RegisterRoutes(app, service)
	return app
}

func get(t *testing.T, app *fiber.App, target string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

const hanoiQuery = "name=Hanoi&lat=21.0278&lon=105.8342"

func TestAnalysisEndpoint(t *testing.T) {
	app := newTestApp(t)

	resp := get(t, app, "/api/v1/analysis?"+hanoiQuery)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Days    int    `json:"days"`
		Summary string `json:"summary"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 14, body.Days)
	assert.NotEmpty(t, body.Summary)
}

func TestAnalysisUnknownLocationIs404(t *testing.T) {
	app := newTestApp(t)

	resp := get(t, app, "/api/v1/analysis?name=Atlantis&lat=0&lon=0")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAnalysisMissingCoordinatesIs400(t *testing.T) {
	app := newTestApp(t)

	resp := get(t, app, "/api/v1/analysis?name=Hanoi")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAnomaliesUnknownMetricIs400(t *testing.T) {
	app := newTestApp(t)

	resp := get(t, app, "/api/v1/analysis/anomalies?"+hanoiQuery+"&metric=dew_point")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAnomaliesDefaultsMetricAndThreshold(t *testing.T) {
	app := newTestApp(t)

	resp := get(t, app, "/api/v1/analysis/anomalies?"+hanoiQuery)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Metric    string  `json:"metric"`
		Threshold float64 `json:"threshold"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "temp_max", body.Metric)
	assert.Equal(t, 2.0, body.Threshold)
}

func TestTrendEndpoint(t *testing.T) {
	app := newTestApp(t)

	resp := get(t, app, "/api/v1/analysis/trend?"+hanoiQuery+"&metric=temp_max&window=7")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Window int `json:"window"`
		Points []struct {
			Direction string `json:"direction"`
		} `json:"points"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 7, body.Window)
	assert.Len(t, body.Points, 14)
}

func TestTrendInvalidWindowIs400(t *testing.T) {
	app := newTestApp(t)

	resp := get(t, app, "/api/v1/analysis/trend?"+hanoiQuery+"&window=-1")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHistoryWindowFilters(t *testing.T) {
	app := newTestApp(t)

	resp := get(t, app, "/api/v1/weather/history?"+hanoiQuery+"&from=2024-05-03&to=2024-05-05")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Days []json.RawMessage `json:"days"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body.Days, 3)
}

func TestHistoryRejectsInvertedWindow(t *testing.T) {
	app := newTestApp(t)

	resp := get(t, app, "/api/v1/weather/history?"+hanoiQuery+"&from=2024-05-05&to=2024-05-03")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestReportEndpoint(t *testing.T) {
	app := newTestApp(t)

	resp := get(t, app, "/api/v1/report?"+hanoiQuery+"&type=weekly")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Report string `json:"report"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body.Report, "# Weekly Weather Report - Hanoi")
}

func TestCompareRequiresAllWindows(t *testing.T) {
	app := newTestApp(t)

	resp := get(t, app, "/api/v1/analysis/compare?"+hanoiQuery+"&from1=2024-05-01&to1=2024-05-07")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "from2")
}

func TestCompareEndpoint(t *testing.T) {
	app := newTestApp(t)

	resp := get(t, app, "/api/v1/analysis/compare?"+hanoiQuery+
		"&from1=2024-05-01&to1=2024-05-07&from2=2024-05-08&to2=2024-05-14")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Temperature *struct {
			Change string `json:"change"`
		} `json:"temperature"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.NotNil(t, body.Temperature)
	assert.NotEmpty(t, body.Temperature.Change)
}

func TestLocationsSearchRequiresQuery(t *testing.T) {
	app := newTestApp(t)

	resp := get(t, app, "/api/v1/locations/search")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMonthlyEndpoint(t *testing.T) {
	app := newTestApp(t)

	resp := get(t, app, "/api/v1/analysis/monthly?"+hanoiQuery)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Months []struct {
			Month string `json:"month"`
		} `json:"months"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Months, 1)
	assert.Equal(t, "2024-05", body.Months[0].Month)
}
