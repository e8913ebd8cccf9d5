package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker"

	"github.com/tdhoang/weather-insight/internal/series"
	"github.com/tdhoang/weather-insight/internal/weather"
)

const maxForecastDays = 16

// OpenMeteo implements weather.Provider and weather.Geocoder against
// the Open-Meteo APIs. No API key is required.
type OpenMeteo struct {
	name       string
	baseURL    string
	geocodeURL string
	httpCfg    HTTPClientConfig
	circuit    *gobreaker.CircuitBreaker
}

// NewOpenMeteo creates the provider with retry + circuit breaker
// resilience around the shared HTTP client.
func NewOpenMeteo(client *http.Client) *OpenMeteo {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openmeteo",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &OpenMeteo{
		name:       "openmeteo",
		baseURL:    "https://api.open-meteo.com/v1",
		geocodeURL: "https://geocoding-api.open-meteo.com/v1/search",
		httpCfg: HTTPClientConfig{
			Client: client,
			Backoff: BackoffConfig{
				MaxRetries:      3,
				InitialInterval: 500 * time.Millisecond,
				MaxInterval:     5 * time.Second,
			},
		},
		circuit: cb,
	}
}

// Name returns the provider identifier.
func (p *OpenMeteo) Name() string { return p.name }

// WithBaseURLs overrides the API endpoints; used by tests to point the
// provider at a local server.
func (p *OpenMeteo) WithBaseURLs(base, geocode string) *OpenMeteo {
	if base != "" {
		p.baseURL = base
	}
	if geocode != "" {
		p.geocodeURL = geocode
	}
	return p
}

// FetchCurrent fetches live conditions for a location.
func (p *OpenMeteo) FetchCurrent(ctx context.Context, loc weather.Location) (weather.Current, error) {
	values := url.Values{}
	values.Set("latitude", formatCoord(loc.Lat))
	values.Set("longitude", formatCoord(loc.Lon))
	values.Set("current", "temperature_2m,relative_humidity_2m,precipitation,wind_speed_10m,wind_direction_10m,pressure_msl")
	values.Set("timezone", "UTC")

	var payload struct {
		Current struct {
			Time          string  `json:"time"`
			Temperature   float64 `json:"temperature_2m"`
			Humidity      float64 `json:"relative_humidity_2m"`
			Precipitation float64 `json:"precipitation"`
			WindSpeed     float64 `json:"wind_speed_10m"`
			WindDirection float64 `json:"wind_direction_10m"`
			Pressure      float64 `json:"pressure_msl"`
		} `json:"current"`
	}
	if err := p.getJSON(ctx, p.baseURL+"/forecast", values, &payload); err != nil {
		return weather.Current{}, fmt.Errorf("openmeteo current: %w", err)
	}

	ts, err := time.Parse("2006-01-02T15:04", payload.Current.Time)
	if err != nil {
		ts = time.Now().UTC()
	}

	return weather.Current{
		Location:      loc,
		Timestamp:     ts.UTC(),
		Temperature:   payload.Current.Temperature,
		Humidity:      payload.Current.Humidity,
		Precipitation: payload.Current.Precipitation,
		WindSpeed:     payload.Current.WindSpeed,
		WindDirection: payload.Current.WindDirection,
		Pressure:      payload.Current.Pressure,
	}, nil
}

// dailyPayload mirrors the daily block of the forecast and archive
// responses. Pointer elements keep JSON nulls as missing values.
type dailyPayload struct {
	Daily struct {
		Time          []string   `json:"time"`
		TempMax       []*float64 `json:"temperature_2m_max"`
		TempMin       []*float64 `json:"temperature_2m_min"`
		TempMean      []*float64 `json:"temperature_2m_mean"`
		Precipitation []*float64 `json:"precipitation_sum"`
		WindSpeedMax  []*float64 `json:"wind_speed_10m_max"`
		Humidity      []*float64 `json:"relative_humidity_2m_mean"`
	} `json:"daily"`
}

// FetchForecast fetches a daily forecast series, capped at the API
// limit of 16 days.
func (p *OpenMeteo) FetchForecast(ctx context.Context, loc weather.Location, days int) (*series.Series, error) {
	if days > maxForecastDays {
		days = maxForecastDays
	}

	values := url.Values{}
	values.Set("latitude", formatCoord(loc.Lat))
	values.Set("longitude", formatCoord(loc.Lon))
	values.Set("daily", "temperature_2m_max,temperature_2m_min,precipitation_sum,wind_speed_10m_max")
	values.Set("forecast_days", strconv.Itoa(days))
	values.Set("timezone", "UTC")

	var payload dailyPayload
	if err := p.getJSON(ctx, p.baseURL+"/forecast", values, &payload); err != nil {
		return nil, fmt.Errorf("openmeteo forecast: %w", err)
	}
	return dailyToSeries(payload)
}

// FetchHistorical fetches the archived daily series for a date range.
func (p *OpenMeteo) FetchHistorical(ctx context.Context, loc weather.Location, from, to time.Time) (*series.Series, error) {
	values := url.Values{}
	values.Set("latitude", formatCoord(loc.Lat))
	values.Set("longitude", formatCoord(loc.Lon))
	values.Set("start_date", from.Format("2006-01-02"))
	values.Set("end_date", to.Format("2006-01-02"))
	values.Set("daily", "temperature_2m_max,temperature_2m_min,temperature_2m_mean,precipitation_sum,wind_speed_10m_max,relative_humidity_2m_mean")
	values.Set("timezone", "UTC")

	var payload dailyPayload
	if err := p.getJSON(ctx, p.baseURL+"/historical-weather", values, &payload); err != nil {
		return nil, fmt.Errorf("openmeteo historical: %w", err)
	}
	return dailyToSeries(payload)
}

// Search resolves a free-text place name via the geocoding API.
func (p *OpenMeteo) Search(ctx context.Context, query string) ([]weather.Place, error) {
	values := url.Values{}
	values.Set("name", query)
	values.Set("count", "10")
	values.Set("format", "json")

	var payload struct {
		Results []struct {
			Name     string  `json:"name"`
			Country  string  `json:"country"`
			Admin1   string  `json:"admin1"`
			Lat      float64 `json:"latitude"`
			Lon      float64 `json:"longitude"`
			Timezone string  `json:"timezone"`
		} `json:"results"`
	}
	if err := p.getJSON(ctx, p.geocodeURL, values, &payload); err != nil {
		return nil, fmt.Errorf("openmeteo geocode: %w", err)
	}

	places := make([]weather.Place, 0, len(payload.Results))
	for _, r := range payload.Results {
		places = append(places, weather.Place{
			Name:     r.Name,
			Country:  r.Country,
			Admin1:   r.Admin1,
			Lat:      r.Lat,
			Lon:      r.Lon,
			Timezone: r.Timezone,
		})
	}
	return places, nil
}

func (p *OpenMeteo) getJSON(ctx context.Context, endpoint string, values url.Values, out any) error {
	buildRequest := func() (*http.Request, error) {
		return http.NewRequest(http.MethodGet, endpoint+"?"+values.Encode(), nil)
	}

	resp, err := doWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return json.NewDecoder(resp.Body).Decode(out)
}

// dailyToSeries converts parallel daily arrays into records, skipping
// null values so they stay missing rather than becoming zero.
func dailyToSeries(payload dailyPayload) (*series.Series, error) {
	daily := payload.Daily
	records := make([]series.Record, 0, len(daily.Time))

	for i, day := range daily.Time {
		date, err := time.Parse("2006-01-02", day)
		if err != nil {
			return nil, fmt.Errorf("parse daily date %q: %w", day, err)
		}
		r := series.NewRecord(date.UTC())
		setIfPresent(r, series.TempMax, daily.TempMax, i)
		setIfPresent(r, series.TempMin, daily.TempMin, i)
		setIfPresent(r, series.TempMean, daily.TempMean, i)
		setIfPresent(r, series.Precipitation, daily.Precipitation, i)
		setIfPresent(r, series.WindSpeedMax, daily.WindSpeedMax, i)
		setIfPresent(r, series.Humidity, daily.Humidity, i)
		records = append(records, r)
	}

	return series.New(records...), nil
}

func setIfPresent(r series.Record, m series.Metric, column []*float64, i int) {
	if i < len(column) && column[i] != nil {
		r.Values[m] = *column[i]
	}
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
