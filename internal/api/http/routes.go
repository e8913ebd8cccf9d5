// Package httpapi exposes the analysis service over a versioned REST API.
package httpapi

import (
	"errors"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/tdhoang/weather-insight/internal/analysis"
	"github.com/tdhoang/weather-insight/internal/series"
	"github.com/tdhoang/weather-insight/internal/weather"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *weather.Service) {
	v1 := app.Group("/api/v1")

	v1.Get("/locations/search", func(c *fiber.Ctx) error {
		query := c.Query("q")
		if query == "" {
			return fiber.NewError(fiber.StatusBadRequest, "q query parameter is required")
		}

		places, err := service.SearchLocations(c.Context(), query)
		if err != nil {
			return fiber.NewError(fiber.StatusBadGateway, "location search failed")
		}
		return c.JSON(fiber.Map{"results": places})
	})

	v1.Get("/weather/current", func(c *fiber.Ctx) error {
		loc, err := parseLocationQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		current, err := service.Current(c.Context(), loc)
		if err != nil {
			return fiber.NewError(fiber.StatusBadGateway, "failed to fetch current conditions")
		}
		return c.JSON(current)
	})

	v1.Get("/weather/forecast", func(c *fiber.Ctx) error {
		loc, err := parseLocationQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		days := c.QueryInt("days", 7)

		forecast, err := service.Forecast(c.Context(), loc, days)
		if err != nil {
			return fiber.NewError(fiber.StatusBadGateway, "failed to fetch forecast")
		}
		return c.JSON(fiber.Map{
			"location": loc,
			"days":     forecast.Records,
		})
	})

	v1.Get("/weather/history", func(c *fiber.Ctx) error {
		var req windowQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		history, err := service.History(req.Location, req.From, req.To)
		if err != nil {
			return mapServiceError(err)
		}
		return c.JSON(fiber.Map{
			"location": req.Location,
			"days":     history.Records,
		})
	})

	v1.Get("/analysis", func(c *fiber.Ctx) error {
		var req windowQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		result, err := service.Analyze(req.Location, req.From, req.To)
		if err != nil {
			return mapServiceError(err)
		}
		return c.JSON(result)
	})

	v1.Get("/analysis/anomalies", func(c *fiber.Ctx) error {
		var req windowQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		metric := c.Query("metric", string(series.TempMax))
		threshold := queryFloat(c, "threshold", analysis.DefaultAnomalyThreshold)

		anomalies, err := service.Anomalies(req.Location, metric, threshold, req.From, req.To)
		if err != nil {
			return mapServiceError(err)
		}
		return c.JSON(fiber.Map{
			"location":  req.Location,
			"metric":    metric,
			"threshold": threshold,
			"anomalies": anomalies,
		})
	})

	v1.Get("/analysis/trend", func(c *fiber.Ctx) error {
		var req windowQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		metric := c.Query("metric", string(series.TempMax))
		window := c.QueryInt("window", analysis.DefaultTrendWindow)

		points, err := service.Trend(req.Location, metric, window, req.From, req.To)
		if err != nil {
			return mapServiceError(err)
		}
		return c.JSON(fiber.Map{
			"location": req.Location,
			"metric":   metric,
			"window":   window,
			"points":   points,
		})
	})

	v1.Get("/analysis/monthly", func(c *fiber.Ctx) error {
		var req windowQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		months, err := service.Monthly(req.Location, req.From, req.To)
		if err != nil {
			return mapServiceError(err)
		}
		return c.JSON(fiber.Map{
			"location": req.Location,
			"months":   months,
		})
	})

	v1.Get("/analysis/compare", func(c *fiber.Ctx) error {
		var req compareQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		comparison, err := service.Compare(req.Location, req.From1, req.To1, req.From2, req.To2)
		if err != nil {
			return mapServiceError(err)
		}
		return c.JSON(comparison)
	})

	v1.Get("/report", func(c *fiber.Ctx) error {
		var req windowQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		reportType := c.Query("type", "weekly")

		text, err := service.Report(req.Location, reportType, req.From, req.To)
		if err != nil {
			return mapServiceError(err)
		}
		return c.JSON(fiber.Map{
			"location": req.Location,
			"type":     reportType,
			"report":   text,
		})
	})
}

// mapServiceError translates service sentinels into HTTP statuses.
func mapServiceError(err error) error {
	switch {
	case errors.Is(err, weather.ErrNoData):
		return fiber.NewError(fiber.StatusNotFound, "no weather data for requested location")
	case errors.Is(err, series.ErrUnknownMetric),
		errors.Is(err, analysis.ErrInvalidThreshold),
		errors.Is(err, analysis.ErrInvalidWindow):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "analysis failed")
	}
}

// locationQuery holds the query parameters identifying a location.
type locationQuery struct {
	Name string  `validate:"required"`
	Lat  float64 `validate:"gte=-90,lte=90"`
	Lon  float64 `validate:"gte=-180,lte=180"`
}

func parseLocationQuery(c *fiber.Ctx) (weather.Location, error) {
	var q locationQuery
	q.Name = c.Query("name")

	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		return weather.Location{}, errors.New("lat query parameter is required and must be a number")
	}
	lon, err := strconv.ParseFloat(c.Query("lon"), 64)
	if err != nil {
		return weather.Location{}, errors.New("lon query parameter is required and must be a number")
	}
	q.Lat = lat
	q.Lon = lon

	if err := validate.Struct(q); err != nil {
		return weather.Location{}, err
	}

	return weather.Location{Name: q.Name, Lat: q.Lat, Lon: q.Lon}, nil
}

// windowQuery holds a location plus an optional date window.
type windowQuery struct {
	Location weather.Location
	From     time.Time
	To       time.Time
}

func (w *windowQuery) bind(c *fiber.Ctx) error {
	loc, err := parseLocationQuery(c)
	if err != nil {
		return err
	}
	w.Location = loc

	if from := c.Query("from"); from != "" {
		t, err := parseDate(from)
		if err != nil {
			return err
		}
		w.From = t
	}
	if to := c.Query("to"); to != "" {
		t, err := parseDate(to)
		if err != nil {
			return err
		}
		w.To = t
	}
	if !w.From.IsZero() && !w.To.IsZero() && w.To.Before(w.From) {
		return errors.New("to must not be before from")
	}
	return nil
}

// compareQuery holds a location plus two required date windows.
type compareQuery struct {
	Location weather.Location
	From1    time.Time
	To1      time.Time
	From2    time.Time
	To2      time.Time
}

func (q *compareQuery) bind(c *fiber.Ctx) error {
	loc, err := parseLocationQuery(c)
	if err != nil {
		return err
	}
	q.Location = loc

	dates := []struct {
		name string
		dst  *time.Time
	}{
		{"from1", &q.From1},
		{"to1", &q.To1},
		{"from2", &q.From2},
		{"to2", &q.To2},
	}
	for _, d := range dates {
		raw := c.Query(d.name)
		if raw == "" {
			return errors.New(d.name + " query parameter is required")
		}
		t, err := parseDate(raw)
		if err != nil {
			return err
		}
		*d.dst = t
	}

	if q.To1.Before(q.From1) || q.To2.Before(q.From2) {
		return errors.New("each window's to must not be before its from")
	}
	return nil
}

// parseDate accepts YYYY-MM-DD or RFC3339.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, errors.New("invalid date format; use YYYY-MM-DD or RFC3339")
}

func queryFloat(c *fiber.Ctx, key string, def float64) float64 {
	raw := c.Query(key)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return def
	}
	return v
}
