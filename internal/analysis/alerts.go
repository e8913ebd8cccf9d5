package analysis

import (
	"fmt"

	"github.com/tdhoang/weather-insight/internal/series"
)

// Severity ranks how urgent an alert is.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityDanger  Severity = "danger"
)

// Alert categories. Heat and cold are independent categories: a series
// can trigger both in the same run.
const (
	CategoryHeat          = "heat"
	CategoryCold          = "cold"
	CategoryPrecipitation = "precipitation"
	CategoryWind          = "wind"
)

// Alert is one triggered threshold condition with the day count and the
// extreme value that triggered it.
type Alert struct {
	Severity Severity `json:"severity"`
	Category string   `json:"category"`
	Title    string   `json:"title"`
	Message  string   `json:"message"`
	Days     int      `json:"days"`
	Extreme  float64  `json:"extreme"`
}

// AlertThresholds is an immutable threshold profile. Passing it
// explicitly lets per-region climate norms coexist without shared
// state. Units follow the series columns: °C, mm, km/h.
type AlertThresholds struct {
	ExtremeHeat    float64
	HighHeat       float64
	Cold           float64
	ExtremeCold    float64
	HeavyRain      float64
	VeryHeavyRain  float64
	StrongWind     float64
	VeryStrongWind float64
}

// DefaultAlertThresholds returns the standard profile.
func DefaultAlertThresholds() AlertThresholds {
	return AlertThresholds{
		ExtremeHeat:    38,
		HighHeat:       35,
		Cold:           15,
		ExtremeCold:    5,
		HeavyRain:      50,
		VeryHeavyRain:  100,
		StrongWind:     25,
		VeryStrongWind: 40,
	}
}

// GenerateAlerts evaluates the threshold profile against the series.
// Each category contributes at most one alert, the most severe matching
// condition within it. Missing columns simply contribute nothing.
func GenerateAlerts(s *series.Series, th AlertThresholds) []Alert {
	var alerts []Alert

	if tempCol, ok := s.Resolve(series.TemperatureColumns()...); ok {
		temps := s.Values(tempCol)

		if hot := atLeast(temps, th.ExtremeHeat); len(hot) > 0 {
			alerts = append(alerts, Alert{
				Severity: SeverityDanger,
				Category: CategoryHeat,
				Title:    "Extreme heat warning",
				Message:  fmt.Sprintf("%d day(s) with temperature >= %.0f°C", len(hot), th.ExtremeHeat),
				Days:     len(hot),
				Extreme:  maxOf(hot),
			})
		} else if hot := atLeast(temps, th.HighHeat); len(hot) > 0 {
			alerts = append(alerts, Alert{
				Severity: SeverityWarning,
				Category: CategoryHeat,
				Title:    "High heat warning",
				Message:  fmt.Sprintf("%d day(s) with temperature >= %.0f°C", len(hot), th.HighHeat),
				Days:     len(hot),
				Extreme:  maxOf(hot),
			})
		}

		if cold := atMost(temps, th.Cold); len(cold) > 0 {
			severity := SeverityInfo
			if minOf(cold) <= th.ExtremeCold {
				severity = SeverityDanger
			}
			alerts = append(alerts, Alert{
				Severity: severity,
				Category: CategoryCold,
				Title:    "Cold weather warning",
				Message:  fmt.Sprintf("%d day(s) with temperature <= %.0f°C", len(cold), th.Cold),
				Days:     len(cold),
				Extreme:  minOf(cold),
			})
		}
	}

	if rain := atLeast(s.Values(series.Precipitation), th.HeavyRain); len(rain) > 0 {
		severity := SeverityWarning
		if maxOf(rain) >= th.VeryHeavyRain {
			severity = SeverityDanger
		}
		alerts = append(alerts, Alert{
			Severity: severity,
			Category: CategoryPrecipitation,
			Title:    "Heavy rain warning",
			Message:  fmt.Sprintf("%d day(s) with rainfall >= %.0fmm", len(rain), th.HeavyRain),
			Days:     len(rain),
			Extreme:  maxOf(rain),
		})
	}

	if windCol, ok := s.Resolve(series.WindColumns()...); ok {
		if wind := atLeast(s.Values(windCol), th.StrongWind); len(wind) > 0 {
			severity := SeverityWarning
			if maxOf(wind) >= th.VeryStrongWind {
				severity = SeverityDanger
			}
			alerts = append(alerts, Alert{
				Severity: severity,
				Category: CategoryWind,
				Title:    "Strong wind warning",
				Message:  fmt.Sprintf("%d day(s) with wind >= %.0fkm/h", len(wind), th.StrongWind),
				Days:     len(wind),
				Extreme:  maxOf(wind),
			})
		}
	}

	return alerts
}

func atLeast(values []float64, threshold float64) []float64 {
	var out []float64
	for _, v := range values {
		if v >= threshold {
			out = append(out, v)
		}
	}
	return out
}

func atMost(values []float64, threshold float64) []float64 {
	var out []float64
	for _, v := range values {
		if v <= threshold {
			out = append(out, v)
		}
	}
	return out
}
