package analysis

import (
	"github.com/tdhoang/weather-insight/internal/series"
)

// Fixed bands for the derived indices.
const (
	hotDayTemp        = 30.0
	coolDayTemp       = 20.0
	highIntensityRain = 5.0
)

// Intensity labels for precipitation.
const (
	IntensityHigh = "high"
	IntensityLow  = "low"
)

// TemperatureIndices derives temperature characteristics, rounded to
// one decimal. Variability is omitted when std is undefined (n=1).
type TemperatureIndices struct {
	MeanTemp    float64  `json:"mean_temp"`
	TempRange   float64  `json:"temp_range"`
	HotDays     int      `json:"hot_days"`
	CoolDays    int      `json:"cool_days"`
	Variability *float64 `json:"temp_variability,omitempty"`
}

// PrecipitationIndices derives rainfall characteristics.
type PrecipitationIndices struct {
	Total            float64 `json:"total_precipitation"`
	RainyDays        int     `json:"rainy_days"`
	DryDays          int     `json:"dry_days"`
	MeanRainPerRainy float64 `json:"average_rain_per_rainy_day"`
	MaxDailyRain     float64 `json:"max_daily_rain"`
	Intensity        string  `json:"precipitation_intensity"`
}

// ComfortIndex is a heuristic 0-100 score from paired daily temperature
// and humidity.
type ComfortIndex struct {
	Score           float64 `json:"comfort_score"`
	Level           string  `json:"comfort_level"`
	ComfortableDays int     `json:"comfortable_days"`
}

// ClimateIndices groups the composite indices. A nil block means the
// required columns were absent or never paired.
type ClimateIndices struct {
	Temperature   *TemperatureIndices   `json:"temperature_indices,omitempty"`
	Precipitation *PrecipitationIndices `json:"precipitation_indices,omitempty"`
	Comfort       *ComfortIndex         `json:"comfort_index,omitempty"`
}

// ComputeIndices derives the composite climate indices from the series.
func ComputeIndices(s *series.Series) ClimateIndices {
	var indices ClimateIndices

	tempCol, haveTemp := s.Resolve(series.TemperatureColumns()...)
	if haveTemp {
		temps := s.Values(tempCol)
		block := &TemperatureIndices{
			MeanTemp:  round1(mean(temps)),
			TempRange: round1(maxOf(temps) - minOf(temps)),
			HotDays:   countAbove(temps, hotDayTemp),
			CoolDays:  countBelow(temps, coolDayTemp),
		}
		if std, ok := sampleStd(temps); ok {
			block.Variability = ptr(round1(std))
		}
		indices.Temperature = block
	}

	if precip := s.Values(series.Precipitation); len(precip) > 0 {
		var rainy []float64
		for _, v := range precip {
			if v > 0 {
				rainy = append(rainy, v)
			}
		}
		block := &PrecipitationIndices{
			Total:        round1(sum(precip)),
			RainyDays:    len(rainy),
			DryDays:      len(precip) - len(rainy),
			MaxDailyRain: round1(maxOf(precip)),
			Intensity:    IntensityLow,
		}
		if len(rainy) > 0 {
			block.MeanRainPerRainy = round1(mean(rainy))
		}
		if mean(precip) > highIntensityRain {
			block.Intensity = IntensityHigh
		}
		indices.Precipitation = block
	}

	if haveTemp && s.Has(series.Humidity) {
		if comfort := computeComfort(s, tempCol); comfort != nil {
			indices.Comfort = comfort
		}
	}

	return indices
}

// computeComfort scores each day where both temperature and humidity
// were observed; days missing either are skipped, not zero-filled.
func computeComfort(s *series.Series, tempCol series.Metric) *ComfortIndex {
	var scores []float64
	comfortable := 0
	for _, r := range s.Records {
		temp, haveTemp := r.Value(tempCol)
		humidity, haveHumidity := r.Value(series.Humidity)
		if !haveTemp || !haveHumidity {
			continue
		}
		score := comfortScore(temp, humidity)
		if score == 100 {
			comfortable++
		}
		scores = append(scores, score)
	}
	if len(scores) == 0 {
		return nil
	}

	avg := mean(scores)
	return &ComfortIndex{
		Score:           round1(avg),
		Level:           comfortLevel(avg),
		ComfortableDays: comfortable,
	}
}

func comfortScore(temp, humidity float64) float64 {
	switch {
	case temp >= 18 && temp <= 26 && humidity >= 40 && humidity <= 60:
		return 100
	case temp >= 15 && temp <= 30 && humidity >= 30 && humidity <= 70:
		return 75
	default:
		return 50
	}
}

func comfortLevel(score float64) string {
	switch {
	case score >= 90:
		return "very comfortable"
	case score >= 75:
		return "comfortable"
	case score >= 60:
		return "fairly comfortable"
	case score >= 40:
		return "uncomfortable"
	default:
		return "very uncomfortable"
	}
}
