// Package analysis derives statistics, anomalies, trends, alerts,
// climate indices, and weather patterns from a daily series. Every
// function is a pure function of its input series: nothing here mutates
// the series, logs, or touches the clock, so identical input yields
// identical output and independent series can be analyzed concurrently.
package analysis

import (
	"math"

	"github.com/tdhoang/weather-insight/internal/series"
)

// TemperatureStats summarizes a temperature column, values rounded to
// one decimal. Std is omitted when the sample has a single value.
type TemperatureStats struct {
	Mean float64  `json:"mean"`
	Min  float64  `json:"min"`
	Max  float64  `json:"max"`
	Std  *float64 `json:"std,omitempty"`
}

// PrecipitationStats summarizes the precipitation column.
type PrecipitationStats struct {
	Total     float64 `json:"total"`
	Mean      float64 `json:"mean"`
	Max       float64 `json:"max"`
	RainyDays int     `json:"rainy_days"`
}

// WindStats summarizes the maximum wind speed column.
type WindStats struct {
	Mean float64 `json:"mean"`
	Max  float64 `json:"max"`
}

// Statistics groups the per-category summary blocks. A block is nil
// when its source column has no observed values, never zero-filled.
type Statistics struct {
	Temperature   *TemperatureStats   `json:"temperature,omitempty"`
	Precipitation *PrecipitationStats `json:"precipitation,omitempty"`
	Wind          *WindStats          `json:"wind,omitempty"`
}

// ComputeStatistics computes the summary statistics over the series.
// tempCol selects the temperature column; an empty metric defaults to
// temp_mean. Missing values are dropped before aggregating.
func ComputeStatistics(s *series.Series, tempCol series.Metric) Statistics {
	if tempCol == "" {
		tempCol = series.TempMean
	}

	var stats Statistics

	if temps := s.Values(tempCol); len(temps) > 0 {
		block := &TemperatureStats{
			Mean: round1(mean(temps)),
			Min:  round1(minOf(temps)),
			Max:  round1(maxOf(temps)),
		}
		if std, ok := sampleStd(temps); ok {
			block.Std = ptr(round1(std))
		}
		stats.Temperature = block
	}

	if precip := s.Values(series.Precipitation); len(precip) > 0 {
		stats.Precipitation = &PrecipitationStats{
			Total:     round1(sum(precip)),
			Mean:      round1(mean(precip)),
			Max:       round1(maxOf(precip)),
			RainyDays: countAbove(precip, 0),
		}
	}

	if wind := s.Values(series.WindSpeedMax); len(wind) > 0 {
		stats.Wind = &WindStats{
			Mean: round1(mean(wind)),
			Max:  round1(maxOf(wind)),
		}
	}

	return stats
}

// IsEmpty reports whether no category produced a block.
func (s Statistics) IsEmpty() bool {
	return s.Temperature == nil && s.Precipitation == nil && s.Wind == nil
}

func ptr(v float64) *float64 { return &v }

func round1(v float64) float64 { return math.Round(v*10) / 10 }

func round3(v float64) float64 { return math.Round(v*1000) / 1000 }

func sum(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return sum(values) / float64(len(values))
}

func minOf(values []float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func maxOf(values []float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

// sampleStd computes the sample (n-1) standard deviation. The second
// return is false when fewer than two values make it undefined.
func sampleStd(values []float64) (float64, bool) {
	if len(values) < 2 {
		return 0, false
	}
	m := mean(values)
	sumSq := 0.0
	for _, v := range values {
		diff := v - m
		sumSq += diff * diff
	}
	return math.Sqrt(sumSq / float64(len(values)-1)), true
}

func countAbove(values []float64, threshold float64) int {
	n := 0
	for _, v := range values {
		if v > threshold {
			n++
		}
	}
	return n
}

func countBelow(values []float64, threshold float64) int {
	n := 0
	for _, v := range values {
		if v < threshold {
			n++
		}
	}
	return n
}
