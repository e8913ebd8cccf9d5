package analysis

import (
	"github.com/tdhoang/weather-insight/internal/series"
)

// minPatternRows is the minimum series length for pattern detection.
const minPatternRows = 7

// Streak thresholds: a day counts toward a spell once the run of
// consecutive qualifying days reaches the minimum length, so a 5-day
// heat run contributes 3 heat-wave days, not 5.
const (
	heatWaveTemp      = 35.0
	heatWaveMinRun    = 3
	drySpellMinRun    = 5
	wetSpellMinRun    = 3
	volatilityStd     = 5.0
	consistencyStdMax = 10.0
)

// Volatility and consistency labels.
const (
	VolatilityHigh   = "high"
	VolatilityLow    = "low"
	RainConsistent   = "consistent"
	RainInconsistent = "inconsistent"
)

// TemperaturePattern describes the temperature behaviour of the series.
type TemperaturePattern struct {
	Trend        string  `json:"trend"`
	TrendSlope   float64 `json:"trend_slope"`
	HeatWaveDays int     `json:"heat_wave_days"`
	Volatility   string  `json:"temperature_volatility"`
}

// PrecipitationPattern describes rainfall spells.
type PrecipitationPattern struct {
	DrySpellDays int    `json:"dry_spell_days"`
	WetSpellDays int    `json:"wet_spell_days"`
	Consistency  string `json:"rain_consistency"`
}

// Patterns groups the detected patterns; nil blocks mean the required
// column had fewer than seven observed values.
type Patterns struct {
	Temperature   *TemperaturePattern   `json:"temperature_patterns,omitempty"`
	Precipitation *PrecipitationPattern `json:"precipitation_patterns,omitempty"`
}

// IsEmpty reports whether no pattern block was produced.
func (p Patterns) IsEmpty() bool {
	return p.Temperature == nil && p.Precipitation == nil
}

// DetectPatterns finds streak-based patterns in a series of at least
// seven rows. Shorter series yield an empty result, not an error.
func DetectPatterns(s *series.Series) Patterns {
	var patterns Patterns
	if s.Len() < minPatternRows {
		return patterns
	}

	sorted := s.SortedByDate()

	if tempCol, ok := sorted.Resolve(series.TemperatureColumns()...); ok {
		temps := sorted.Values(tempCol)
		if len(temps) >= minPatternRows {
			slope := FitLinearTrend(temps)
			block := &TemperaturePattern{
				Trend:      SlopeDirection(slope),
				TrendSlope: round3(slope),
				HeatWaveDays: streakDays(temps, heatWaveMinRun, func(v float64) bool {
					return v > heatWaveTemp
				}),
				Volatility: VolatilityLow,
			}
			if std, ok := sampleStd(temps); ok && std > volatilityStd {
				block.Volatility = VolatilityHigh
			}
			patterns.Temperature = block
		}
	}

	precip := sorted.Values(series.Precipitation)
	if len(precip) >= minPatternRows {
		block := &PrecipitationPattern{
			DrySpellDays: streakDays(precip, drySpellMinRun, func(v float64) bool { return v == 0 }),
			WetSpellDays: streakDays(precip, wetSpellMinRun, func(v float64) bool { return v > 0 }),
			Consistency:  RainInconsistent,
		}
		if std, ok := sampleStd(precip); ok && std < consistencyStdMax {
			block.Consistency = RainConsistent
		}
		patterns.Precipitation = block
	}

	return patterns
}

// streakDays counts the days that are the minRun-th or later in a run
// of consecutive qualifying values. Any non-qualifying day resets the
// run to zero.
func streakDays(values []float64, minRun int, qualifies func(float64) bool) int {
	days := 0
	run := 0
	for _, v := range values {
		if !qualifies(v) {
			run = 0
			continue
		}
		run++
		if run >= minRun {
			days++
		}
	}
	return days
}
