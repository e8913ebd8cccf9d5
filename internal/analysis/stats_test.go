package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tdhoang/weather-insight/internal/series"
)

func day(d int) time.Time {
	return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC)
}

// seriesOf builds a series with one metric observed on consecutive days.
func seriesOf(m series.Metric, values ...float64) *series.Series {
	records := make([]series.Record, 0, len(values))
	for i, v := range values {
		records = append(records, series.NewRecord(day(i+1)).With(m, v))
	}
	return series.New(records...)
}

func TestComputeStatisticsTemperature(t *testing.T) {
	s := seriesOf(series.TempMean, 20, 22, 24)

	stats := ComputeStatistics(s, "")
	require.NotNil(t, stats.Temperature)
	assert.Equal(t, 22.0, stats.Temperature.Mean)
	assert.Equal(t, 20.0, stats.Temperature.Min)
	assert.Equal(t, 24.0, stats.Temperature.Max)
	require.NotNil(t, stats.Temperature.Std)
	assert.InDelta(t, 2.0, *stats.Temperature.Std, 0.01)

	assert.Nil(t, stats.Precipitation)
	assert.Nil(t, stats.Wind)
}

func TestComputeStatisticsSingleValueOmitsStd(t *testing.T) {
	s := seriesOf(series.TempMean, 21)

	stats := ComputeStatistics(s, "")
	require.NotNil(t, stats.Temperature)
	assert.Nil(t, stats.Temperature.Std)
}

func TestComputeStatisticsPrecipitationAndWind(t *testing.T) {
	s := series.New(
		series.NewRecord(day(1)).With(series.Precipitation, 0).With(series.WindSpeedMax, 10),
		series.NewRecord(day(2)).With(series.Precipitation, 12).With(series.WindSpeedMax, 30),
		series.NewRecord(day(3)).With(series.Precipitation, 8).With(series.WindSpeedMax, 20),
	)

	stats := ComputeStatistics(s, "")
	assert.Nil(t, stats.Temperature)

	require.NotNil(t, stats.Precipitation)
	assert.Equal(t, 20.0, stats.Precipitation.Total)
	assert.Equal(t, 12.0, stats.Precipitation.Max)
	assert.Equal(t, 2, stats.Precipitation.RainyDays, "zero-rain day is not rainy")

	require.NotNil(t, stats.Wind)
	assert.Equal(t, 20.0, stats.Wind.Mean)
	assert.Equal(t, 30.0, stats.Wind.Max)
}

func TestComputeStatisticsEmptySeries(t *testing.T) {
	stats := ComputeStatistics(series.New(), "")
	assert.True(t, stats.IsEmpty())
}

func TestComputeStatisticsMissingValuesExcluded(t *testing.T) {
	s := series.New(
		series.NewRecord(day(1)).With(series.TempMean, 20),
		series.NewRecord(day(2)), // nothing observed
		series.NewRecord(day(3)).With(series.TempMean, 30),
	)

	stats := ComputeStatistics(s, "")
	require.NotNil(t, stats.Temperature)
	assert.Equal(t, 25.0, stats.Temperature.Mean, "missing day must not drag the mean toward zero")
}

func TestComputeStatisticsDeterministic(t *testing.T) {
	s := seriesOf(series.TempMean, 18.3, 21.7, 25.1, 19.9)

	first := ComputeStatistics(s, "")
	second := ComputeStatistics(s, "")
	assert.Equal(t, first, second)
}
