package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tdhoang/weather-insight/internal/series"
)

func TestMonthlyAggregatesBucketsByMonth(t *testing.T) {
	s := series.New(
		series.NewRecord(time.Date(2024, 3, 30, 0, 0, 0, 0, time.UTC)).
			With(series.TempMean, 20).With(series.Precipitation, 5),
		series.NewRecord(time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)).
			With(series.TempMean, 22).With(series.Precipitation, 0),
		series.NewRecord(time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)).
			With(series.TempMean, 24).With(series.Precipitation, 12),
	)

	months := MonthlyAggregates(s)
	require.Len(t, months, 2)

	march := months[0]
	assert.Equal(t, "2024-03", march.Month)
	require.NotNil(t, march.TempMean)
	assert.Equal(t, 21.0, *march.TempMean)
	require.NotNil(t, march.Precipitation)
	assert.Equal(t, 5.0, *march.Precipitation)
	require.NotNil(t, march.RainyDays)
	assert.Equal(t, 1, *march.RainyDays)

	april := months[1]
	assert.Equal(t, "2024-04", april.Month)
	require.NotNil(t, april.TempMean)
	assert.Equal(t, 24.0, *april.TempMean)
}

func TestMonthlyAggregatesMidpointFallback(t *testing.T) {
	// No temp_mean column; the monthly mean uses the max/min midpoint.
	s := series.New(
		series.NewRecord(day(1)).With(series.TempMax, 30).With(series.TempMin, 20),
		series.NewRecord(day(2)).With(series.TempMax, 28).With(series.TempMin, 18),
		series.NewRecord(day(3)).With(series.TempMax, 26), // min missing, no midpoint
	)

	months := MonthlyAggregates(s)
	require.Len(t, months, 1)
	require.NotNil(t, months[0].TempMean)
	assert.Equal(t, 24.0, *months[0].TempMean)
	require.NotNil(t, months[0].TempMax)
	assert.Equal(t, 30.0, *months[0].TempMax)
	require.NotNil(t, months[0].TempMin)
	assert.Equal(t, 18.0, *months[0].TempMin)
}

func TestMonthlyAggregatesEmptySeries(t *testing.T) {
	assert.Nil(t, MonthlyAggregates(series.New()))
}

func TestComparePeriods(t *testing.T) {
	p1 := series.New(
		series.NewRecord(day(1)).With(series.TempMean, 20).With(series.Precipitation, 10),
		series.NewRecord(day(2)).With(series.TempMean, 22).With(series.Precipitation, 5),
	)
	p2 := series.New(
		series.NewRecord(day(10)).With(series.TempMean, 25).With(series.Precipitation, 2),
		series.NewRecord(day(11)).With(series.TempMean, 27).With(series.Precipitation, 0),
	)

	cmp := ComparePeriods(p1, p2, "early March", "mid March")
	assert.Equal(t, "early March", cmp.Period1Name)

	require.NotNil(t, cmp.Temperature)
	assert.Equal(t, 21.0, cmp.Temperature.Period1)
	assert.Equal(t, 26.0, cmp.Temperature.Period2)
	assert.Equal(t, 5.0, cmp.Temperature.Difference)
	assert.Equal(t, "up 5.0°C", cmp.Temperature.Change)

	require.NotNil(t, cmp.Precipitation)
	assert.Equal(t, -13.0, cmp.Precipitation.Difference)
	assert.Equal(t, "down 13.0mm", cmp.Precipitation.Change)
}

func TestComparePeriodsNeedsColumnInBoth(t *testing.T) {
	p1 := seriesOf(series.TempMean, 20, 22)
	p2 := seriesOf(series.Precipitation, 5, 10)

	cmp := ComparePeriods(p1, p2, "a", "b")
	assert.Nil(t, cmp.Temperature)
	assert.Nil(t, cmp.Precipitation)
}
