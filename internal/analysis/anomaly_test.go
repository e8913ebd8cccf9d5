package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tdhoang/weather-insight/internal/series"
)

func TestDetectAnomaliesFlagsOutlier(t *testing.T) {
	// Nine steady days plus one spike.
	s := seriesOf(series.TempMax, 20, 21, 20, 22, 21, 20, 21, 22, 20, 40)

	anomalies, err := DetectAnomalies(s, series.TempMax, DefaultAnomalyThreshold)
	require.NoError(t, err)
	require.Len(t, anomalies, 1)
	assert.Equal(t, 40.0, anomalies[0].Value)
	assert.Equal(t, day(10), anomalies[0].Date)
	assert.Greater(t, anomalies[0].ZScore, DefaultAnomalyThreshold)
}

func TestDetectAnomaliesNeedsTenSamples(t *testing.T) {
	// Nine values, one of them wild; still below the minimum.
	s := seriesOf(series.TempMax, 20, 21, 20, 22, 21, 20, 21, 22, 45)

	anomalies, err := DetectAnomalies(s, series.TempMax, DefaultAnomalyThreshold)
	require.NoError(t, err)
	assert.Empty(t, anomalies)
}

func TestDetectAnomaliesConstantSeries(t *testing.T) {
	values := make([]float64, 12)
	for i := range values {
		values[i] = 25
	}
	s := seriesOf(series.TempMax, values...)

	anomalies, err := DetectAnomalies(s, series.TempMax, DefaultAnomalyThreshold)
	require.NoError(t, err)
	assert.Empty(t, anomalies, "zero variance yields no anomalies, not a division by zero")
}

func TestDetectAnomaliesInvalidThreshold(t *testing.T) {
	s := seriesOf(series.TempMax, 20, 21, 22)

	_, err := DetectAnomalies(s, series.TempMax, 0)
	assert.ErrorIs(t, err, ErrInvalidThreshold)

	_, err = DetectAnomalies(s, series.TempMax, -1)
	assert.ErrorIs(t, err, ErrInvalidThreshold)
}

func TestDetectAnomaliesIgnoresMissingDays(t *testing.T) {
	records := []series.Record{
		series.NewRecord(day(11)), // no temperature observed
	}
	for i := 0; i < 10; i++ {
		v := 20.0
		if i == 9 {
			v = 45
		}
		records = append(records, series.NewRecord(day(i+1)).With(series.TempMax, v))
	}
	s := series.New(records...)

	anomalies, err := DetectAnomalies(s, series.TempMax, DefaultAnomalyThreshold)
	require.NoError(t, err)
	require.Len(t, anomalies, 1)
	assert.Equal(t, day(10), anomalies[0].Date)
}
