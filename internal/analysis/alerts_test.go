package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tdhoang/weather-insight/internal/series"
)

func findAlert(alerts []Alert, category string) (Alert, bool) {
	for _, a := range alerts {
		if a.Category == category {
			return a, true
		}
	}
	return Alert{}, false
}

func TestGenerateAlertsExtremeHeatSupersedesHighHeat(t *testing.T) {
	s := seriesOf(series.TempMax, 30, 39, 31)

	alerts := GenerateAlerts(s, DefaultAlertThresholds())
	heat, ok := findAlert(alerts, CategoryHeat)
	require.True(t, ok)
	assert.Equal(t, SeverityDanger, heat.Severity)
	assert.Equal(t, 1, heat.Days)
	assert.Equal(t, 39.0, heat.Extreme)

	// One alert per category, the 39°C day must not also trigger
	// the warning tier.
	count := 0
	for _, a := range alerts {
		if a.Category == CategoryHeat {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestGenerateAlertsHighHeatWarning(t *testing.T) {
	s := seriesOf(series.TempMax, 36, 37, 30)

	alerts := GenerateAlerts(s, DefaultAlertThresholds())
	heat, ok := findAlert(alerts, CategoryHeat)
	require.True(t, ok)
	assert.Equal(t, SeverityWarning, heat.Severity)
	assert.Equal(t, 2, heat.Days)
	assert.Equal(t, 37.0, heat.Extreme)
}

func TestGenerateAlertsColdSeverityByMinimum(t *testing.T) {
	mild := seriesOf(series.TempMax, 14, 12, 20)
	alerts := GenerateAlerts(mild, DefaultAlertThresholds())
	cold, ok := findAlert(alerts, CategoryCold)
	require.True(t, ok)
	assert.Equal(t, SeverityInfo, cold.Severity)
	assert.Equal(t, 12.0, cold.Extreme)

	freezing := seriesOf(series.TempMax, 14, 3, 20)
	alerts = GenerateAlerts(freezing, DefaultAlertThresholds())
	cold, ok = findAlert(alerts, CategoryCold)
	require.True(t, ok)
	assert.Equal(t, SeverityDanger, cold.Severity)
	assert.Equal(t, 3.0, cold.Extreme)
}

func TestGenerateAlertsHeatAndColdAreIndependent(t *testing.T) {
	s := seriesOf(series.TempMax, 39, 4, 25)

	alerts := GenerateAlerts(s, DefaultAlertThresholds())
	_, hasHeat := findAlert(alerts, CategoryHeat)
	_, hasCold := findAlert(alerts, CategoryCold)
	assert.True(t, hasHeat)
	assert.True(t, hasCold)
}

func TestGenerateAlertsRainSeverity(t *testing.T) {
	heavy := seriesOf(series.Precipitation, 60, 10, 0)
	alerts := GenerateAlerts(heavy, DefaultAlertThresholds())
	rain, ok := findAlert(alerts, CategoryPrecipitation)
	require.True(t, ok)
	assert.Equal(t, SeverityWarning, rain.Severity)

	torrential := seriesOf(series.Precipitation, 60, 120, 0)
	alerts = GenerateAlerts(torrential, DefaultAlertThresholds())
	rain, ok = findAlert(alerts, CategoryPrecipitation)
	require.True(t, ok)
	assert.Equal(t, SeverityDanger, rain.Severity)
	assert.Equal(t, 2, rain.Days)
	assert.Equal(t, 120.0, rain.Extreme)
}

func TestGenerateAlertsWindSeverity(t *testing.T) {
	breezy := seriesOf(series.WindSpeedMax, 30, 10)
	alerts := GenerateAlerts(breezy, DefaultAlertThresholds())
	wind, ok := findAlert(alerts, CategoryWind)
	require.True(t, ok)
	assert.Equal(t, SeverityWarning, wind.Severity)

	stormy := seriesOf(series.WindSpeedMax, 30, 45)
	alerts = GenerateAlerts(stormy, DefaultAlertThresholds())
	wind, ok = findAlert(alerts, CategoryWind)
	require.True(t, ok)
	assert.Equal(t, SeverityDanger, wind.Severity)
}

func TestGenerateAlertsQuietSeries(t *testing.T) {
	s := series.New(
		series.NewRecord(day(1)).With(series.TempMax, 25).With(series.Precipitation, 2).With(series.WindSpeedMax, 10),
		series.NewRecord(day(2)).With(series.TempMax, 27).With(series.Precipitation, 0).With(series.WindSpeedMax, 12),
	)

	alerts := GenerateAlerts(s, DefaultAlertThresholds())
	assert.Empty(t, alerts)
}

func TestGenerateAlertsCustomThresholds(t *testing.T) {
	th := DefaultAlertThresholds()
	th.HighHeat = 30
	th.ExtremeHeat = 33

	s := seriesOf(series.TempMax, 31, 29)
	alerts := GenerateAlerts(s, th)
	heat, ok := findAlert(alerts, CategoryHeat)
	require.True(t, ok)
	assert.Equal(t, SeverityWarning, heat.Severity)
}
