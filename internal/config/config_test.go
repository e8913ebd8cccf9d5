package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 90, cfg.HistoryDays)
	assert.Equal(t, 730, cfg.StoreMaxDays)
	assert.NotEmpty(t, cfg.Locations)
}

func TestLoadParsesLocations(t *testing.T) {
	t.Setenv("LOCATIONS", "Hanoi,21.0278,105.8342; Da Nang , 16.0544 , 108.2022")

	cfg, err := Load()
	require.NoError(t, err)
	require.Len(t, cfg.Locations, 2)

	assert.Equal(t, "Hanoi", cfg.Locations[0].Name)
	assert.Equal(t, 21.0278, cfg.Locations[0].Lat)
	assert.Equal(t, "Da Nang", cfg.Locations[1].Name)
	assert.Equal(t, 108.2022, cfg.Locations[1].Lon)
}

func TestLoadRejectsMalformedLocation(t *testing.T) {
	t.Setenv("LOCATIONS", "Hanoi,21.0278")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsOutOfRangeCoordinates(t *testing.T) {
	t.Setenv("LOCATIONS", "Nowhere,123.0,10.0")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsBadInterval(t *testing.T) {
	t.Setenv("FETCH_INTERVAL", "often")

	_, err := Load()
	assert.Error(t, err)
}
