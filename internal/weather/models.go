// Package weather orchestrates data acquisition and analysis: it
// fetches daily series from a provider, keeps them in a store backed by
// a flat-file cache, and exposes the analytical operations to the API
// layer.
package weather

import (
	"fmt"
	"strings"
	"time"
)

// Location is a geographic point we track weather for.
type Location struct {
	Name string  `json:"name"`
	Lat  float64 `json:"latitude"`
	Lon  float64 `json:"longitude"`
}

// Key returns a canonical string key for indexing this location in
// stores and caches.
func (l Location) Key() string {
	return fmt.Sprintf("%s:%.4f,%.4f", strings.ToLower(strings.TrimSpace(l.Name)), l.Lat, l.Lon)
}

// Validate checks the coordinates are on the globe.
func (l Location) Validate() error {
	if l.Lat < -90 || l.Lat > 90 {
		return fmt.Errorf("latitude %v out of range [-90, 90]", l.Lat)
	}
	if l.Lon < -180 || l.Lon > 180 {
		return fmt.Errorf("longitude %v out of range [-180, 180]", l.Lon)
	}
	return nil
}

// Current is a point-in-time conditions snapshot for a location.
type Current struct {
	Location      Location  `json:"location"`
	Timestamp     time.Time `json:"timestamp"`
	Temperature   float64   `json:"temperature"`
	Humidity      float64   `json:"humidity"`
	Precipitation float64   `json:"precipitation"`
	WindSpeed     float64   `json:"wind_speed"`
	WindDirection float64   `json:"wind_direction"`
	Pressure      float64   `json:"pressure"`
}

// Place is a geocoding search result.
type Place struct {
	Name     string  `json:"name"`
	Country  string  `json:"country"`
	Admin1   string  `json:"admin1,omitempty"`
	Lat      float64 `json:"latitude"`
	Lon      float64 `json:"longitude"`
	Timezone string  `json:"timezone,omitempty"`
}
