package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/tdhoang/weather-insight/internal/weather"
)

// AppConfig holds runtime configuration loaded from the environment.
type AppConfig struct {
	// FetchInterval controls how often the scheduler refreshes each
	// tracked location.
	FetchInterval time.Duration

	// Locations to track.
	Locations []weather.Location

	// HistoryDays is how far back a refresh fetches.
	HistoryDays int

	// StoreMaxDays caps in-memory records per location (0 = unlimited).
	StoreMaxDays int

	// CacheDir is where CSV snapshots are written; empty disables the
	// file cache.
	CacheDir string

	HTTPTimeout time.Duration
	Port        string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	intervalStr := getenvDefault("FETCH_INTERVAL", "1h")
	interval, err := time.ParseDuration(intervalStr)
	if err != nil {
		return nil, fmt.Errorf("invalid FETCH_INTERVAL: %w", err)
	}
	cfg.FetchInterval = interval

	cfg.HistoryDays = getenvInt("HISTORY_DAYS", 90)
	cfg.StoreMaxDays = getenvInt("STORE_MAX_DAYS", 730)
	cfg.CacheDir = getenvDefault("CACHE_DIR", "data/cache")

	timeoutStr := getenvDefault("HTTP_TIMEOUT", "15s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	cfg.Port = getenvDefault("PORT", "8080")

	locs, err := loadLocations()
	if err != nil {
		return nil, err
	}
	cfg.Locations = locs

	return cfg, nil
}

// loadLocations parses LOCATIONS, a semicolon-separated list of
// "Name,lat,lon" entries, e.g. "Hanoi,21.0278,105.8342;Da Nang,16.0544,108.2022".
func loadLocations() ([]weather.Location, error) {
	raw := getenvDefault("LOCATIONS", "Hanoi,21.0278,105.8342;Da Nang,16.0544,108.2022;Ho Chi Minh City,10.8231,106.6297")

	var locs []weather.Location
	for _, entry := range strings.Split(raw, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.Split(entry, ",")
		if len(parts) != 3 {
			return nil, fmt.Errorf("invalid location entry %q: want Name,lat,lon", entry)
		}
		lat, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid latitude in %q: %w", entry, err)
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid longitude in %q: %w", entry, err)
		}
		loc := weather.Location{
			Name: strings.TrimSpace(parts[0]),
			Lat:  lat,
			Lon:  lon,
		}
		if err := loc.Validate(); err != nil {
			return nil, fmt.Errorf("invalid location %q: %w", entry, err)
		}
		locs = append(locs, loc)
	}

	return locs, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}
