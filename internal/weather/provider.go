package weather

import (
	"context"
	"time"

	"github.com/tdhoang/weather-insight/internal/series"
)

// Provider abstracts the upstream weather data source.
type Provider interface {
	Name() string
	FetchCurrent(ctx context.Context, loc Location) (Current, error)
	FetchForecast(ctx context.Context, loc Location, days int) (*series.Series, error)
	FetchHistorical(ctx context.Context, loc Location, from, to time.Time) (*series.Series, error)
}

// Geocoder resolves free-text place queries to coordinates.
type Geocoder interface {
	Search(ctx context.Context, query string) ([]Place, error)
}

// Store is the contract for keeping the latest series per location.
type Store interface {
	SaveSeries(loc Location, s *series.Series)
	GetSeries(loc Location) (*series.Series, bool)
}

// Cache persists series snapshots across restarts.
type Cache interface {
	Save(key string, s *series.Series) error
	Load(key string) (*series.Series, bool, error)
}
