package weather

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tdhoang/weather-insight/internal/analysis"
	"github.com/tdhoang/weather-insight/internal/observability"
	"github.com/tdhoang/weather-insight/internal/report"
	"github.com/tdhoang/weather-insight/internal/series"
)

// ErrNoData is returned when no series is available for a location.
// "Not fetched yet" is an expected steady state, not a fault.
var ErrNoData = errors.New("no weather data for location")

const defaultHistoryDays = 90

// ServiceConfig bundles the collaborators of a Service.
type ServiceConfig struct {
	Store    Store
	Cache    Cache
	Provider Provider
	Geocoder Geocoder
	Metrics  *observability.Metrics
	Logger   *slog.Logger
	Reports  *report.Generator

	// Thresholds is the alert profile used for this deployment's
	// climate; zero value means the default profile.
	Thresholds analysis.AlertThresholds

	// HistoryDays is how far back Refresh fetches.
	HistoryDays int
}

// Service orchestrates fetching, caching, and analysis. All analysis
// runs over an immutable snapshot taken per call, so concurrent
// requests for different locations need no coordination.
type Service struct {
	store       Store
	cache       Cache
	provider    Provider
	geocoder    Geocoder
	metrics     *observability.Metrics
	logger      *slog.Logger
	reports     *report.Generator
	thresholds  analysis.AlertThresholds
	historyDays int
}

// NewService creates a Service, filling unset config with defaults.
func NewService(cfg ServiceConfig) *Service {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Reports == nil {
		cfg.Reports = report.NewGenerator(nil)
	}
	if cfg.Thresholds == (analysis.AlertThresholds{}) {
		cfg.Thresholds = analysis.DefaultAlertThresholds()
	}
	if cfg.HistoryDays <= 0 {
		cfg.HistoryDays = defaultHistoryDays
	}
	return &Service{
		store:       cfg.Store,
		cache:       cfg.Cache,
		provider:    cfg.Provider,
		geocoder:    cfg.Geocoder,
		metrics:     cfg.Metrics,
		logger:      cfg.Logger,
		reports:     cfg.Reports,
		thresholds:  cfg.Thresholds,
		historyDays: cfg.HistoryDays,
	}
}

// Refresh fetches the trailing historical window for a location and
// saves it to the store and the cache.
func (s *Service) Refresh(ctx context.Context, loc Location) error {
	if err := loc.Validate(); err != nil {
		return err
	}

	to := time.Now().UTC().AddDate(0, 0, -1)
	from := to.AddDate(0, 0, -(s.historyDays - 1))

	ser, err := s.provider.FetchHistorical(ctx, loc, from, to)
	if err != nil {
		s.countFetch(loc, "error")
		return fmt.Errorf("refresh %s: %w", loc.Key(), err)
	}
	s.countFetch(loc, "success")

	s.store.SaveSeries(loc, ser)
	if s.metrics != nil {
		s.metrics.StoredDays.WithLabelValues(loc.Name).Set(float64(ser.Len()))
	}

	if s.cache != nil {
		if err := s.cache.Save(loc.Key(), ser); err != nil {
			// A cold cache only costs a refetch after restart.
			s.logger.Warn("cache save failed", "location", loc.Key(), "error", err)
		}
	}

	s.logger.Info("refreshed location", "location", loc.Key(), "days", ser.Len())
	return nil
}

// seriesFor returns the stored series for a location, falling back to
// the file cache and repopulating the store on a hit.
func (s *Service) seriesFor(loc Location) (*series.Series, error) {
	if ser, ok := s.store.GetSeries(loc); ok {
		return ser, nil
	}
	if s.cache != nil {
		ser, ok, err := s.cache.Load(loc.Key())
		if err != nil {
			s.logger.Warn("cache load failed", "location", loc.Key(), "error", err)
		} else if ok {
			s.store.SaveSeries(loc, ser)
			return ser, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNoData, loc.Key())
}

// window returns the slice of the stored series between from and to;
// zero times mean an open end.
func (s *Service) window(loc Location, from, to time.Time) (*series.Series, error) {
	ser, err := s.seriesFor(loc)
	if err != nil {
		return nil, err
	}
	if from.IsZero() && to.IsZero() {
		return ser, nil
	}
	if to.IsZero() {
		to = time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)
	}
	return ser.Between(from, to), nil
}

// History returns the stored daily records for the window.
func (s *Service) History(loc Location, from, to time.Time) (*series.Series, error) {
	return s.window(loc, from, to)
}

// Current fetches live conditions from the provider.
func (s *Service) Current(ctx context.Context, loc Location) (Current, error) {
	if err := loc.Validate(); err != nil {
		return Current{}, err
	}
	cur, err := s.provider.FetchCurrent(ctx, loc)
	if err != nil {
		s.countFetch(loc, "error")
		return Current{}, err
	}
	s.countFetch(loc, "success")
	return cur, nil
}

// Forecast fetches a daily forecast series from the provider.
func (s *Service) Forecast(ctx context.Context, loc Location, days int) (*series.Series, error) {
	if err := loc.Validate(); err != nil {
		return nil, err
	}
	if days < 1 {
		return nil, errors.New("forecast days must be at least 1")
	}
	ser, err := s.provider.FetchForecast(ctx, loc, days)
	if err != nil {
		s.countFetch(loc, "error")
		return nil, err
	}
	s.countFetch(loc, "success")
	return ser, nil
}

// AnalysisResult is the full analysis snapshot for one window.
type AnalysisResult struct {
	ID         string                   `json:"id"`
	Location   Location                 `json:"location"`
	From       time.Time                `json:"from"`
	To         time.Time                `json:"to"`
	Days       int                      `json:"days"`
	Statistics analysis.Statistics      `json:"statistics"`
	Indices    analysis.ClimateIndices  `json:"indices"`
	Patterns   analysis.Patterns        `json:"patterns"`
	Alerts     []analysis.Alert         `json:"alerts"`
	Summary    string                   `json:"summary"`
}

// Analyze runs the full analytical pipeline over the stored window.
func (s *Service) Analyze(loc Location, from, to time.Time) (AnalysisResult, error) {
	ser, err := s.window(loc, from, to)
	if err != nil {
		return AnalysisResult{}, err
	}
	s.countAnalysis("full")

	start, end, _ := ser.DateRange()
	return AnalysisResult{
		ID:         uuid.NewString(),
		Location:   loc,
		From:       start,
		To:         end,
		Days:       ser.Len(),
		Statistics: analysis.ComputeStatistics(ser, ""),
		Indices:    analysis.ComputeIndices(ser),
		Patterns:   analysis.DetectPatterns(ser),
		Alerts:     analysis.GenerateAlerts(ser, s.thresholds),
		Summary:    analysis.Summarize(ser, loc.Name, s.thresholds),
	}, nil
}

// Anomalies flags outliers for a metric over the stored window.
func (s *Service) Anomalies(loc Location, metric string, threshold float64, from, to time.Time) ([]analysis.Anomaly, error) {
	m, err := series.ParseMetric(metric)
	if err != nil {
		return nil, err
	}
	ser, err := s.window(loc, from, to)
	if err != nil {
		return nil, err
	}
	s.countAnalysis("anomalies")
	return analysis.DetectAnomalies(ser, m, threshold)
}

// Trend computes the moving-average trend for a metric.
func (s *Service) Trend(loc Location, metric string, window int, from, to time.Time) ([]analysis.TrendPoint, error) {
	m, err := series.ParseMetric(metric)
	if err != nil {
		return nil, err
	}
	ser, err := s.window(loc, from, to)
	if err != nil {
		return nil, err
	}
	s.countAnalysis("trend")
	return analysis.ComputeTrend(ser, m, window)
}

// Monthly returns calendar-month aggregates over the stored window.
func (s *Service) Monthly(loc Location, from, to time.Time) ([]analysis.MonthlyAggregate, error) {
	ser, err := s.window(loc, from, to)
	if err != nil {
		return nil, err
	}
	s.countAnalysis("monthly")
	return analysis.MonthlyAggregates(ser), nil
}

// Compare contrasts two stored windows of the same location.
func (s *Service) Compare(loc Location, from1, to1, from2, to2 time.Time) (analysis.PeriodComparison, error) {
	s1, err := s.window(loc, from1, to1)
	if err != nil {
		return analysis.PeriodComparison{}, err
	}
	s2, err := s.window(loc, from2, to2)
	if err != nil {
		return analysis.PeriodComparison{}, err
	}
	s.countAnalysis("compare")
	name1 := fmt.Sprintf("%s to %s", from1.Format("2006-01-02"), to1.Format("2006-01-02"))
	name2 := fmt.Sprintf("%s to %s", from2.Format("2006-01-02"), to2.Format("2006-01-02"))
	return analysis.ComparePeriods(s1, s2, name1, name2), nil
}

// Report renders a narrative report over the stored window.
func (s *Service) Report(loc Location, reportType string, from, to time.Time) (string, error) {
	ser, err := s.window(loc, from, to)
	if err != nil {
		return "", err
	}

	start := time.Now()
	text := s.reports.Generate(ser, loc.Name, report.ParseType(reportType))
	if s.metrics != nil {
		s.metrics.ReportDuration.Observe(time.Since(start).Seconds())
	}
	return text, nil
}

// SearchLocations resolves a free-text place query.
func (s *Service) SearchLocations(ctx context.Context, query string) ([]Place, error) {
	if s.geocoder == nil {
		return nil, errors.New("no geocoder configured")
	}
	return s.geocoder.Search(ctx, query)
}

func (s *Service) countFetch(loc Location, outcome string) {
	if s.metrics != nil {
		s.metrics.FetchTotal.WithLabelValues(loc.Name, outcome).Inc()
	}
}

func (s *Service) countAnalysis(kind string) {
	if s.metrics != nil {
		s.metrics.AnalysisRequests.WithLabelValues(kind).Inc()
	}
}
