package analysis

import (
	"errors"
	"fmt"
	"time"

	"github.com/tdhoang/weather-insight/internal/series"
)

// DefaultTrendWindow is the moving-average window in days.
const DefaultTrendWindow = 7

// The two trend-labelling thresholds are intentionally different: one
// classifies a single day-to-day delta, the other a whole-series OLS
// slope per day. Do not unify them.
const (
	deltaTrendThreshold = 0.5
	slopeTrendThreshold = 0.2
)

// Trend direction labels.
const (
	TrendIncreasing = "increasing"
	TrendDecreasing = "decreasing"
	TrendStable     = "stable"
)

// ErrInvalidWindow indicates a non-positive moving-average window.
var ErrInvalidWindow = errors.New("moving-average window must be at least 1")

// TrendPoint augments one daily record with its derived trend fields.
// Nil fields are undefined: Value when the metric is missing that day,
// MovingAverage where the centered window does not fully fit or covers
// a gap, Delta on the first row or next to a gap. Direction is empty
// exactly when Delta is nil.
type TrendPoint struct {
	Date          time.Time `json:"date"`
	Value         *float64  `json:"value,omitempty"`
	MovingAverage *float64  `json:"moving_average,omitempty"`
	Delta         *float64  `json:"delta,omitempty"`
	Direction     string    `json:"direction,omitempty"`
}

// ComputeTrend sorts the series ascending by date and derives a
// centered moving average, day-to-day deltas, and a per-point direction
// label for the metric.
func ComputeTrend(s *series.Series, metric series.Metric, window int) ([]TrendPoint, error) {
	if window < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidWindow, window)
	}

	sorted := s.SortedByDate()
	points := make([]TrendPoint, sorted.Len())

	values := make([]*float64, sorted.Len())
	for i, r := range sorted.Records {
		points[i] = TrendPoint{Date: r.Date}
		if v, ok := r.Value(metric); ok {
			v := v
			values[i] = &v
			points[i].Value = &v
		}
	}

	for i := range points {
		lo := i - window/2
		hi := lo + window - 1
		if ma, ok := windowMean(values, lo, hi); ok {
			points[i].MovingAverage = ptr(ma)
		}

		if i == 0 || values[i] == nil || values[i-1] == nil {
			continue
		}
		delta := *values[i] - *values[i-1]
		points[i].Delta = ptr(delta)
		points[i].Direction = deltaDirection(delta)
	}

	return points, nil
}

// windowMean averages values[lo..hi]; undefined when the window runs
// past either end or any value inside it is missing.
func windowMean(values []*float64, lo, hi int) (float64, bool) {
	if lo < 0 || hi >= len(values) {
		return 0, false
	}
	total := 0.0
	for i := lo; i <= hi; i++ {
		if values[i] == nil {
			return 0, false
		}
		total += *values[i]
	}
	return total / float64(hi-lo+1), true
}

func deltaDirection(delta float64) string {
	switch {
	case delta > deltaTrendThreshold:
		return TrendIncreasing
	case delta < -deltaTrendThreshold:
		return TrendDecreasing
	default:
		return TrendStable
	}
}

// FitLinearTrend fits an ordinary least-squares line to the values
// against their 0-based index and returns the slope in metric units per
// day. Fewer than two points have no defined slope and yield 0.
func FitLinearTrend(values []float64) float64 {
	n := float64(len(values))
	if n < 2 {
		return 0
	}

	var sumX, sumY, sumXY, sumXX float64
	for i, v := range values {
		x := float64(i)
		sumX += x
		sumY += v
		sumXY += x * v
		sumXX += x * x
	}

	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0
	}
	return (n*sumXY - sumX*sumY) / denom
}

// SlopeDirection classifies a whole-series per-day slope.
func SlopeDirection(slope float64) string {
	switch {
	case slope > slopeTrendThreshold:
		return TrendIncreasing
	case slope < -slopeTrendThreshold:
		return TrendDecreasing
	default:
		return TrendStable
	}
}
