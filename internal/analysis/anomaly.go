package analysis

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/tdhoang/weather-insight/internal/series"
)

// DefaultAnomalyThreshold is the z-score above which a value counts as
// anomalous.
const DefaultAnomalyThreshold = 2.0

// minAnomalySamples is the minimum number of observed values needed for
// the mean and deviation to be meaningful.
const minAnomalySamples = 10

// ErrInvalidThreshold indicates a caller-supplied z-score threshold
// outside the sane range.
var ErrInvalidThreshold = errors.New("z-score threshold must be positive")

// Anomaly is a daily value that deviates from the series mean by more
// than the threshold, in units of standard deviation.
type Anomaly struct {
	Date   time.Time     `json:"date"`
	Metric series.Metric `json:"metric"`
	Value  float64       `json:"value"`
	ZScore float64       `json:"z_score"`
}

// DetectAnomalies flags records whose metric value has |z| above
// threshold. Fewer than ten observed values, or a zero-variance series,
// yields no anomalies: that is sparse or degenerate data, not an error.
// Records missing the metric are never candidates.
func DetectAnomalies(s *series.Series, metric series.Metric, threshold float64) ([]Anomaly, error) {
	if threshold <= 0 {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidThreshold, threshold)
	}

	values := s.Values(metric)
	if len(values) < minAnomalySamples {
		return nil, nil
	}

	m := mean(values)
	std, ok := sampleStd(values)
	if !ok || std == 0 {
		return nil, nil
	}

	var anomalies []Anomaly
	for _, r := range s.Records {
		v, observed := r.Value(metric)
		if !observed {
			continue
		}
		z := math.Abs(v-m) / std
		if z > threshold {
			anomalies = append(anomalies, Anomaly{
				Date:   r.Date,
				Metric: metric,
				Value:  v,
				ZScore: z,
			})
		}
	}
	return anomalies, nil
}
