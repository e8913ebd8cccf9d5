package analysis

import (
	"fmt"
	"math"

	"github.com/tdhoang/weather-insight/internal/series"
)

// MetricComparison holds the per-period values of one compared metric
// and their difference (period2 minus period1).
type MetricComparison struct {
	Period1    float64 `json:"period1"`
	Period2    float64 `json:"period2"`
	Difference float64 `json:"difference"`
	Change     string  `json:"change"`
}

// PeriodComparison compares two time windows of the same location.
// A metric is only compared when both periods observed it.
type PeriodComparison struct {
	Period1Name   string            `json:"period1"`
	Period2Name   string            `json:"period2"`
	Temperature   *MetricComparison `json:"temperature,omitempty"`
	Precipitation *MetricComparison `json:"precipitation,omitempty"`
}

// ComparePeriods compares mean temperature and total precipitation
// between two series.
func ComparePeriods(s1, s2 *series.Series, name1, name2 string) PeriodComparison {
	cmp := PeriodComparison{Period1Name: name1, Period2Name: name2}

	for _, col := range series.TemperatureColumns() {
		if !s1.Has(col) || !s2.Has(col) {
			continue
		}
		t1 := round1(mean(s1.Values(col)))
		t2 := round1(mean(s2.Values(col)))
		cmp.Temperature = &MetricComparison{
			Period1:    t1,
			Period2:    t2,
			Difference: round1(t2 - t1),
			Change:     changeDescription(t2-t1, "°C"),
		}
		break
	}

	if s1.Has(series.Precipitation) && s2.Has(series.Precipitation) {
		p1 := round1(sum(s1.Values(series.Precipitation)))
		p2 := round1(sum(s2.Values(series.Precipitation)))
		cmp.Precipitation = &MetricComparison{
			Period1:    p1,
			Period2:    p2,
			Difference: round1(p2 - p1),
			Change:     changeDescription(p2-p1, "mm"),
		}
	}

	return cmp
}

func changeDescription(diff float64, unit string) string {
	direction := "up"
	if diff < 0 {
		direction = "down"
	}
	return fmt.Sprintf("%s %.1f%s", direction, math.Abs(diff), unit)
}
