package analysis

import (
	"sort"

	"github.com/tdhoang/weather-insight/internal/series"
)

// MonthlyAggregate rolls one calendar month of daily records up into
// summary values, rounded to one decimal. Nil fields mean the source
// column had no observed values that month.
type MonthlyAggregate struct {
	Month         string   `json:"month"` // YYYY-MM
	TempMean      *float64 `json:"temp_mean,omitempty"`
	TempMax       *float64 `json:"temp_max,omitempty"`
	TempMin       *float64 `json:"temp_min,omitempty"`
	Precipitation *float64 `json:"precipitation_sum,omitempty"`
	RainyDays     *int     `json:"rainy_days,omitempty"`
	WindSpeedMean *float64 `json:"wind_speed_mean,omitempty"`
}

// MonthlyAggregates buckets the series by calendar month, ascending.
// The monthly mean temperature uses temp_mean when present, otherwise
// the midpoint of temp_max and temp_min on days with both.
func MonthlyAggregates(s *series.Series) []MonthlyAggregate {
	if s.IsEmpty() {
		return nil
	}

	type bucket struct {
		tempMeans []float64
		tempMaxs  []float64
		tempMins  []float64
		precip    []float64
		wind      []float64
	}
	buckets := make(map[string]*bucket)

	haveTempMean := s.Has(series.TempMean)

	for _, r := range s.Records {
		key := r.Date.Format("2006-01")
		b, ok := buckets[key]
		if !ok {
			b = &bucket{}
			buckets[key] = b
		}

		if haveTempMean {
			if v, ok := r.Value(series.TempMean); ok {
				b.tempMeans = append(b.tempMeans, v)
			}
		} else {
			hi, okHi := r.Value(series.TempMax)
			lo, okLo := r.Value(series.TempMin)
			if okHi && okLo {
				b.tempMeans = append(b.tempMeans, (hi+lo)/2)
			}
		}
		if v, ok := r.Value(series.TempMax); ok {
			b.tempMaxs = append(b.tempMaxs, v)
		}
		if v, ok := r.Value(series.TempMin); ok {
			b.tempMins = append(b.tempMins, v)
		}
		if v, ok := r.Value(series.Precipitation); ok {
			b.precip = append(b.precip, v)
		}
		if v, ok := r.Value(series.WindSpeedMax); ok {
			b.wind = append(b.wind, v)
		}
	}

	months := make([]string, 0, len(buckets))
	for key := range buckets {
		months = append(months, key)
	}
	sort.Strings(months)

	out := make([]MonthlyAggregate, 0, len(months))
	for _, month := range months {
		b := buckets[month]
		agg := MonthlyAggregate{Month: month}
		if len(b.tempMeans) > 0 {
			agg.TempMean = ptr(round1(mean(b.tempMeans)))
		}
		if len(b.tempMaxs) > 0 {
			agg.TempMax = ptr(round1(maxOf(b.tempMaxs)))
		}
		if len(b.tempMins) > 0 {
			agg.TempMin = ptr(round1(minOf(b.tempMins)))
		}
		if len(b.precip) > 0 {
			agg.Precipitation = ptr(round1(sum(b.precip)))
			rainy := countAbove(b.precip, 0)
			agg.RainyDays = &rainy
		}
		if len(b.wind) > 0 {
			agg.WindSpeedMean = ptr(round1(mean(b.wind)))
		}
		out = append(out, agg)
	}
	return out
}
