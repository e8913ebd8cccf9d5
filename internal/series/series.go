// Package series holds the tabular weather time series that every
// analysis component consumes: one record per calendar date, with a
// fixed vocabulary of optional numeric metrics. A missing metric is
// absent, never zero.
package series

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// Metric identifies a named numeric column of the series.
type Metric string

const (
	TempMax       Metric = "temp_max"
	TempMin       Metric = "temp_min"
	TempMean      Metric = "temp_mean"
	Temperature   Metric = "temperature"
	Precipitation Metric = "precipitation"
	WindSpeedMax  Metric = "wind_speed_max"
	WindSpeed     Metric = "wind_speed"
	Humidity      Metric = "humidity"
	Pressure      Metric = "pressure"
)

// ErrUnknownMetric indicates a caller asked for a metric outside the
// fixed vocabulary. This is an integration mistake, not a data gap.
var ErrUnknownMetric = errors.New("unknown metric")

// Metrics lists the full vocabulary in canonical column order.
func Metrics() []Metric {
	return []Metric{
		TempMax, TempMin, TempMean, Temperature,
		Precipitation, WindSpeedMax, WindSpeed, Humidity, Pressure,
	}
}

// ParseMetric validates a metric name supplied by a caller.
func ParseMetric(name string) (Metric, error) {
	for _, m := range Metrics() {
		if string(m) == name {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMetric, name)
}

// Record is a single day's observations. Values holds only the metrics
// actually observed for that day.
type Record struct {
	Date   time.Time
	Values map[Metric]float64
}

// NewRecord creates an empty record for the given date.
func NewRecord(date time.Time) Record {
	return Record{Date: date, Values: make(map[Metric]float64)}
}

// With returns a copy of the record with the metric set. Handy for
// building test fixtures and provider responses.
func (r Record) With(m Metric, v float64) Record {
	values := make(map[Metric]float64, len(r.Values)+1)
	for k, val := range r.Values {
		values[k] = val
	}
	values[m] = v
	return Record{Date: r.Date, Values: values}
}

// Value returns the metric value and whether it was observed.
func (r Record) Value(m Metric) (float64, bool) {
	v, ok := r.Values[m]
	return v, ok
}

// Series is an ordered sequence of daily records for one location.
// Analyses treat it as an immutable snapshot; methods that need a
// different ordering return copies.
type Series struct {
	Records []Record
}

// New builds a series from records, keeping the given order. Records
// sharing a calendar date are collapsed, last one wins.
func New(records ...Record) *Series {
	out := make([]Record, 0, len(records))
	seen := make(map[string]int, len(records))
	for _, r := range records {
		key := r.Date.Format("2006-01-02")
		if i, ok := seen[key]; ok {
			out[i] = r
			continue
		}
		seen[key] = len(out)
		out = append(out, r)
	}
	return &Series{Records: out}
}

// Len returns the number of daily records.
func (s *Series) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Records)
}

// IsEmpty reports whether the series holds no records.
func (s *Series) IsEmpty() bool { return s.Len() == 0 }

// SortedByDate returns a copy sorted ascending by date. The sort is
// stable so same-date records keep their relative order.
func (s *Series) SortedByDate() *Series {
	records := make([]Record, s.Len())
	copy(records, s.Records)
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date.Before(records[j].Date)
	})
	return &Series{Records: records}
}

// Values extracts the non-missing values of a metric in record order.
func (s *Series) Values(m Metric) []float64 {
	if s == nil {
		return nil
	}
	out := make([]float64, 0, len(s.Records))
	for _, r := range s.Records {
		if v, ok := r.Value(m); ok {
			out = append(out, v)
		}
	}
	return out
}

// Has reports whether at least one record observed the metric.
func (s *Series) Has(m Metric) bool {
	if s == nil {
		return false
	}
	for _, r := range s.Records {
		if _, ok := r.Value(m); ok {
			return true
		}
	}
	return false
}

// Between returns the records with from <= date <= to, preserving order.
func (s *Series) Between(from, to time.Time) *Series {
	out := make([]Record, 0, s.Len())
	for _, r := range s.Records {
		if r.Date.Before(from) || r.Date.After(to) {
			continue
		}
		out = append(out, r)
	}
	return &Series{Records: out}
}

// Latest returns the record with the most recent date.
func (s *Series) Latest() (Record, bool) {
	if s.IsEmpty() {
		return Record{}, false
	}
	latest := s.Records[0]
	for _, r := range s.Records[1:] {
		if r.Date.After(latest.Date) {
			latest = r
		}
	}
	return latest, true
}

// DateRange returns the earliest and latest dates in the series.
func (s *Series) DateRange() (from, to time.Time, ok bool) {
	if s.IsEmpty() {
		return time.Time{}, time.Time{}, false
	}
	from, to = s.Records[0].Date, s.Records[0].Date
	for _, r := range s.Records[1:] {
		if r.Date.Before(from) {
			from = r.Date
		}
		if r.Date.After(to) {
			to = r.Date
		}
	}
	return from, to, true
}

// Resolve probes candidate columns in order and returns the first one
// present in the series. All components share this so the precedence of
// ambiguous names (temp_max over temp_mean over temperature, and
// wind_speed_max over wind_speed) is defined in exactly one place.
func (s *Series) Resolve(candidates ...Metric) (Metric, bool) {
	for _, m := range candidates {
		if s.Has(m) {
			return m, true
		}
	}
	return "", false
}

// TemperatureColumns is the resolution order for "the" temperature column.
func TemperatureColumns() []Metric {
	return []Metric{TempMax, TempMean, Temperature}
}

// WindColumns is the resolution order for "the" wind speed column.
func WindColumns() []Metric {
	return []Metric{WindSpeedMax, WindSpeed}
}
