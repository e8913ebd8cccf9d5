// Package report renders narrative Markdown weather reports from a
// daily series. Output is plain text; no rendering library is involved.
package report

import (
	"github.com/jonboulle/clockwork"

	"github.com/tdhoang/weather-insight/internal/series"
)

// Type selects a report template.
type Type string

const (
	TypeDaily   Type = "daily"
	TypeWeekly  Type = "weekly"
	TypeMonthly Type = "monthly"
	TypeClimate Type = "climate"
)

// NoDataMessage is the sentinel returned for an empty series.
const NoDataMessage = "No weather data available to build a report."

// ParseType maps a report-type string to a Type. Unknown values fall
// back to the weekly report.
func ParseType(s string) Type {
	switch Type(s) {
	case TypeDaily, TypeWeekly, TypeMonthly, TypeClimate:
		return Type(s)
	default:
		return TypeWeekly
	}
}

type templateFunc func(s *series.Series, location string) string

// Generator renders reports. The clock only feeds the generation
// footer, so tests inject a fake clock for byte-identical output.
type Generator struct {
	clock     clockwork.Clock
	templates map[Type]templateFunc
}

// NewGenerator creates a Generator. A nil clock means real time.
func NewGenerator(clock clockwork.Clock) *Generator {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	g := &Generator{clock: clock}
	g.templates = map[Type]templateFunc{
		TypeDaily:   g.daily,
		TypeWeekly:  g.weekly,
		TypeMonthly: g.monthly,
		TypeClimate: g.climate,
	}
	return g
}

// Generate renders the report of the given type for the series.
// Unknown types render the weekly report.
func (g *Generator) Generate(s *series.Series, location string, typ Type) string {
	if s.IsEmpty() {
		return NoDataMessage
	}
	tmpl, ok := g.templates[typ]
	if !ok {
		tmpl = g.templates[TypeWeekly]
	}
	return tmpl(s, location)
}

func (g *Generator) footer() string {
	return "*Report generated automatically at " + g.clock.Now().Format("15:04 02/01/2006") + "*"
}
