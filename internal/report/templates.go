package report

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/tdhoang/weather-insight/internal/analysis"
	"github.com/tdhoang/weather-insight/internal/series"
)

// Fixed commentary bands. These are narrative thresholds, distinct from
// the alert threshold profile.
const (
	hotWeekTemp      = 30.0
	coldWeekTemp     = 20.0
	wetWeekRain      = 50.0
	largeSwingRange  = 15.0
	hotMonthTemp     = 28.0
	coldMonthTemp    = 18.0
	heatWarningDays  = 10
	extremeHotTemp   = 35.0
	extremeColdTemp  = 10.0
	seasonalMinRows  = 90
	trendMinRows     = 365
	trendMinSamples  = 100
	annualTrendMinC  = 0.1
	dailyHeatTemp    = 35.0
	dailyColdTemp    = 15.0
	dailyRainNotable = 10.0
)

func (g *Generator) daily(s *series.Series, location string) string {
	latest, _ := s.Latest()

	var b strings.Builder
	fmt.Fprintf(&b, "# Daily Weather Report - %s\n\n", location)
	fmt.Fprintf(&b, "**Date:** %s\n\n", latest.Date.Format("2006-01-02"))
	b.WriteString("## Key readings\n\n")

	temp, haveTemp := firstValue(latest, series.TempMean, series.Temperature)
	if haveTemp {
		fmt.Fprintf(&b, "- **Temperature:** %.1f°C\n", temp)
	}
	if humidity, ok := latest.Value(series.Humidity); ok {
		fmt.Fprintf(&b, "- **Humidity:** %.0f%%\n", humidity)
	}
	precip, havePrecip := latest.Value(series.Precipitation)
	if havePrecip {
		fmt.Fprintf(&b, "- **Precipitation:** %.1fmm\n", precip)
	}
	if wind, ok := firstValue(latest, series.WindSpeedMax, series.WindSpeed); ok {
		fmt.Fprintf(&b, "- **Wind speed:** %.1fkm/h\n", wind)
	}

	var remarks []string
	if haveTemp {
		switch {
		case temp >= dailyHeatTemp:
			remarks = append(remarks, "**Heat warning** - very high temperature, limit time outside around midday.")
		case temp <= dailyColdTemp:
			remarks = append(remarks, "**Cold weather** - dress warmly when heading out.")
		default:
			remarks = append(remarks, "**Pleasant conditions** - suitable for outdoor activities.")
		}
	}
	if havePrecip && precip > dailyRainNotable {
		remarks = append(remarks, "**Rain** - carry an umbrella when going out.")
	}
	if len(remarks) > 0 {
		b.WriteString("\n## Remarks\n\n")
		for _, r := range remarks {
			b.WriteString(r + "\n")
		}
	}

	b.WriteString("\n" + g.footer())
	return b.String()
}

func (g *Generator) weekly(s *series.Series, location string) string {
	tempCol, _ := s.Resolve(series.TempMean, series.Temperature)
	stats := analysis.ComputeStatistics(s, tempCol)
	from, to, _ := s.DateRange()

	var b strings.Builder
	fmt.Fprintf(&b, "# Weekly Weather Report - %s\n\n", location)
	fmt.Fprintf(&b, "**Period:** %s to %s\n\n", from.Format("2006-01-02"), to.Format("2006-01-02"))
	b.WriteString("## Statistics\n")

	if temp := stats.Temperature; temp != nil {
		b.WriteString("\n### Temperature\n\n")
		fmt.Fprintf(&b, "- **Mean:** %.1f°C\n", temp.Mean)
		fmt.Fprintf(&b, "- **Max:** %.1f°C\n", temp.Max)
		fmt.Fprintf(&b, "- **Min:** %.1f°C\n", temp.Min)
	}
	if precip := stats.Precipitation; precip != nil {
		b.WriteString("\n### Precipitation\n\n")
		fmt.Fprintf(&b, "- **Total:** %.1fmm\n", precip.Total)
		fmt.Fprintf(&b, "- **Rainy days:** %d\n", precip.RainyDays)
	}

	var notes []string
	if temp := stats.Temperature; temp != nil {
		switch {
		case temp.Mean > hotWeekTemp:
			notes = append(notes, "**Hot week** - high average temperature.")
		case temp.Mean < coldWeekTemp:
			notes = append(notes, "**Cold week** - low average temperature.")
		default:
			notes = append(notes, "**Mild conditions** - comfortable temperatures.")
		}
		if temp.Max-temp.Min > largeSwingRange {
			notes = append(notes, "**Large temperature swing** - wide gap between the week's extremes.")
		}
	}
	if precip := stats.Precipitation; precip != nil {
		if precip.Total > wetWeekRain {
			notes = append(notes, "**Wet week** - high rainfall total.")
		} else if precip.Total == 0 {
			notes = append(notes, "**Dry week** - no rain recorded.")
		}
	}
	if len(notes) > 0 {
		b.WriteString("\n## Trend analysis\n\n")
		for _, n := range notes {
			b.WriteString(n + "\n")
		}
	}

	b.WriteString("\n" + g.footer())
	return b.String()
}

func (g *Generator) monthly(s *series.Series, location string) string {
	tempCol, _ := s.Resolve(series.TempMean, series.Temperature)
	stats := analysis.ComputeStatistics(s, tempCol)
	indices := analysis.ComputeIndices(s)
	from, to, _ := s.DateRange()

	var b strings.Builder
	fmt.Fprintf(&b, "# Monthly Weather Report - %s\n\n", location)
	fmt.Fprintf(&b, "**Period:** %s to %s\n\n", from.Format("2006-01-02"), to.Format("2006-01-02"))
	b.WriteString("## Detailed statistics\n")

	if temp := stats.Temperature; temp != nil {
		b.WriteString("\n### Temperature\n\n")
		fmt.Fprintf(&b, "- **Monthly mean:** %.1f°C\n", temp.Mean)
		fmt.Fprintf(&b, "- **Max:** %.1f°C\n", temp.Max)
		fmt.Fprintf(&b, "- **Min:** %.1f°C\n", temp.Min)
		if ti := indices.Temperature; ti != nil {
			fmt.Fprintf(&b, "- **Hot days (>30°C):** %d\n", ti.HotDays)
			fmt.Fprintf(&b, "- **Cool days (<20°C):** %d\n", ti.CoolDays)
		}
	}
	if precip := stats.Precipitation; precip != nil {
		b.WriteString("\n### Precipitation\n\n")
		fmt.Fprintf(&b, "- **Total:** %.1fmm\n", precip.Total)
		fmt.Fprintf(&b, "- **Rainy days:** %d\n", precip.RainyDays)
		fmt.Fprintf(&b, "- **Max single-day rain:** %.1fmm\n", precip.Max)
	}

	var notes []string
	if precip := stats.Precipitation; precip != nil && s.Len() > 0 {
		ratio := float64(precip.RainyDays) / float64(s.Len())
		if ratio > 0.5 {
			notes = append(notes, "**Wet month** - more than half of the days saw rain.")
		} else if ratio < 0.1 {
			notes = append(notes, "**Dry month** - few rainy days.")
		}
	}
	if temp := stats.Temperature; temp != nil {
		if temp.Mean > hotMonthTemp {
			notes = append(notes, "**Hot month** - high average temperature.")
		} else if temp.Mean < coldMonthTemp {
			notes = append(notes, "**Cold month** - low average temperature.")
		}
	}
	if ti := indices.Temperature; ti != nil && ti.HotDays > heatWarningDays {
		notes = append(notes, "**Heat warning** - many hot days this month.")
	}
	if len(notes) > 0 {
		b.WriteString("\n## Overall assessment\n\n")
		for _, n := range notes {
			b.WriteString(n + "\n")
		}
	}

	b.WriteString("\n" + g.footer())
	return b.String()
}

func (g *Generator) climate(s *series.Series, location string) string {
	tempCol, haveTemp := s.Resolve(series.TempMean, series.Temperature)
	from, to, _ := s.DateRange()

	var b strings.Builder
	fmt.Fprintf(&b, "# Long-Term Climate Report - %s\n\n", location)
	fmt.Fprintf(&b, "**Period:** %s to %s\n\n", from.Format("2006-01-02"), to.Format("2006-01-02"))
	b.WriteString("## Climate profile\n")

	var temps []float64
	if haveTemp {
		temps = s.Values(tempCol)
	}
	if len(temps) > 0 {
		b.WriteString("\n### Temperature\n\n")
		fmt.Fprintf(&b, "- **Mean:** %.1f°C\n", avg(temps))
		if std, ok := stdOf(temps); ok {
			fmt.Fprintf(&b, "- **Variability:** %.1f°C\n", std)
		}
		fmt.Fprintf(&b, "- **Extreme hot days (>35°C):** %d\n", countIf(temps, func(v float64) bool { return v > extremeHotTemp }))
		fmt.Fprintf(&b, "- **Extreme cold days (<10°C):** %d\n", countIf(temps, func(v float64) bool { return v < extremeColdTemp }))
	}

	precip := s.Values(series.Precipitation)
	if len(precip) > 0 {
		b.WriteString("\n### Precipitation\n\n")
		fmt.Fprintf(&b, "- **Total:** %.0fmm\n", total(precip))
		fmt.Fprintf(&b, "- **Dry days:** %d\n", countIf(precip, func(v float64) bool { return v == 0 }))
		fmt.Fprintf(&b, "- **Heavy rain days (>50mm):** %d\n", countIf(precip, func(v float64) bool { return v > wetWeekRain }))
	}

	if haveTemp && s.Len() > seasonalMinRows {
		if section := seasonalSection(s, tempCol); section != "" {
			b.WriteString(section)
		}
	}

	if len(temps) > 0 && len(precip) > 0 {
		b.WriteString("\n## Climate classification\n\n")
		b.WriteString(classifyClimate(avg(temps), total(precip)) + "\n")
	}

	if s.Len() > trendMinRows && len(temps) > trendMinSamples {
		perYear := analysis.FitLinearTrend(temps) * 365
		if math.Abs(perYear) > annualTrendMinC {
			direction := "rising"
			if perYear < 0 {
				direction = "falling"
			}
			fmt.Fprintf(&b, "\n**Temperature trend:** %s %.1f°C per year.\n", direction, math.Abs(perYear))
		}
	}

	b.WriteString("\n" + g.footer())
	return b.String()
}

// Seasons are fixed calendar-month buckets: winter Dec-Feb, spring
// Mar-May, summer Jun-Aug, autumn Sep-Nov.
var seasonOrder = []string{"Winter", "Spring", "Summer", "Autumn"}

func seasonOf(month time.Month) string {
	switch month {
	case time.December, time.January, time.February:
		return "Winter"
	case time.March, time.April, time.May:
		return "Spring"
	case time.June, time.July, time.August:
		return "Summer"
	default:
		return "Autumn"
	}
}

func seasonalSection(s *series.Series, tempCol series.Metric) string {
	bySeason := make(map[string][]float64)
	for _, r := range s.Records {
		v, ok := r.Value(tempCol)
		if !ok {
			continue
		}
		season := seasonOf(r.Date.Month())
		bySeason[season] = append(bySeason[season], v)
	}
	if len(bySeason) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n### Seasonal analysis\n\n")
	for _, season := range seasonOrder {
		values, ok := bySeason[season]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "- **%s:** %.1f°C\n", season, avg(values))
	}
	return b.String()
}

func classifyClimate(meanTemp, totalPrecip float64) string {
	switch {
	case meanTemp > 26 && totalPrecip > 1500:
		return "**Tropical humid climate** - hot and wet throughout the year."
	case meanTemp > 26 && totalPrecip < 1000:
		return "**Tropical dry climate** - hot with little rainfall."
	case meanTemp > 20 && meanTemp <= 26:
		return "**Subtropical climate** - mild with distinct seasons."
	default:
		return "**Temperate climate** - cool with seasonal variation."
	}
}

func firstValue(r series.Record, candidates ...series.Metric) (float64, bool) {
	for _, m := range candidates {
		if v, ok := r.Value(m); ok {
			return v, true
		}
	}
	return 0, false
}

func avg(values []float64) float64 { return total(values) / float64(len(values)) }

func total(values []float64) float64 {
	t := 0.0
	for _, v := range values {
		t += v
	}
	return t
}

func stdOf(values []float64) (float64, bool) {
	if len(values) < 2 {
		return 0, false
	}
	m := avg(values)
	sumSq := 0.0
	for _, v := range values {
		diff := v - m
		sumSq += diff * diff
	}
	return math.Sqrt(sumSq / float64(len(values)-1)), true
}

func countIf(values []float64, pred func(float64) bool) int {
	n := 0
	for _, v := range values {
		if pred(v) {
			n++
		}
	}
	return n
}
