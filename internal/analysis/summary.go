package analysis

import (
	"fmt"
	"strings"

	"github.com/tdhoang/weather-insight/internal/series"
)

// NoDataSummary is returned for an empty series.
const NoDataSummary = "No data available for analysis."

// Summarize composes indices and alerts into a short plain-text
// summary for the location.
func Summarize(s *series.Series, location string, th AlertThresholds) string {
	if s.IsEmpty() {
		return NoDataSummary
	}
	if location == "" {
		location = "this area"
	}

	alerts := GenerateAlerts(s, th)
	indices := ComputeIndices(s)

	var parts []string

	if temp := indices.Temperature; temp != nil {
		parts = append(parts, fmt.Sprintf(
			"Average temperature in %s is %.1f°C, with a range of %.1f°C.",
			location, temp.MeanTemp, temp.TempRange))
		if temp.HotDays > 0 {
			parts = append(parts, fmt.Sprintf("There were %d hot day(s) (>30°C).", temp.HotDays))
		}
	}

	if precip := indices.Precipitation; precip != nil {
		parts = append(parts, fmt.Sprintf(
			"Total rainfall was %.1fmm across %d rainy day(s).",
			precip.Total, precip.RainyDays))
	}

	var dangers []string
	for _, a := range alerts {
		if a.Severity == SeverityDanger {
			dangers = append(dangers, a.Title)
		}
	}
	if len(dangers) > 0 {
		parts = append(parts, "Attention: "+strings.Join(dangers, ", ")+".")
	}

	if comfort := indices.Comfort; comfort != nil {
		parts = append(parts, fmt.Sprintf(
			"Comfort level: %s (%.1f/100).", comfort.Level, comfort.Score))
	}

	return strings.Join(parts, " ")
}
