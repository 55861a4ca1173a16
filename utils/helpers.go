package utils

import (
	"fmt"
	"time"
)

func IsValidInterval(interval string) bool {
	switch interval {
	case "Minute", "Hour", "Day", "Week", "Month", "Quarter", "Year":
		return true
	default:
		return false
	}
}

// ParseTimeRange parses optional RFC3339 range parameters. Missing values
// default to the trailing 7 days.
func ParseTimeRange(startParam, endParam string) (time.Time, time.Time, error) {
	end := time.Now().UTC()
	start := end.Add(-7 * 24 * time.Hour)
	var err error

	if startParam != "" {
		start, err = time.Parse(time.RFC3339, startParam)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid 'start' timestamp format, use RFC3339 (e.g. 2006-01-02T15:04:05Z)")
		}
	}
	if endParam != "" {
		end, err = time.Parse(time.RFC3339, endParam)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid 'end' timestamp format, use RFC3339 (e.g. 2006-01-02T15:04:05Z)")
		}
	}
	return start, end, nil
}
