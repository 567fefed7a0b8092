package util

import (
	"fmt"
	"strings"
	"time"
)

// PeriodSet is a named set of accepted period values with a default
type PeriodSet struct {
	Default string
	Allowed []string
}

var (
	// DashboardPeriods is accepted by /dashboard/performance
	DashboardPeriods = PeriodSet{Default: "30d", Allowed: []string{"7d", "30d", "90d"}}

	// HistoryPeriods is accepted by /portfolio/history
	HistoryPeriods = PeriodSet{Default: "7d", Allowed: []string{"24h", "7d", "30d", "90d", "1y"}}

	// AnalyticsPeriods is accepted by /analytics
	AnalyticsPeriods = PeriodSet{Default: "30d", Allowed: []string{"7d", "30d", "90d", "all"}}
)

// PeriodAll disables the lower time bound
const PeriodAll = "all"

// ResolvePeriod maps a period value to the start of its window relative to now.
// An empty value selects the set default, "all" yields the zero time.
func ResolvePeriod(set PeriodSet, value string, now time.Time) (string, time.Time, error) {
	if value == "" {
		value = set.Default
	}
	if !set.allows(value) {
		return "", time.Time{}, NewAppErrorWithDetails(400, ErrCodeValidation, "Invalid period",
			[]FieldError{{
				Field:   "period",
				Rule:    "oneof",
				Message: fmt.Sprintf("must be one of [%s]", strings.Join(set.Allowed, " ")),
			}})
	}

	switch value {
	case PeriodAll:
		return value, time.Time{}, nil
	case "24h":
		return value, now.Add(-24 * time.Hour), nil
	case "1y":
		return value, now.AddDate(-1, 0, 0), nil
	}

	var days int
	if _, err := fmt.Sscanf(value, "%dd", &days); err != nil || days <= 0 {
		return "", time.Time{}, ErrValidation("Invalid period")
	}
	return value, now.AddDate(0, 0, -days), nil
}

func (s PeriodSet) allows(value string) bool {
	for _, v := range s.Allowed {
		if v == value {
			return true
		}
	}
	return false
}
