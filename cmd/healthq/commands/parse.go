package commands

import (
	"fmt"
	"strings"
	"time"

	healthkit "github.com/goliatone/go-healthkit"
)

// parseBiometric accepts a capability name such as "heartRate" or a
// "category:identifier" reference such as "category:HKCategoryTypeIdentifierSleepAnalysis".
func parseBiometric(arg string) (healthkit.Biometric, error) {
	if c, ok := healthkit.LookupCapability(arg); ok {
		return c, nil
	}
	prefix, id, ok := strings.Cut(arg, ":")
	if !ok || id == "" {
		return nil, fmt.Errorf("unknown capability %q (see `healthq catalog`)", arg)
	}
	category, err := healthkit.ParseCategory(prefix)
	if err != nil {
		return nil, err
	}
	return healthkit.Ref{ID: id, Cat: category}, nil
}

func parseBiometrics(args []string) ([]healthkit.Biometric, error) {
	out := make([]healthkit.Biometric, 0, len(args))
	for _, arg := range args {
		b, err := parseBiometric(arg)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

// parseTime accepts RFC3339 or a duration relative to now ("72h" means 72
// hours ago).
func parseTime(value string, now time.Time) (time.Time, error) {
	if value == "" || value == "now" {
		return now, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: want RFC3339 or a duration", value)
	}
	return now.Add(-d), nil
}

// parseSort reads keys like "start", "-end" or "+quantity". A leading "-"
// sorts descending.
func parseSort(values []string) ([]healthkit.SortKey, error) {
	keys := make([]healthkit.SortKey, 0, len(values))
	for _, value := range values {
		descending := strings.HasPrefix(value, "-")
		name := strings.TrimLeft(value, "+-")
		var field healthkit.SortField
		switch name {
		case "start":
			field = healthkit.SortByStartDate
		case "end":
			field = healthkit.SortByEndDate
		case "quantity", "value":
			field = healthkit.SortByQuantity
		default:
			return nil, fmt.Errorf("unknown sort key %q", value)
		}
		if descending {
			keys = append(keys, healthkit.Descending(field))
		} else {
			keys = append(keys, healthkit.Ascending(field))
		}
	}
	return keys, nil
}
