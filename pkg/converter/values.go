// pkg/converter/values.go
package converter

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// dateAddedLayout is the format the catalog uses for date_added values,
// e.g. "September 25, 2021".
const dateAddedLayout = "January 2, 2006"

var durationPattern = regexp.MustCompile(`^(\d+) min$`)

// ParseDateAdded parses a date_added value. The source format is the written
// month form; values are trimmed first since the file pads some of them.
func ParseDateAdded(value string) (time.Time, error) {
	cleaned := strings.TrimSpace(value)
	if cleaned == "" {
		return time.Time{}, fmt.Errorf("empty date value")
	}

	t, err := time.Parse(dateAddedLayout, cleaned)
	if err != nil {
		return time.Time{}, fmt.Errorf("cannot parse %q as date: %w", value, err)
	}
	return t, nil
}

// ParseDurationMinutes parses a movie duration ("90 min") into whole minutes.
// Season counts and anything else fail to parse.
func ParseDurationMinutes(value string) (int, error) {
	matches := durationPattern.FindStringSubmatch(strings.TrimSpace(value))
	if matches == nil {
		return 0, fmt.Errorf("cannot parse %q as a minute duration", value)
	}

	minutes, err := strconv.Atoi(matches[1])
	if err != nil {
		return 0, fmt.Errorf("cannot parse %q as a minute duration: %w", value, err)
	}
	return minutes, nil
}

// ParseReleaseYear parses a release_year value into an int, rejecting values
// outside a plausible range for film and television.
func ParseReleaseYear(value string) (int, error) {
	year, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("cannot parse %q as a year: %w", value, err)
	}
	if year < 1888 || year > 2100 {
		return 0, fmt.Errorf("year %d out of range", year)
	}
	return year, nil
}
