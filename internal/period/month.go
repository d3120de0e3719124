package period

import (
	"fmt"
	"strings"
	"time"

	"github.com/sheikh-saqib/spendlog/internal/models"
)

// ParseMonth parses a full English month name, case-insensitive.
func ParseMonth(s string) (time.Month, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for m := time.January; m <= time.December; m++ {
		if strings.ToLower(m.String()) == name {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q, use a full month name (e.g. 'April')", ErrInvalidMonth, s)
}

// MonthNames lists the accepted month names in lower case.
func MonthNames() []string {
	names := make([]string, 0, 12)
	for m := time.January; m <= time.December; m++ {
		names = append(names, strings.ToLower(m.String()))
	}
	return names
}

// ResolveMonth returns the calendar window of the named month.
//
// An empty name is the current month. A month later in the year than now's
// month has not happened yet, so it is taken from the previous year. The
// window of the current month stops at now, any other month runs to its last
// day 23:59:59.
func ResolveMonth(name string, now time.Time) (models.Window, error) {
	now = now.UTC()
	year, month := now.Year(), now.Month()

	if name != "" {
		m, err := ParseMonth(name)
		if err != nil {
			return models.Window{}, err
		}
		if m > month {
			year--
		}
		month = m
	}

	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	w := models.Window{Start: start, Label: fmt.Sprintf("%s %d", month, year)}
	if year == now.Year() && month == now.Month() {
		w.End = now
	} else {
		// day 0 of the next month is the last day of this one
		w.End = EndOfDay(time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC))
	}
	return w, nil
}
