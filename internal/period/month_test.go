package period

import (
	"errors"
	"testing"
	"time"
)

func TestResolveMonth(t *testing.T) {
	testCases := []struct {
		name  string
		in    string
		start time.Time
		end   time.Time
		label string
	}{
		{"current month", "", at(2025, time.April, 1, 0, 0, 0), now, "April 2025"},
		{"current month by name", "APRIL", at(2025, time.April, 1, 0, 0, 0), now, "April 2025"},
		{"earlier month", "february", at(2025, time.February, 1, 0, 0, 0), endOf(2025, time.February, 28), "February 2025"},
		{"later month is last year", "December", at(2024, time.December, 1, 0, 0, 0), endOf(2024, time.December, 31), "December 2024"},
		{"leap february", "February", at(2024, time.February, 1, 0, 0, 0), endOf(2024, time.February, 29), "February 2024"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ref := now
			if tc.name == "leap february" {
				ref = at(2024, time.March, 10, 12, 0, 0)
			}
			w, err := ResolveMonth(tc.in, ref)
			if err != nil {
				t.Fatalf("ResolveMonth() error = %v", err)
			}
			if !w.Start.Equal(tc.start) || !w.End.Equal(tc.end) {
				t.Errorf("ResolveMonth() = [%v, %v], want [%v, %v]", w.Start, w.End, tc.start, tc.end)
			}
			if w.Label != tc.label {
				t.Errorf("ResolveMonth().Label = %q, want %q", w.Label, tc.label)
			}
		})
	}
}

func TestResolveMonthInvalid(t *testing.T) {
	for _, in := range []string{"apr", "13", "Aprill"} {
		if _, err := ResolveMonth(in, now); !errors.Is(err, ErrInvalidMonth) {
			t.Errorf("ResolveMonth(%q) error = %v, want ErrInvalidMonth", in, err)
		}
	}
}

func TestMonthNamesParse(t *testing.T) {
	names := MonthNames()
	if len(names) != 12 {
		t.Fatalf("MonthNames() has %d names, want 12", len(names))
	}
	for i, name := range names {
		m, err := ParseMonth(name)
		if err != nil || m != time.Month(i+1) {
			t.Errorf("ParseMonth(%q) = %v, %v, want %v", name, m, err, time.Month(i+1))
		}
	}
}
