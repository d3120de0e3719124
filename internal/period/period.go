// Package period turns report requests (a named period, a single date or a
// date range) into the concrete instant window a report is computed over.
//
// Every instant is UTC. Resolution is pure: callers pass "now" in.
package period

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sheikh-saqib/spendlog/internal/models"
)

var (
	ErrInvalidDate  = errors.New("invalid date")
	ErrDateRange    = errors.New("date range error")
	ErrInvalidMonth = errors.New("invalid month")
)

// DateFormat is the only accepted date layout, YYYY-MM-DD.
const DateFormat = "2006-01-02"

// Epoch is the start of the All period.
var Epoch = time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)

// Named is one of the periods relative to now.
type Named int

const (
	Today Named = iota
	Week
	Month
	All
)

func (n Named) String() string {
	switch n {
	case Today:
		return "today"
	case Week:
		return "week"
	case Month:
		return "month"
	case All:
		return "all"
	default:
		return fmt.Sprintf("period(%d)", int(n))
	}
}

// Label is the report title of the period.
func (n Named) Label() string {
	switch n {
	case Today:
		return "Today"
	case Week:
		return "This Week"
	case Month:
		return "This Month"
	default:
		return "All Time"
	}
}

// Names lists the accepted period names, in display order.
func Names() []string {
	return []string{Today.String(), Week.String(), Month.String(), All.String()}
}

// ParseNamed parses a period name, case-insensitive.
func ParseNamed(s string) (Named, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "today":
		return Today, nil
	case "week":
		return Week, nil
	case "month":
		return Month, nil
	case "all":
		return All, nil
	default:
		return All, fmt.Errorf("%w: unknown period %q, use one of %s", ErrInvalidDate, s, strings.Join(Names(), ", "))
	}
}

type shape int

const (
	named shape = iota
	onDate
	fromTo
)

// Spec is a report period request. The three shapes are exclusive and a Spec
// can only be built through NewNamed, On and Between.
type Spec struct {
	shape shape
	name  Named
	date  string // onDate
	from  string // fromTo
	to    string // fromTo
}

// NewNamed requests a period relative to now.
func NewNamed(n Named) Spec { return Spec{shape: named, name: n} }

// On requests the single day d (YYYY-MM-DD).
func On(d string) Spec { return Spec{shape: onDate, date: d} }

// Between requests the days from..to, both included.
func Between(from, to string) Spec { return Spec{shape: fromTo, from: from, to: to} }

func (s Spec) String() string {
	switch s.shape {
	case onDate:
		return "date " + s.date
	case fromTo:
		return "from " + s.from + " to " + s.to
	default:
		return s.name.String()
	}
}

// FromArgs builds a Spec from the CLI request shape. At most one of the named
// period, the date and the from/to pair may be set, and from/to go together.
// Nothing at all means All.
func FromArgs(name, date, from, to string) (Spec, error) {
	hasName, hasDate, hasRange := name != "", date != "", from != "" || to != ""

	switch {
	case hasName && hasDate:
		return Spec{}, fmt.Errorf("%w: cannot specify both a period and a date", ErrInvalidDate)
	case hasName && hasRange:
		return Spec{}, fmt.Errorf("%w: cannot specify both a period and a date range", ErrInvalidDate)
	case hasDate && hasRange:
		return Spec{}, fmt.Errorf("%w: cannot specify both a date and a date range", ErrInvalidDate)
	case hasRange && (from == "" || to == ""):
		return Spec{}, fmt.Errorf("%w: must specify both -from and -to dates for a date range", ErrInvalidDate)
	case hasName:
		n, err := ParseNamed(name)
		if err != nil {
			return Spec{}, err
		}
		return NewNamed(n), nil
	case hasDate:
		return On(date), nil
	case hasRange:
		return Between(from, to), nil
	default:
		return NewNamed(All), nil
	}
}

// ParseDate parses a strict YYYY-MM-DD date into midnight UTC.
func ParseDate(s string) (time.Time, error) {
	d, err := time.ParseInLocation(DateFormat, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q, use YYYY-MM-DD", ErrInvalidDate, s)
	}
	return d, nil
}

// StartOfDay truncates t to 00:00:00 of its UTC day.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// EndOfDay returns 23:59:59.999999 of t's UTC day. PostgreSQL keeps
// microseconds, so this is the last instant a stored posting of the day can
// carry; a nanosecond later would round to the next midnight.
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).Add(24*time.Hour - time.Microsecond)
}

// StartOfWeek returns midnight of the Monday on or before t.
func StartOfWeek(t time.Time) time.Time {
	day := StartOfDay(t)
	offset := int(day.Weekday() - time.Monday) // time.Sunday = 0
	if offset < 0 {
		offset += 7
	}
	return day.AddDate(0, 0, -offset)
}

// StartOfMonth returns midnight of the first day of t's month.
func StartOfMonth(t time.Time) time.Time {
	y, m, _ := t.UTC().Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

// Resolve returns the window of s, relative to now.
func Resolve(s Spec, now time.Time) (models.Window, error) {
	now = now.UTC()

	switch s.shape {
	case onDate:
		d, err := ParseDate(s.date)
		if err != nil {
			return models.Window{}, err
		}
		return models.Window{Start: d, End: EndOfDay(d), Label: "Date: " + s.date}, nil

	case fromTo:
		from, err := ParseDate(s.from)
		if err != nil {
			return models.Window{}, fmt.Errorf("'from' %w", err)
		}
		to, err := ParseDate(s.to)
		if err != nil {
			return models.Window{}, fmt.Errorf("'to' %w", err)
		}
		if from.After(to) {
			return models.Window{}, fmt.Errorf("%w: the 'from' date must be earlier than or equal to the 'to' date", ErrDateRange)
		}
		return models.Window{Start: from, End: EndOfDay(to), Label: fmt.Sprintf("From %s to %s", s.from, s.to)}, nil
	}

	w := models.Window{Label: s.name.Label()}
	switch s.name {
	case Today:
		w.Start = StartOfDay(now)
	case Week:
		w.Start = StartOfWeek(now)
	case Month:
		w.Start = StartOfMonth(now)
	default:
		w.Start = Epoch
	}
	return w, nil
}
