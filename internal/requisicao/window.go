package requisicao

import (
	"strings"
	"time"
)

// DateLayout is the textual date format of the sales store (DD/MM/YYYY).
const DateLayout = "02/01/2006"

// windowMonths is both the span of the window and the giro divisor.
const windowMonths = 3

// Window is the trailing span of fully elapsed calendar months used for giro.
// Start and End are dates at midnight; both are inclusive.
type Window struct {
	Start time.Time
	End   time.Time
}

// WindowFor returns the three whole calendar months before now's month.
// For 2024-02-15 it is 2023-11-01 .. 2024-01-31.
func WindowFor(now time.Time) Window {
	loc := now.Location()
	firstOfThisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
	end := firstOfThisMonth.AddDate(0, 0, -1)
	start := time.Date(end.Year(), end.Month()-(windowMonths-1), 1, 0, 0, 0, 0, loc)

	return Window{Start: start, End: end}
}

// StartText returns Start formatted as DD/MM/YYYY.
func (w Window) StartText() string {
	return w.Start.Format(DateLayout)
}

// EndText returns End formatted as DD/MM/YYYY.
func (w Window) EndText() string {
	return w.End.Format(DateLayout)
}

// Contains reports whether the calendar date of t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, w.Start.Location())
	return !d.Before(w.Start) && !d.After(w.End)
}

// ParseEmissionDate parses a DD/MM/YYYY sales date. A trailing time part
// ("05/03/2024 14:10:00") is ignored; single-digit day or month is accepted.
func ParseEmissionDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, " T"); i > 0 {
		s = s[:i]
	}
	if loc == nil {
		loc = time.UTC
	}
	return time.ParseInLocation("2/1/2006", s, loc)
}
