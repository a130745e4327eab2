// Package period holds the calendar-month key used for invoices, forecasts and reports.
package period

import (
	"encoding/json"
	"fmt"
	"time"
)

const layout = "2006-01"

var monthNames = [...]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

// Period is a calendar year-month.
type Period struct {
	Year  int
	Month time.Month
}

// Of returns the period containing t.
func Of(t time.Time) Period {
	return Period{Year: t.Year(), Month: t.Month()}
}

// Parse reads a "YYYY-MM" key.
func Parse(s string) (Period, error) {
	t, err := time.Parse(layout, s)
	if err != nil {
		return Period{}, fmt.Errorf("parse period %q: %w", s, err)
	}

	return Of(t), nil
}

// Add moves the period by n months, carrying year boundaries.
func (p Period) Add(n int) Period {
	idx := p.Year*12 + int(p.Month-1) + n

	return Period{Year: idx / 12, Month: time.Month(idx%12 + 1)}
}

func (p Period) Next() Period { return p.Add(1) }

func (p Period) Prev() Period { return p.Add(-1) }

// Before reports whether p is strictly earlier than o.
func (p Period) Before(o Period) bool {
	if p.Year != o.Year {
		return p.Year < o.Year
	}

	return p.Month < o.Month
}

func (p Period) After(o Period) bool { return o.Before(p) }

// MonthsUntil returns the number of months from p to o (negative when o is earlier).
func (p Period) MonthsUntil(o Period) int {
	return (o.Year*12 + int(o.Month)) - (p.Year*12 + int(p.Month))
}

// Start returns the first day of the period at UTC midnight.
func (p Period) Start() time.Time {
	return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC)
}

// End returns the last day of the period at UTC midnight.
func (p Period) End() time.Time {
	return p.Start().AddDate(0, 1, -1)
}

// Contains reports whether the calendar date of t falls inside the period.
func (p Period) Contains(t time.Time) bool {
	return t.Year() == p.Year && t.Month() == p.Month
}

func (p Period) IsZero() bool { return p.Year == 0 && p.Month == 0 }

func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// Label renders the period the way statements show it, e.g. "maio de 2024".
func (p Period) Label() string {
	if p.Month < time.January || p.Month > time.December {
		return p.String()
	}

	return fmt.Sprintf("%s de %d", monthNames[p.Month-1], p.Year)
}

func (p Period) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

func (p *Period) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	parsed, err := Parse(s)
	if err != nil {
		return err
	}

	*p = parsed

	return nil
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Date builds a UTC date, clamping day to the last day of the month.
func Date(year int, month time.Month, day int) time.Time {
	if last := DaysIn(year, month); day > last {
		day = last
	}

	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// AddMonths advances t by n calendar months keeping its day of month when
// possible and clamping it to the target month's last day otherwise.
func AddMonths(t time.Time, n int) time.Time {
	p := Of(t).Add(n)

	return Date(p.Year, p.Month, t.Day())
}

// Truncate drops the time of day, keeping the calendar date in UTC.
func Truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
