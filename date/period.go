package date

import (
	"fmt"
	"strings"
)

// Period is a calendar period: a day, a week starting on Monday, a month, a
// quarter or a year.
type Period int

const (
	Daily Period = iota
	Weekly
	Monthly
	Quarterly
	Yearly
)

var (
	periodNames = [...]string{"daily", "weekly", "monthly", "quarterly", "yearly"}
	periodUnits = [...]string{"day", "week", "month", "quarter", "year"}
)

func (p Period) String() string {
	if p < Daily || p > Yearly {
		return fmt.Sprintf("period(%d)", int(p))
	}
	return periodNames[p]
}

// ParsePeriod parses a period by its name ("monthly") or its unit ("month").
func ParsePeriod(s string) (Period, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for p := Daily; p <= Yearly; p++ {
		if s == periodNames[p] || s == periodUnits[p] {
			return p, nil
		}
	}
	return Daily, fmt.Errorf("unknown period %q, want day, week, month, quarter or year", s)
}

// Range returns the range of this period that contains d.
func (p Period) Range(d Date) Range { return Range{From: d.StartOf(p), To: d.EndOf(p)} }
