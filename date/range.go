package date

import "fmt"

// Range is an inclusive range of days. The zero Range is unbounded.
type Range struct{ From, To Date }

// NewRange returns the range of period containing d.
func NewRange(d Date, period Period) Range { return period.Range(d) }

// IsZero reports whether r is the zero, unbounded, Range.
func (r Range) IsZero() bool { return r.From.IsZero() && r.To.IsZero() }

// Contains reports whether d is within r, bounds included.
func (r Range) Contains(d Date) bool { return !d.Before(r.From) && !d.After(r.To) }

// Period returns the calendar period r covers exactly, if any.
func (r Range) Period() (Period, bool) {
	for p := Daily; p <= Yearly; p++ {
		if p.Range(r.From) == r {
			return p, true
		}
	}
	return Daily, false
}

// Name returns the name of the period of r, or "special".
func (r Range) Name() string {
	if p, ok := r.Period(); ok {
		return p.String()
	}
	return "special"
}

// Identifier returns a short name for r, like "2025-W37" or "2025-Q3".
// Ranges that are not a calendar period are named by their bounds.
func (r Range) Identifier() string {
	p, ok := r.Period()
	if !ok {
		return fmt.Sprintf("%s_%s", r.From, r.To)
	}
	switch p {
	case Weekly:
		year, week := r.From.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	case Monthly:
		return r.From.Format("2006-01")
	case Quarterly:
		return fmt.Sprintf("%d-Q%d", r.From.Year(), (r.From.Month()-1)/3+1)
	case Yearly:
		return r.From.Format("2006")
	default:
		return r.From.String()
	}
}
