package date

import (
	"strings"
	"testing"
	"time"
)

func TestPeriod_Range(t *testing.T) {
	tests := []struct {
		period Period
		on     Date
		want   Range
		name   string
		id     string
	}{
		{Daily, New(2025, time.September, 8), Range{New(2025, time.September, 8), New(2025, time.September, 8)}, "daily", "2025-09-08"},
		{Weekly, New(2025, time.September, 10), Range{New(2025, time.September, 8), New(2025, time.September, 14)}, "weekly", "2025-W37"},
		{Weekly, New(2025, time.January, 6), Range{New(2025, time.January, 6), New(2025, time.January, 12)}, "weekly", "2025-W02"},
		// the ISO year of this week is 2026.
		{Weekly, New(2025, time.December, 31), Range{New(2025, time.December, 29), New(2026, time.January, 4)}, "weekly", "2026-W01"},
		{Monthly, New(2024, time.February, 15), Range{New(2024, time.February, 1), New(2024, time.February, 29)}, "monthly", "2024-02"},
		{Quarterly, New(2025, time.May, 20), Range{New(2025, time.April, 1), New(2025, time.June, 30)}, "quarterly", "2025-Q2"},
		{Yearly, New(2025, time.September, 8), Range{New(2025, time.January, 1), New(2025, time.December, 31)}, "yearly", "2025"},
	}
	for _, test := range tests {
		got := test.period.Range(test.on)
		if got != test.want {
			t.Errorf("%v.Range(%v) = %v, want %v", test.period, test.on, got, test.want)
			continue
		}
		if got.Name() != test.name || got.Identifier() != test.id {
			t.Errorf("%v.Range(%v) is named %s %s, want %s %s", test.period, test.on, got.Name(), got.Identifier(), test.name, test.id)
		}
		if !got.Contains(test.on) || got.Contains(got.To.Add(1)) || got.Contains(got.From.Add(-1)) {
			t.Errorf("%v.Range(%v) = %v has wrong bounds", test.period, test.on, got)
		}
	}
}

func TestRange_Special(t *testing.T) {
	tests := []Range{
		{From: New(2025, time.September, 2), To: New(2025, time.September, 10)},
		{From: New(2025, time.January, 1), To: New(2026, time.December, 31)},
	}
	for _, r := range tests {
		if _, ok := r.Period(); ok || r.Name() != "special" {
			t.Errorf("%v should not be a calendar period", r)
		}
		if want := r.From.String() + "_" + r.To.String(); r.Identifier() != want {
			t.Errorf("%v.Identifier() = %q, want %q", r, r.Identifier(), want)
		}
	}
	if !(Range{}).IsZero() || tests[0].IsZero() {
		t.Error("IsZero() only holds for the zero Range")
	}
}

func TestParsePeriod(t *testing.T) {
	for p := Daily; p <= Yearly; p++ {
		for _, s := range []string{periodNames[p], periodUnits[p], " " + strings.ToUpper(periodUnits[p])} {
			got, err := ParsePeriod(s)
			if err != nil || got != p {
				t.Errorf("ParsePeriod(%q) = %v, %v, want %v", s, got, err, p)
			}
		}
	}
	if _, err := ParsePeriod("fortnight"); err == nil {
		t.Error("ParsePeriod(\"fortnight\") got no error")
	}
}
