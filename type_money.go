package finance

import (
	"fmt"
	"math"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is the ISO code used to format amounts when none is configured.
const DefaultCurrency = "INR"

// Money represents a monetary value in the ledger currency.
//
// The ledger holds a single currency, so Money carries no currency code: the
// code is only needed to format amounts, see Formatter.
type Money struct {
	value decimal.Decimal // as major unit value
}

// M creates a Money from a number.
func M[T float64 | int | int64 | decimal.Decimal](value T) Money {
	return Money{value: newDecimal(value)}
}

func newDecimal[T float64 | int | int64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int64:
		return decimal.NewFromInt(v)
	}
	panic(fmt.Sprintf("unsupported money value %T", value))
}

// ParseAmount parses a user supplied amount like "1250.50".
//
// A non-numeric input is a ValidationError. The sign is not checked here.
func ParseAmount(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, &ValidationError{Field: "amount", Reason: "is missing"}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, &ValidationError{Field: "amount", Reason: fmt.Sprintf("%q is not a number", s)}
	}
	return Money{value: d}, nil
}

// Round2 rounds m to 2 decimal places, half away from zero.
//
// Every balance mutation goes through Round2 right after the arithmetic.
func Round2(m Money) Money { return Money{value: m.value.Round(2)} }

func (m Money) Decimal() decimal.Decimal         { return m.value }
func (m Money) Equal(n Money) bool              { return m.value.Equal(n.value) }
func (m Money) IsZero() bool                    { return m.value.IsZero() }
func (m Money) IsPositive() bool                { return m.value.IsPositive() }
func (m Money) IsNegative() bool                { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool           { return m.value.LessThan(n.value) }
func (m Money) GreaterThan(n Money) bool        { return m.value.GreaterThan(n.value) }
func (m Money) GreaterThanOrEqual(n Money) bool { return m.value.GreaterThanOrEqual(n.value) }
func (m Money) Neg() Money                      { return Money{value: m.value.Neg()} }
func (m Money) Add(n Money) Money               { return Money{value: m.value.Add(n.value)} }
func (m Money) Sub(n Money) Money               { return Money{value: m.value.Sub(n.value)} }

// String returns the amount with exactly two decimals and no currency, e.g. "1250.50".
func (m Money) String() string { return m.value.StringFixed(2) }

// Deprecated: AsFloat should no longer be used, the purpose is to keep the calculation exact.
func (m Money) AsFloat() float64 { return m.value.InexactFloat64() }

// MarshalJSON encodes the amount as a bare json number.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.value.String()), nil
}

// UnmarshalJSON accepts json numbers and numeric strings, as older files stored both.
func (m *Money) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("invalid amount %s: %w", string(data), err)
	}
	m.value = d
	return nil
}

// Formatter renders amounts as currency strings like "₹ 1,234.56".
type Formatter struct {
	cur *money.Currency
	// lakh groups the integer part the Indian way: 12,34,567.
	lakh bool
}

// NewFormatter returns a Formatter for the given ISO currency code.
// The grapheme, separators and fraction digits come from the go-money currency table.
// Rupees are grouped by lakh and crore.
func NewFormatter(code string) Formatter {
	code = strings.ToUpper(code)
	// to get a never nil currency I need to call the Money constructor
	cur := money.New(0, code).Currency()
	return Formatter{cur: cur, lakh: code == money.INR}
}

// Format renders v as a currency string. It accepts Money, decimal.Decimal,
// numbers and numeric strings; anything else is rendered as zero.
//
// Formatting works on the decimal value, so there is no upper bound on the
// amount.
func (f Formatter) Format(v any) string {
	d := toDecimal(v).Round(int32(f.cur.Fraction))
	digits := d.Abs().StringFixed(int32(f.cur.Fraction))
	whole, fraction, _ := strings.Cut(digits, ".")

	var b strings.Builder
	if d.IsNegative() {
		b.WriteByte('-')
	}
	b.WriteString(f.cur.Grapheme)
	b.WriteByte(' ')
	b.WriteString(f.group(whole))
	if fraction != "" {
		b.WriteString(f.cur.Decimal)
		b.WriteString(fraction)
	}
	return b.String()
}

// group inserts the thousand separator into the integer digits.
func (f Formatter) group(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	size := 3
	if f.lakh {
		size = 2
	}
	var groups []string
	for len(head) > size {
		groups = append([]string{head[len(head)-size:]}, groups...)
		head = head[:len(head)-size]
	}
	groups = append([]string{head}, groups...)
	return strings.Join(append(groups, tail), f.cur.Thousand)
}

// Format renders v using the DefaultCurrency.
func Format(v any) string { return defaultFormatter.Format(v) }

var defaultFormatter = NewFormatter(DefaultCurrency)

func toDecimal(v any) decimal.Decimal {
	switch x := v.(type) {
	case Money:
		return x.value
	case *Money:
		if x == nil {
			return decimal.Zero
		}
		return x.value
	case decimal.Decimal:
		return x
	case int:
		return decimal.NewFromInt(int64(x))
	case int64:
		return decimal.NewFromInt(x)
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return decimal.Zero
		}
		return decimal.NewFromFloat(x)
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(x))
		if err != nil {
			return decimal.Zero
		}
		return d
	default:
		return decimal.Zero
	}
}
