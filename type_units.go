package fund

import "github.com/shopspring/decimal"

// Units is a proportional ownership share of the fund. The unit count is kept
// exact; rounding happens only at presentation time.
type Units struct {
	value decimal.Decimal
}

// U creates a Units value.
func U[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Units {
	return Units{value: newDecimal(value)}
}

func (u Units) Equal(v Units) bool       { return u.value.Equal(v.value) }
func (u Units) Add(v Units) Units        { return Units{value: u.value.Add(v.value)} }
func (u Units) Sub(v Units) Units        { return Units{value: u.value.Sub(v.value)} }
func (u Units) IsZero() bool             { return u.value.IsZero() }
func (u Units) IsNegative() bool         { return u.value.IsNegative() }
func (u Units) IsPositive() bool         { return u.value.IsPositive() }
func (u Units) LessThan(v Units) bool    { return u.value.LessThan(v.value) }
func (u Units) GreaterThan(v Units) bool { return u.value.GreaterThan(v.value) }
func (u Units) Decimal() decimal.Decimal { return u.value }
func (u Units) String() string           { return u.value.Round(4).String() }

// Value returns the divine value of these units at the given unit price.
func (u Units) Value(p Price) Amount {
	return Amount{value: u.value.Mul(p.value), cur: Divine}
}

// ShareOf returns the fraction u/total, or zero when total is zero.
func (u Units) ShareOf(total Units) decimal.Decimal {
	if total.IsZero() {
		return decimal.Zero
	}
	return u.value.Div(total.value)
}

// MarshalJSON implements the json.Marshaler interface.
func (u Units) MarshalJSON() ([]byte, error) { return u.value.MarshalJSON() }

// UnmarshalJSON implements the json.Unmarshaler interface.
func (u *Units) UnmarshalJSON(data []byte) error { return u.value.UnmarshalJSON(data) }

// Price is the divine value of one fund unit.
type Price struct {
	value decimal.Decimal
}

// P creates a Price value.
func P[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Price {
	return Price{value: newDecimal(value)}
}

func (p Price) Equal(q Price) bool       { return p.value.Equal(q.value) }
func (p Price) LessThan(q Price) bool    { return p.value.LessThan(q.value) }
func (p Price) GreaterThan(q Price) bool { return p.value.GreaterThan(q.value) }
func (p Price) IsZero() bool             { return p.value.IsZero() }
func (p Price) Decimal() decimal.Decimal { return p.value }
func (p Price) String() string           { return p.value.Round(4).String() }

// GainOver returns the per-unit gain of p over q, floored at zero.
func (p Price) GainOver(q Price) decimal.Decimal {
	gain := p.value.Sub(q.value)
	if gain.IsNegative() {
		return decimal.Zero
	}
	return gain
}

// MarshalJSON implements the json.Marshaler interface.
func (p Price) MarshalJSON() ([]byte, error) { return p.value.MarshalJSON() }

// UnmarshalJSON implements the json.Unmarshaler interface.
func (p *Price) UnmarshalJSON(data []byte) error { return p.value.UnmarshalJSON(data) }
