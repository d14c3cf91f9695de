package fund

import (
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Game currency identifiers, as the trade API reports them.
const (
	Divine  = "divine"
	Exalted = "exalted"
	Chaos   = "chaos"
	Annul   = "annul"
	Regal   = "regal"
	Vaal    = "vaal"
	Augment = "aug"
	Mirror  = "mirror"
	Chance  = "chance"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true

	// Register game currencies so go-money can format them. The grapheme is
	// the short name used by traders in chat.
	for code, grapheme := range map[string]string{
		Divine:  "div",
		Exalted: "ex",
		Chaos:   "c",
		Annul:   "annul",
		Regal:   "regal",
		Vaal:    "vaal",
		Augment: "aug",
		Mirror:  "mirror",
		Chance:  "chance",
	} {
		money.AddCurrency(code, grapheme, "1 $", ".", ",", 2)
	}
}

// newDecimal is a convenient factory for decimal.Decimal.
func newDecimal[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	case uint:
		return decimal.NewFromUint64(uint64(v))
	case uint32:
		return decimal.NewFromUint64(uint64(v))
	case uint64:
		return decimal.NewFromUint64(v)
	default:
		panic("unsupported type")
	}
}

// Amount represents a quantity of a game currency.
type Amount struct {
	value decimal.Decimal
	cur   string
}

// A creates an Amount in the given currency.
func A[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T, currency string) Amount {
	return Amount{value: newDecimal(value), cur: currency}
}

// ParseAmount parses a decimal string into an Amount of the given currency.
// An empty currency means divine.
func ParseAmount(s, currency string) (Amount, error) {
	v, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, fmt.Errorf("%w: %q is not a number", ErrInvalidAmount, s)
	}
	if currency == "" {
		currency = Divine
	}
	return Amount{value: v, cur: currency}, nil
}

// D creates a divine-denominated Amount, the fund's reporting currency.
func D[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Amount {
	return A(value, Divine)
}

// currency returns the full go-money currency, never nil.
func (a Amount) currency() money.Currency {
	cur := a.cur
	if cur == "" {
		cur = Divine
	}
	return *money.New(0, cur).Currency()
}

// String formats the amount with its currency grapheme, e.g. "42.50 div".
func (a Amount) String() string {
	cur := a.currency()
	dec := a.value.Round(int32(cur.Fraction)).Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.IntPart())
}

func (a Amount) Currency() string                 { return a.cur }
func (a Amount) Decimal() decimal.Decimal         { return a.value }
func (a Amount) Equal(b Amount) bool              { return a.value.Equal(b.value) && a.cur == b.cur }
func (a Amount) IsZero() bool                     { return a.value.IsZero() }
func (a Amount) IsPositive() bool                 { return a.value.IsPositive() }
func (a Amount) IsNegative() bool                 { return a.value.IsNegative() }
func (a Amount) LessThan(b Amount) bool           { return a.value.LessThan(b.value) }
func (a Amount) LessThanOrEqual(b Amount) bool    { return a.value.LessThanOrEqual(b.value) }
func (a Amount) GreaterThan(b Amount) bool        { return a.value.GreaterThan(b.value) }
func (a Amount) GreaterThanOrEqual(b Amount) bool { return a.value.GreaterThanOrEqual(b.value) }
func (a Amount) Neg() Amount                      { return Amount{value: a.value.Neg(), cur: a.cur} }

// binary operators.
func (a Amount) Add(b Amount) Amount { return Amount{value: a.value.Add(b.value), cur: cur(a, b)} }
func (a Amount) Sub(b Amount) Amount { return Amount{value: a.value.Sub(b.value), cur: cur(a, b)} }

// Scale multiplies the amount by a dimensionless factor (haircut, fee rate).
func (a Amount) Scale(f decimal.Decimal) Amount {
	return Amount{value: a.value.Mul(f), cur: a.cur}
}

// AtPrice converts a divine amount into fund units at the given unit price.
func (a Amount) AtPrice(p Price) Units {
	return Units{value: a.value.Div(p.value)}
}

// makes the "" currency totally weak.
func cur(a, b Amount) string {
	if a.cur == "" {
		return b.cur
	}
	if b.cur == "" {
		return a.cur
	}
	if a.cur != b.cur {
		panic("currency mismatch " + a.cur + " != " + b.cur)
	}
	return a.cur
}

// MarshalJSON implements the json.Marshaler interface.
func (a Amount) MarshalJSON() ([]byte, error) { return a.value.MarshalJSON() }

// UnmarshalJSON implements the json.Unmarshaler interface. The currency is
// carried by a sibling field in the snapshot, not by the value itself.
func (a *Amount) UnmarshalJSON(data []byte) error { return a.value.UnmarshalJSON(data) }
