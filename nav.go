package fund

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// LaunchPrice is the unit price of a fund that has not issued any units yet.
var LaunchPrice = P(1)

// Rates maps a game currency to its divine value (divine per 1 unit).
// The divine rate is always 1.
type Rates map[string]decimal.Decimal

// DefaultRates returns the rates known without any market data.
func DefaultRates() Rates {
	return Rates{Divine: decimal.NewFromInt(1)}
}

// ToDivine converts an amount into its divine equivalent. It fails with
// ErrNoExchangeRate when the currency has no known rate.
func (r Rates) ToDivine(a Amount) (Amount, error) {
	if a.Currency() == Divine || a.Currency() == "" {
		return D(a.Decimal()), nil
	}
	rate, ok := r[a.Currency()]
	if !ok || rate.IsZero() {
		return Amount{}, fmt.Errorf("%w: %q", ErrNoExchangeRate, a.Currency())
	}
	return D(a.Decimal().Mul(rate)), nil
}

// Balances holds the fund's liquid holdings, per game currency.
type Balances map[string]decimal.Decimal

// Add credits an amount to its currency balance.
func (b Balances) Add(a Amount) {
	c := a.Currency()
	if c == "" {
		c = Divine
	}
	b[c] = b[c].Add(a.Decimal())
}

// Sub debits an amount from its currency balance. Balances may go negative;
// reconciliation against the actual stash is a manual operator concern.
func (b Balances) Sub(a Amount) { b.Add(a.Neg()) }

// DivineValue sums all balances in divine terms. Currencies without a known
// rate are skipped, matching how the fund treats unrated trade revenue.
func (b Balances) DivineValue(rates Rates) Amount {
	total := decimal.Zero
	for cur, amt := range b {
		if cur == Divine {
			total = total.Add(amt)
			continue
		}
		if rate, ok := rates[cur]; ok {
			total = total.Add(amt.Mul(rate))
		}
	}
	return D(total)
}

// ComputeNAV returns the adjusted net asset value:
// liquid + listedValue * haircut. Listed items are discounted because a
// listing price is an ask, not a sale.
func ComputeNAV(liquid, listedValue Amount, haircut decimal.Decimal) Amount {
	return liquid.Add(listedValue.Scale(haircut))
}

// UnitPrice derives the price of one unit from the adjusted NAV. A fund with
// no units outstanding prices at LaunchPrice rather than erroring: the first
// deposit always enters at 1.00.
func UnitPrice(nav Amount, totalUnits Units) Price {
	if totalUnits.IsZero() {
		return LaunchPrice
	}
	return Price{value: nav.Decimal().Div(totalUnits.Decimal())}
}
