// Package renderer turns fund state into markdown reports for the CLI.
// Rendering is read-only: nothing here mutates the fund.
package renderer

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/Stakenborg/poe2-investments"
)

func sortedCurrencies(b fund.Balances) []string {
	keys := make([]string, 0, len(b))
	for c := range b {
		keys = append(keys, c)
	}
	sort.Strings(keys)
	return keys
}

func pct(d decimal.Decimal) string {
	return d.Mul(decimal.NewFromInt(100)).Round(1).String() + "%"
}

func signed(a fund.Amount) string {
	if a.IsNegative() {
		return a.String()
	}
	return "+" + a.String()
}
