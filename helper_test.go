package fund

import (
	"testing"

	"github.com/shopspring/decimal"
)

var testDay = MustParseDate("2026-08-01")

// newTestFund creates a fund holding the given divine balance, with no
// listings, so the NAV is exactly the balance.
func newTestFund(t *testing.T, divines float64) *Fund {
	t.Helper()
	f := New()
	f.Balances.Add(D(divines))
	return f
}

// mustCreate adds an investor or fails the test.
func mustCreate(t *testing.T, f *Fund, name string) *Investor {
	t.Helper()
	inv, err := f.Create(name)
	if err != nil {
		t.Fatalf("Create(%q) failed: %v", name, err)
	}
	return inv
}

// mustDeposit records and immediately fulfills a divine deposit.
func mustDeposit(t *testing.T, f *Fund, name string, divines float64) *FulfillResult {
	t.Helper()
	if _, err := f.CreateRequest(name, TxDeposit, D(divines), f.Price(), testDay); err != nil {
		t.Fatalf("deposit request for %q failed: %v", name, err)
	}
	res, err := f.Fulfill(name, testDay)
	if err != nil {
		t.Fatalf("deposit fulfillment for %q failed: %v", name, err)
	}
	return res
}

// setValue moves the fund's divine balance so that its NAV becomes nav.
// Unit counts are untouched; only the valuation changes.
func setValue(t *testing.T, f *Fund, nav float64) {
	t.Helper()
	current := f.NAV().Decimal()
	f.Balances.Add(D(decimal.NewFromFloat(nav).Sub(current)))
}

// eq compares a decimal against an expected float at 4 decimal places,
// enough to absorb division precision noise.
func eq(t *testing.T, name string, got decimal.Decimal, want float64) {
	t.Helper()
	w := decimal.NewFromFloat(want).Round(4)
	if !got.Round(4).Equal(w) {
		t.Errorf("%s = %s, want %s", name, got.Round(4), w)
	}
}
