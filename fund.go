package fund

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Default fund parameters, matching the terms the fund launched with.
var (
	DefaultHaircut = decimal.RequireFromString("0.85")
	DefaultFeeRate = decimal.RequireFromString("0.25")
)

// Fund is the singleton aggregate: liquid balances, issued units, fee terms,
// and the investors it exclusively owns. A Fund value is loaded whole from
// the store, mutated by exactly one command, and saved whole.
type Fund struct {
	// Balances are the liquid holdings per game currency.
	Balances Balances
	// TotalUnits is the number of units outstanding. Invariant: equals the
	// sum of all investors' units outside an in-flight mutation.
	TotalUnits Units
	// HighWaterMark is the highest unit price at which a performance fee has
	// been assessed. Monotonically non-decreasing.
	HighWaterMark Price
	// Haircut discounts listed-for-sale value in NAV, fraction in (0,1].
	Haircut decimal.Decimal
	// FeeRate is the performance fee rate, fraction in [0,1).
	FeeRate decimal.Decimal

	// Last point-in-time valuation, refreshed by the valuation source.
	// Commands that do not fetch run against these and report their age.
	ListedValue Amount
	Rates       Rates
	ValuedAt    time.Time

	// Webhook is the Discord webhook for request notifications, optional.
	Webhook string

	Investors []*Investor
}

// Investor is a participant in the fund, keyed by unique name.
type Investor struct {
	Name string
	// Code is the plaintext invite code. It exists only in the private
	// snapshot; the public snapshot carries only CodeHash.
	Code     string
	CodeHash string
	// Units is this investor's share count, non-negative.
	Units Units
	// Deposited is the cumulative divine amount contributed. Reduced
	// proportionally on withdrawal so profit stays meaningful.
	Deposited Amount
	// Manager marks the fund operator's own position in the cap table.
	Manager bool
	Pending *PendingRequest
	// History holds executed transactions, chronological (oldest first).
	History []Transaction
}

// New creates an empty fund with the default terms: launch price 1.00,
// 15% listing haircut, 25% performance fee.
func New() *Fund {
	return &Fund{
		Balances:      make(Balances),
		HighWaterMark: LaunchPrice,
		Haircut:       DefaultHaircut,
		FeeRate:       DefaultFeeRate,
		ListedValue:   D(0),
		Rates:         DefaultRates(),
	}
}

// Liquid returns the divine-equivalent value of all currency balances.
func (f *Fund) Liquid() Amount { return f.Balances.DivineValue(f.Rates) }

// NAV returns the adjusted net asset value from the last known valuation.
func (f *Fund) NAV() Amount { return ComputeNAV(f.Liquid(), f.ListedValue, f.Haircut) }

// Price returns the current unit price derived from NAV and units
// outstanding, or the launch price when no units exist.
func (f *Fund) Price() Price { return UnitPrice(f.NAV(), f.TotalUnits) }

// Find returns the investor with that name, case-insensitively, or nil.
func (f *Fund) Find(name string) *Investor {
	for _, inv := range f.Investors {
		if strings.EqualFold(inv.Name, name) {
			return inv
		}
	}
	return nil
}

// Create adds a new investor with no position and a fresh invite code.
// The first investor ever created is flagged as the manager.
func (f *Fund) Create(name string) (*Investor, error) {
	if f.Find(name) != nil {
		return nil, fmt.Errorf("investor %q already exists", name)
	}
	code, err := NewInviteCode()
	if err != nil {
		return nil, err
	}
	inv := &Investor{
		Name:      name,
		Code:      code,
		CodeHash:  HashCode(code),
		Deposited: D(0),
		Manager:   len(f.Investors) == 0,
	}
	f.Investors = append(f.Investors, inv)
	return inv, nil
}

// TotalDeposited sums all investors' cumulative contributions.
func (f *Fund) TotalDeposited() Amount {
	total := D(0)
	for _, inv := range f.Investors {
		total = total.Add(inv.Deposited)
	}
	return total
}

// CheckInvariants verifies the aggregate's structural invariants. It is run
// after every mutating command, before the snapshot is written.
func (f *Fund) CheckInvariants() error {
	sum := U(0)
	for _, inv := range f.Investors {
		if inv.Units.IsNegative() {
			return fmt.Errorf("investor %q holds negative units %s", inv.Name, inv.Units)
		}
		sum = sum.Add(inv.Units)
	}
	if !sum.Equal(f.TotalUnits) {
		return fmt.Errorf("units out of balance: investors hold %s, fund issued %s", sum, f.TotalUnits)
	}
	if f.TotalUnits.IsNegative() {
		return fmt.Errorf("negative total units %s", f.TotalUnits)
	}
	return nil
}

// Age returns how stale the last valuation is, or zero if never valued.
func (f *Fund) Age() time.Duration {
	if f.ValuedAt.IsZero() {
		return 0
	}
	return time.Since(f.ValuedAt)
}
