package fund

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Position is an investor's row in the cap table, fully derived from units
// and the current unit price. Positions are always recomputed for every
// investor from scratch; nothing is updated incrementally.
type Position struct {
	Name      string
	Manager   bool
	Units     Units
	Deposited Amount
	Value     Amount
	// Share is the fraction of the fund this position represents, in [0,1].
	Share decimal.Decimal
	// Profit is value minus cumulative deposits; negative when under water.
	Profit Amount
	// PctChange is profit relative to deposits, in percent. Nil when the
	// investor has not deposited anything yet.
	PctChange *decimal.Decimal
	Pending   *PendingRequest
}

// CapTable computes every investor's position at the given unit price,
// ordered by descending value. The manager is flagged, not floated to the
// top: ordering is by value alone.
func (f *Fund) CapTable(price Price) []Position {
	positions := make([]Position, 0, len(f.Investors))
	for _, inv := range f.Investors {
		value := inv.Units.Value(price)
		pos := Position{
			Name:      inv.Name,
			Manager:   inv.Manager,
			Units:     inv.Units,
			Deposited: inv.Deposited,
			Value:     value,
			Share:     inv.Units.ShareOf(f.TotalUnits),
			Profit:    value.Sub(inv.Deposited),
			Pending:   inv.Pending,
		}
		if inv.Deposited.IsPositive() {
			pct := pos.Profit.Decimal().Div(inv.Deposited.Decimal()).Mul(decimal.NewFromInt(100))
			pos.PctChange = &pct
		}
		positions = append(positions, pos)
	}
	sort.SliceStable(positions, func(i, j int) bool {
		return positions[i].Value.GreaterThan(positions[j].Value)
	})
	return positions
}

// TotalProfit sums profit across the cap table at the given price.
func (f *Fund) TotalProfit(price Price) Amount {
	total := D(0)
	for _, inv := range f.Investors {
		total = total.Add(inv.Units.Value(price).Sub(inv.Deposited))
	}
	return total
}
