package fund

import "github.com/shopspring/decimal"

// ComputeFee returns the performance fee on a withdrawal priced at the
// locked unit price. The fee applies only to the fraction of the withdrawn
// value attributable to appreciation above the high-water mark:
//
//	fee = amount * max(0, locked - hwm)/locked * feeRate
//
// Entering at the current price and exiting at the same price therefore
// costs nothing, and a price that merely recovers to a previous peak is
// never charged twice.
func ComputeFee(locked, hwm Price, amount Amount, feeRate decimal.Decimal) Amount {
	gainPerUnit := locked.GainOver(hwm)
	if gainPerUnit.IsZero() || locked.IsZero() {
		return D(0)
	}
	gainFraction := gainPerUnit.Div(locked.Decimal())
	return amount.Scale(gainFraction).Scale(feeRate)
}

// assessFee computes the fee for a withdrawal and ratchets the high-water
// mark up to the locked price when the exit establishes a new peak. The fee
// is reported only; collecting it is an out-of-band manual action.
func (f *Fund) assessFee(locked Price, amount Amount) Amount {
	fee := ComputeFee(locked, f.HighWaterMark, amount, f.FeeRate)
	if locked.GreaterThan(f.HighWaterMark) {
		f.HighWaterMark = locked
	}
	return fee
}
