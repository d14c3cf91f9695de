package fund

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// CreateRequest records a pending deposit or withdrawal for an investor,
// locking the given unit price. The amount may be denominated in any rated
// currency; its divine equivalent is fixed immediately, at creation-time
// rates. Nothing is appended to history here: history records only
// transactions that actually executed.
//
// Validation happens before any mutation; on error the fund is untouched.
func (f *Fund) CreateRequest(name string, kind TxKind, amount Amount, price Price, now Date) (*PendingRequest, error) {
	inv := f.Find(name)
	if inv == nil {
		return nil, fmt.Errorf("%w: %q", ErrInvestorNotFound, name)
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: got %s", ErrInvalidAmount, amount)
	}
	// A wiped-out fund has no meaningful unit price; locking a request at
	// zero would divide by it at fulfillment.
	if !price.Decimal().IsPositive() {
		return nil, fmt.Errorf("%w: unit price is %s", ErrFundValueless, price)
	}
	if inv.Pending != nil {
		return nil, fmt.Errorf("%w: %s has a pending %s", ErrRequestAlreadyPending, inv.Name, inv.Pending.Kind)
	}

	divines, err := f.Rates.ToDivine(amount)
	if err != nil {
		return nil, err
	}

	if kind == TxWithdrawal {
		position := inv.Units.Value(price)
		if divines.GreaterThan(position) {
			return nil, fmt.Errorf("%w: requested %s but position is worth %s",
				ErrInsufficientPosition, divines, position)
		}
	}

	inv.Pending = &PendingRequest{
		Kind:        kind,
		Amount:      divines,
		Original:    amount,
		Currency:    amount.Currency(),
		LockedPrice: price,
		Created:     now,
	}
	return inv.Pending, nil
}

// FulfillResult reports what a fulfillment did. For a withdrawal, Net is the
// divine amount to hand over out-of-band; the engine records unit and ledger
// changes but never moves value itself.
type FulfillResult struct {
	Investor   *Investor
	Request    PendingRequest
	UnitsDelta Units
	Fee        Amount
	Net        Amount
}

// Fulfill consumes an investor's pending request. It never re-reads the
// current unit price: all math uses the price locked at request creation,
// so fulfilling requests A then B yields the same outcomes as B then A.
func (f *Fund) Fulfill(name string, now Date) (*FulfillResult, error) {
	inv := f.Find(name)
	if inv == nil {
		return nil, fmt.Errorf("%w: %q", ErrInvestorNotFound, name)
	}
	if inv.Pending == nil {
		return nil, fmt.Errorf("%w for %s", ErrNoPendingRequest, inv.Name)
	}

	req := *inv.Pending
	tx := Transaction{
		Kind:      req.Kind,
		Amount:    req.Amount,
		UnitPrice: req.LockedPrice,
		Date:      now,
	}
	if req.Currency != Divine && req.Currency != "" {
		original := req.Original
		tx.Original = &original
		tx.Currency = req.Currency
	}

	res := &FulfillResult{Investor: inv, Request: req}

	switch req.Kind {
	case TxDeposit:
		issued := req.Amount.AtPrice(req.LockedPrice)
		inv.Units = inv.Units.Add(issued)
		inv.Deposited = inv.Deposited.Add(req.Amount)
		f.TotalUnits = f.TotalUnits.Add(issued)
		f.Balances.Add(req.Original)
		res.UnitsDelta = issued
		res.Fee = D(0)
		res.Net = req.Amount

	case TxWithdrawal:
		fee := f.assessFee(req.LockedPrice, req.Amount)
		burned := req.Amount.AtPrice(req.LockedPrice)
		// Reduce the cost basis proportionally to the units leaving, so the
		// remaining position's profit figure stays honest.
		if !inv.Units.IsZero() {
			remaining := decimal.NewFromInt(1).Sub(burned.Decimal().Div(inv.Units.Decimal()))
			inv.Deposited = inv.Deposited.Scale(remaining)
		}
		inv.Units = inv.Units.Sub(burned)
		f.TotalUnits = f.TotalUnits.Sub(burned)
		f.Balances.Sub(req.Original)
		res.UnitsDelta = burned
		res.Fee = fee
		res.Net = req.Amount.Sub(fee)

	default:
		return nil, fmt.Errorf("unknown request kind %q", req.Kind)
	}

	inv.History = append(inv.History, tx)
	inv.Pending = nil
	return res, nil
}
