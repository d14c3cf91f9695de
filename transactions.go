package fund

import "fmt"

// TxKind identifies the kind of an executed transaction.
type TxKind string

const (
	TxDeposit    TxKind = "deposit"
	TxWithdrawal TxKind = "withdraw"
)

// Transaction is an immutable record of an executed deposit or withdrawal.
// It is created once, on fulfillment, and never mutated or deleted. An
// investor's history is chronological: oldest first.
type Transaction struct {
	Kind TxKind `json:"type"`
	// Amount is the divine-equivalent value of the transaction.
	Amount Amount `json:"amount"`
	// UnitPrice is the price locked at request creation, not the price at
	// fulfillment time.
	UnitPrice Price `json:"unit_price"`
	Date      Date  `json:"date"`
	// Original records the as-requested amount when it was denominated in a
	// currency other than divine.
	Original *Amount `json:"original_amount,omitempty"`
	// Currency of the original amount, when non-divine.
	Currency string `json:"currency,omitempty"`
}

func (t Transaction) String() string {
	switch t.Kind {
	case TxDeposit:
		return fmt.Sprintf("%s deposited %s at %s/unit", t.Date, t.Amount, t.UnitPrice)
	case TxWithdrawal:
		return fmt.Sprintf("%s withdrew %s at %s/unit", t.Date, t.Amount, t.UnitPrice)
	default:
		return fmt.Sprintf("%s %s %s", t.Date, t.Kind, t.Amount)
	}
}

// PendingRequest is an investor's not-yet-fulfilled deposit or withdrawal.
// At most one exists per investor. The locked price is captured at creation
// and is the only price the fulfillment ever uses, which makes fulfillment
// order irrelevant to the outcome.
type PendingRequest struct {
	Kind TxKind `json:"type"`
	// Amount is the divine-equivalent value, fixed at creation using the
	// rates of that moment.
	Amount Amount `json:"amount"`
	// Original is the amount as requested, possibly in another currency.
	Original Amount `json:"original_amount"`
	Currency string `json:"currency"`
	// LockedPrice is the unit price at request creation. Immutable.
	LockedPrice Price `json:"locked_price"`
	Created     Date  `json:"date"`
}

func (p PendingRequest) String() string {
	return fmt.Sprintf("pending %s of %s locked at %s/unit since %s", p.Kind, p.Amount, p.LockedPrice, p.Created)
}
