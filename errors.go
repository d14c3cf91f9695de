package fund

import "errors"

// Every command either fully succeeds (both snapshots updated consistently)
// or fully fails with one of these, leaving the prior snapshot untouched.

// Validation errors: rejected before any mutation.
var (
	ErrInvalidAmount         = errors.New("amount must be positive")
	ErrInsufficientPosition  = errors.New("requested amount exceeds position value")
	ErrRequestAlreadyPending = errors.New("a pending request already exists")
	ErrFundValueless         = errors.New("fund unit price is not positive")
)

// Not-found errors.
var (
	ErrInvestorNotFound = errors.New("investor not found")
	ErrNoPendingRequest = errors.New("no pending request")
)

// IO errors: the operation is aborted and can be retried; prior state is preserved.
var (
	ErrValuationUnavailable = errors.New("valuation source unavailable")
	ErrPersistFailed        = errors.New("could not persist fund snapshot")
	ErrNoExchangeRate       = errors.New("no exchange rate for currency")
)

// ErrConfirmationRequired is returned by CreateOrDeposit when the investor
// does not exist and the command was not invoked with confirmation. No state
// is changed; the caller re-invokes with confirmation to create the investor.
var ErrConfirmationRequired = errors.New("investor does not exist, confirmation required to create")
