package fund

import (
	"context"
	"fmt"
	"strings"
)

// Book binds the fund aggregate to its store and valuation source and
// exposes the command surface. Every command is one logical transaction:
// load the whole snapshot, validate, compute, save the whole snapshot.
// A validation failure writes nothing.
type Book struct {
	Store *Store
	// Source is optional. When nil, commands price against the last stored
	// valuation and say so in their summary.
	Source ValuationSource
}

// Result is the structured outcome of a command: the new state plus a
// human-readable account of what happened.
type Result struct {
	Summary string
	Fund    *Fund
	// Code carries a freshly generated plaintext invite code, when the
	// command produced one. It is shown once and never published.
	Code string
	// Fulfilled lists the requests a fulfillment command executed.
	Fulfilled []*FulfillResult
}

// load reads the snapshot and refreshes the valuation if a source is wired.
func (b *Book) load(ctx context.Context) (*Fund, error) {
	f, err := b.Store.Load()
	if err != nil {
		return nil, err
	}
	if b.Source != nil {
		v, err := b.Source.Read(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValuationUnavailable, err)
		}
		f.ApplyValuation(v)
	}
	return f, nil
}

// save validates invariants and persists both snapshots.
func (b *Book) save(f *Fund) error {
	if err := f.CheckInvariants(); err != nil {
		return err
	}
	return b.Store.Save(f)
}

// staleNote annotates a summary when pricing ran on a stored valuation.
func (b *Book) staleNote(f *Fund) string {
	if b.Source != nil {
		return ""
	}
	if f.ValuedAt.IsZero() {
		return " (no market valuation yet)"
	}
	return fmt.Sprintf(" (valuation as of %s)", f.ValuedAt.Format("2006-01-02 15:04"))
}

// CreateOrDeposit creates the investor if needed, then records a pending
// deposit request at the current unit price. When the investor does not
// exist and confirmed is false, it fails with ErrConfirmationRequired and
// changes nothing; the caller re-invokes with confirmation.
func (b *Book) CreateOrDeposit(ctx context.Context, name string, amount Amount, confirmed bool) (*Result, error) {
	f, err := b.load(ctx)
	if err != nil {
		return nil, err
	}

	res := &Result{Fund: f}
	var lines []string

	if f.Find(name) == nil {
		if !confirmed {
			return nil, fmt.Errorf("%w: %q", ErrConfirmationRequired, name)
		}
		inv, err := f.Create(name)
		if err != nil {
			return nil, err
		}
		res.Code = inv.Code
		lines = append(lines, fmt.Sprintf("Created investor %s. Invite code: %s (share the code, not the hash).", inv.Name, inv.Code))
	}

	price := f.Price()
	req, err := f.CreateRequest(name, TxDeposit, amount, price, Today())
	if err != nil {
		return nil, err
	}
	if err := b.save(f); err != nil {
		return nil, err
	}

	lines = append(lines, fmt.Sprintf("Deposit request for %s: %s (%s) locked at %s/unit%s.",
		f.Find(name).Name, req.Original, req.Amount, req.LockedPrice, b.staleNote(f)))
	res.Summary = strings.Join(lines, "\n")
	return res, nil
}

// Deposit records a pending deposit request for an existing investor.
func (b *Book) Deposit(ctx context.Context, name string, amount Amount) (*Result, error) {
	f, err := b.load(ctx)
	if err != nil {
		return nil, err
	}
	price := f.Price()
	req, err := f.CreateRequest(name, TxDeposit, amount, price, Today())
	if err != nil {
		return nil, err
	}
	if err := b.save(f); err != nil {
		return nil, err
	}
	return &Result{
		Fund: f,
		Summary: fmt.Sprintf("Deposit request for %s: %s (%s) locked at %s/unit%s.",
			f.Find(name).Name, req.Original, req.Amount, req.LockedPrice, b.staleNote(f)),
	}, nil
}

// RequestWithdrawal records a pending withdrawal request, price-locked now.
func (b *Book) RequestWithdrawal(ctx context.Context, name string, amount Amount) (*Result, error) {
	f, err := b.load(ctx)
	if err != nil {
		return nil, err
	}
	price := f.Price()
	req, err := f.CreateRequest(name, TxWithdrawal, amount, price, Today())
	if err != nil {
		return nil, err
	}
	if err := b.save(f); err != nil {
		return nil, err
	}
	return &Result{
		Fund: f,
		Summary: fmt.Sprintf("Withdrawal request for %s: %s (%s) locked at %s/unit%s.",
			f.Find(name).Name, req.Original, req.Amount, req.LockedPrice, b.staleNote(f)),
	}, nil
}

// Fulfill executes one investor's pending request at its locked price.
func (b *Book) Fulfill(ctx context.Context, name string) (*Result, error) {
	f, err := b.load(ctx)
	if err != nil {
		return nil, err
	}
	fr, err := f.Fulfill(name, Today())
	if err != nil {
		return nil, err
	}
	if err := b.save(f); err != nil {
		return nil, err
	}
	return &Result{
		Fund:      f,
		Fulfilled: []*FulfillResult{fr},
		Summary:   fulfillSummary(f, fr),
	}, nil
}

// FulfillAll executes every pending request. Each consumes only its own
// locked price, so the iteration order does not affect any outcome.
func (b *Book) FulfillAll(ctx context.Context) (*Result, error) {
	f, err := b.load(ctx)
	if err != nil {
		return nil, err
	}

	var fulfilled []*FulfillResult
	var lines []string
	for _, inv := range f.Investors {
		if inv.Pending == nil {
			continue
		}
		fr, err := f.Fulfill(inv.Name, Today())
		if err != nil {
			return nil, err
		}
		fulfilled = append(fulfilled, fr)
		lines = append(lines, fulfillSummary(f, fr))
	}
	if len(fulfilled) == 0 {
		return &Result{Fund: f, Summary: "No pending requests to fulfill."}, nil
	}
	if err := b.save(f); err != nil {
		return nil, err
	}
	return &Result{Fund: f, Fulfilled: fulfilled, Summary: strings.Join(lines, "\n")}, nil
}

// GenerateCode replaces an investor's invite code, invalidating the old one.
func (b *Book) GenerateCode(ctx context.Context, name string) (*Result, error) {
	f, err := b.Store.Load() // no valuation needed
	if err != nil {
		return nil, err
	}
	code, err := f.RegenerateCode(name)
	if err != nil {
		return nil, err
	}
	if err := b.save(f); err != nil {
		return nil, err
	}
	inv := f.Find(name)
	return &Result{
		Fund: f,
		Code: code,
		Summary: fmt.Sprintf("New invite code for %s: %s\nHash: %s\nShare the code, not the hash.",
			inv.Name, code, inv.CodeHash),
	}, nil
}

// Snapshot loads the fund, with a market refresh when a source is wired.
// A refreshed valuation is persisted so later offline reads stay close to
// the market.
func (b *Book) Snapshot(ctx context.Context) (*Fund, error) {
	f, err := b.load(ctx)
	if err != nil {
		return nil, err
	}
	if b.Source != nil {
		if err := b.save(f); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// SetWebhook stores the Discord webhook used for request notifications.
func (b *Book) SetWebhook(url string) (*Result, error) {
	f, err := b.Store.Load()
	if err != nil {
		return nil, err
	}
	f.Webhook = url
	if err := b.save(f); err != nil {
		return nil, err
	}
	return &Result{Fund: f, Summary: "Discord webhook set."}, nil
}

func fulfillSummary(f *Fund, fr *FulfillResult) string {
	switch fr.Request.Kind {
	case TxDeposit:
		return fmt.Sprintf("Fulfilled deposit for %s: %s at %s/unit, %s units issued (fund now %s units).",
			fr.Investor.Name, fr.Request.Amount, fr.Request.LockedPrice, fr.UnitsDelta, f.TotalUnits)
	default:
		return fmt.Sprintf("Fulfilled withdrawal for %s: %s at %s/unit, %s units burned, fee %s, net %s to pay out (fund now %s units).",
			fr.Investor.Name, fr.Request.Amount, fr.Request.LockedPrice, fr.UnitsDelta, fr.Fee, fr.Net, f.TotalUnits)
	}
}
