package fund

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
)

// The fund persists as two JSON documents: a private one carrying plaintext
// invite codes, and a public one carrying only their hashes. Both are
// encoded from the same aggregate in the same breath and always describe
// identical units, prices, and history.
//
// Derived figures (value, share, profit) are written out too so the public
// document is directly renderable, but they are recomputed wholesale on
// every encode and ignored on decode.

// jInvestor is the persisted form of an investor.
type jInvestor struct {
	Name      string           `json:"name"`
	Code      string           `json:"code,omitempty"` // private snapshot only
	Hash      string           `json:"hash"`
	Units     Units            `json:"units"`
	Deposited Amount           `json:"deposited"`
	Manager   bool             `json:"manager,omitempty"`
	Value     Amount           `json:"value"`
	Share     decimal.Decimal  `json:"share"`
	Profit    Amount           `json:"profit"`
	PctChange *decimal.Decimal `json:"pct_change,omitempty"`
	Pending   *PendingRequest  `json:"pending"`
	History   []Transaction    `json:"history"`
}

// jFund is the persisted form of the fund aggregate.
type jFund struct {
	Currencies     map[string]decimal.Decimal `json:"currencies"`
	TotalUnits     Units                      `json:"total_units"`
	UnitPrice      Price                      `json:"unit_price"`
	HighWaterMark  Price                      `json:"hwm"`
	Haircut        decimal.Decimal            `json:"haircut"`
	FeeRate        decimal.Decimal            `json:"perf_fee_pct"`
	TotalDeposited Amount                     `json:"total_deposited"`
	TotalProfit    Amount                     `json:"total_profit"`
	ListedValue    Amount                     `json:"listed_value"`
	Rates          map[string]decimal.Decimal `json:"exchange_rates"`
	ValuedAt       time.Time                  `json:"valued_at,omitzero"`
	Webhook        string                     `json:"discord_webhook,omitempty"` // private snapshot only
}

type jDoc struct {
	Fund      jFund       `json:"fund"`
	Investors []jInvestor `json:"investors"`
}

// EncodeFund writes the fund as an indented JSON document. When private is
// false, plaintext invite codes and the webhook URL are omitted.
func EncodeFund(w io.Writer, f *Fund, private bool) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(buildDoc(f, private)); err != nil {
		return fmt.Errorf("could not encode fund: %w", err)
	}
	return nil
}

func buildDoc(f *Fund, private bool) jDoc {
	price := f.Price()
	doc := jDoc{
		Fund: jFund{
			Currencies:     f.Balances,
			TotalUnits:     f.TotalUnits,
			UnitPrice:      P(price.Decimal().Round(6)),
			HighWaterMark:  f.HighWaterMark,
			Haircut:        f.Haircut,
			FeeRate:        f.FeeRate,
			TotalDeposited: f.TotalDeposited(),
			TotalProfit:    f.TotalProfit(price),
			ListedValue:    f.ListedValue,
			Rates:          f.Rates,
			ValuedAt:       f.ValuedAt,
		},
		Investors: make([]jInvestor, 0, len(f.Investors)),
	}
	if private {
		doc.Fund.Webhook = f.Webhook
	}
	for _, inv := range f.Investors {
		value := inv.Units.Value(price)
		ji := jInvestor{
			Name:      inv.Name,
			Hash:      inv.CodeHash,
			Units:     inv.Units,
			Deposited: inv.Deposited,
			Manager:   inv.Manager,
			Value:     value,
			Share:     inv.Units.ShareOf(f.TotalUnits).Round(6),
			Profit:    value.Sub(inv.Deposited),
			Pending:   inv.Pending,
			History:   inv.History,
		}
		if inv.Deposited.IsPositive() {
			pct := value.Sub(inv.Deposited).Decimal().Div(inv.Deposited.Decimal()).Mul(decimal.NewFromInt(100)).Round(1)
			ji.PctChange = &pct
		}
		if private {
			ji.Code = inv.Code
		}
		doc.Investors = append(doc.Investors, ji)
	}
	return doc
}

// DecodeFund reads a fund document back into the aggregate. Derived figures
// are discarded; they are a function of units and valuation.
func DecodeFund(r io.Reader) (*Fund, error) {
	var doc jDoc
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("could not decode fund: %w", err)
	}

	f := New()
	if doc.Fund.Currencies != nil {
		f.Balances = doc.Fund.Currencies
	}
	f.TotalUnits = doc.Fund.TotalUnits
	f.HighWaterMark = doc.Fund.HighWaterMark
	if f.HighWaterMark.IsZero() {
		f.HighWaterMark = LaunchPrice
	}
	if !doc.Fund.Haircut.IsZero() {
		f.Haircut = doc.Fund.Haircut
	}
	if !doc.Fund.FeeRate.IsZero() {
		f.FeeRate = doc.Fund.FeeRate
	}
	f.ListedValue = D(doc.Fund.ListedValue.Decimal())
	if doc.Fund.Rates != nil {
		f.Rates = doc.Fund.Rates
	}
	f.ValuedAt = doc.Fund.ValuedAt
	f.Webhook = doc.Fund.Webhook

	for _, ji := range doc.Investors {
		inv := &Investor{
			Name:      ji.Name,
			Code:      ji.Code,
			CodeHash:  ji.Hash,
			Units:     ji.Units,
			Deposited: D(ji.Deposited.Decimal()),
			Manager:   ji.Manager,
			Pending:   ji.Pending,
			History:   ji.History,
		}
		// Amounts unmarshal as bare decimals; re-attach the currency carried
		// by the sibling field.
		if p := inv.Pending; p != nil {
			pcur := p.Currency
			if pcur == "" {
				pcur = Divine
			}
			p.Amount = D(p.Amount.Decimal())
			p.Original = A(p.Original.Decimal(), pcur)
		}
		for i := range inv.History {
			tx := &inv.History[i]
			tx.Amount = D(tx.Amount.Decimal())
			if tx.Original != nil {
				orig := A(tx.Original.Decimal(), tx.Currency)
				tx.Original = &orig
			}
		}
		f.Investors = append(f.Investors, inv)
	}

	if err := f.CheckInvariants(); err != nil {
		return nil, fmt.Errorf("corrupt fund snapshot: %w", err)
	}
	return f, nil
}
