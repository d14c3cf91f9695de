package fund

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Stakenborg/poe2-investments/poetrade"
)

// recentSalesLimit bounds how many past sales the dashboard carries.
const recentSalesLimit = 50

// Dashboard is the public market-and-fund document published for investors.
// It never contains plaintext invite codes or the webhook URL.
type Dashboard struct {
	UpdatedAt   time.Time                  `json:"updated_at"`
	Currencies  map[string]decimal.Decimal `json:"currencies"`
	RawDivines  Amount                     `json:"raw_divines"`
	ListedValue Amount                     `json:"listed_value"`
	TotalNAV    Amount                     `json:"total_nav"`
	RawNAV      Amount                     `json:"raw_nav"`
	Haircut     decimal.Decimal            `json:"haircut"`
	Rates       map[string]decimal.Decimal `json:"exchange_rates"`
	Listings    []poetrade.Listing         `json:"listings"`
	RecentSales []poetrade.Trade           `json:"recent_sales"`
	Fund        jFund                      `json:"fund"`
	Investors   []jInvestor                `json:"investors"`
}

// BuildDashboard assembles the public dashboard from the current fund state
// and the latest market reads. RawNAV values listings at face; TotalNAV
// applies the haircut.
func (f *Fund) BuildDashboard(listings []poetrade.Listing, sales []poetrade.Trade, now time.Time) Dashboard {
	if len(sales) > recentSalesLimit {
		sales = sales[:recentSalesLimit]
	}
	liquid := f.Liquid()
	doc := buildDoc(f, false)
	return Dashboard{
		UpdatedAt:   now.UTC(),
		Currencies:  f.Balances,
		RawDivines:  liquid,
		ListedValue: f.ListedValue,
		TotalNAV:    f.NAV(),
		RawNAV:      liquid.Add(f.ListedValue),
		Haircut:     f.Haircut,
		Rates:       f.Rates,
		Listings:    listings,
		RecentSales: sales,
		Fund:        doc.Fund,
		Investors:   doc.Investors,
	}
}

// EncodeDashboard writes the dashboard as indented JSON.
func EncodeDashboard(w io.Writer, d Dashboard) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("could not encode dashboard: %w", err)
	}
	return nil
}
