package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/Stakenborg/poe2-investments"
	"github.com/Stakenborg/poe2-investments/config"
	"github.com/Stakenborg/poe2-investments/poetrade"
)

// marketRefresh is the outcome of one full market pass: refreshed fund
// state, the sales not seen before, and the current listings.
type marketRefresh struct {
	Fund     *fund.Fund
	Fresh    []poetrade.Trade
	Recent   []poetrade.Trade
	Listings []poetrade.Listing
}

// refreshMarket pulls rates, trade history and listings, credits newly seen
// sales to the fund's balances, revalues the fund, and persists everything:
// snapshots, the seen-trades database, and the CSV ledger.
func refreshMarket(ctx context.Context, cfg config.Config) (*marketRefresh, error) {
	client := marketClient(cfg)
	if client == nil {
		return nil, fmt.Errorf("POESESSID is required to fetch market data")
	}

	store := fund.NewStore(cfg.DataDir)
	f, err := store.Load()
	if err != nil {
		return nil, err
	}

	rates, err := client.FetchRates(ctx)
	if err != nil {
		return nil, err
	}
	trades, err := client.FetchHistory(ctx, rates)
	if err != nil {
		return nil, err
	}

	ts, err := poetrade.OpenStore(cfg.TradeDB())
	if err != nil {
		return nil, err
	}
	defer ts.Close()

	fresh, err := ts.FilterNew(trades)
	if err != nil {
		return nil, err
	}
	if err := ts.Record(fresh); err != nil {
		return nil, err
	}
	// Sale proceeds sit in the stash in whatever currency the buyer paid.
	for _, t := range fresh {
		f.Balances.Add(fund.A(t.Price, t.Currency))
	}

	listings, err := client.FetchListings(ctx, rates)
	if err != nil {
		return nil, err
	}
	f.ApplyValuation(fund.Valuation{
		ListedValue: fund.D(poetrade.ListedValue(listings)),
		Rates:       fund.Rates(rates),
		At:          time.Now(),
	})

	if err := f.CheckInvariants(); err != nil {
		return nil, err
	}
	if err := store.Save(f); err != nil {
		return nil, err
	}
	if err := exportLedger(cfg, ts); err != nil {
		return nil, err
	}

	recent, err := ts.Recent(50)
	if err != nil {
		return nil, err
	}
	return &marketRefresh{Fund: f, Fresh: fresh, Recent: recent, Listings: listings}, nil
}

// exportLedger rewrites the full CSV trade ledger from the database.
func exportLedger(cfg config.Config, ts *poetrade.Store) error {
	all, err := ts.All()
	if err != nil {
		return err
	}
	w, err := os.Create(cfg.TradeCSV())
	if err != nil {
		return fmt.Errorf("cannot write trade ledger: %w", err)
	}
	defer w.Close()
	return poetrade.ExportCSV(w, all)
}
