package cmd

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/google/subcommands"
)

// fetchCmd holds the flags for the 'fetch' subcommand.
type fetchCmd struct {
	quiet bool
}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "pull trades, listings and rates from the market" }
func (*fetchCmd) Usage() string {
	return `p2i fetch [-q]

  Pulls the account's trade history, active listings and current exchange
  rates. Newly seen sales are credited to the fund's balances exactly once;
  the fund is revalued and both snapshots rewritten. New sales are announced
  on Discord unless -q is given.
`
}

func (c *fetchCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.quiet, "q", false, "Do not announce new sales on Discord.")
}

func (c *fetchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		return fail(err)
	}
	res, err := refreshMarket(ctx, cfg)
	if err != nil {
		return fail(err)
	}

	fmt.Printf("Recorded %d new sale(s), %d active listing(s). NAV %s at %s/unit.\n",
		len(res.Fresh), len(res.Listings), res.Fund.NAV(), res.Fund.Price())

	if !c.quiet {
		if err := notifier(cfg, res.Fund).NotifySales(ctx, res.Fresh); err != nil {
			log.Printf("warning, discord notification failed: %v", err)
		}
	}
	return subcommands.ExitSuccess
}
