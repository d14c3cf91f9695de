package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/Stakenborg/poe2-investments"
	"github.com/Stakenborg/poe2-investments/renderer"
)

type historyCmd struct{}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "display an investor's transaction history" }
func (*historyCmd) Usage() string {
	return `p2i history <name>

  Displays the investor's deposits and withdrawals, oldest first, with the
  unit price each one locked.
`
}

func (*historyCmd) SetFlags(f *flag.FlagSet) {}

func (c *historyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected <name>")
		return subcommands.ExitUsageError
	}
	cfg, err := loadConfig()
	if err != nil {
		return fail(err)
	}
	// History never depends on the market: stay offline.
	snap, err := openBook(cfg, false).Snapshot(ctx)
	if err != nil {
		return fail(err)
	}
	inv := snap.Find(f.Arg(0))
	if inv == nil {
		return fail(fmt.Errorf("%w: %q", fund.ErrInvestorNotFound, f.Arg(0)))
	}
	printMarkdown(renderer.HistoryMarkdown(inv))
	return subcommands.ExitSuccess
}
