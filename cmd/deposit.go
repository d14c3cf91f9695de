package cmd

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/google/subcommands"

	"github.com/Stakenborg/poe2-investments"
)

// depositCmd holds the flags for the 'deposit' subcommand.
type depositCmd struct {
	currency string
}

func (*depositCmd) Name() string     { return "deposit" }
func (*depositCmd) Synopsis() string { return "record a deposit request for an existing investor" }
func (*depositCmd) Usage() string {
	return `p2i deposit [-cur <currency>] <name> <amount>

  Records a deposit request locked at the current unit price. Units are
  issued when the manager fulfills the request; the locked price holds
  regardless of how the market moves in between.
`
}

func (c *depositCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.currency, "cur", fund.Divine, "Currency of the amount, e.g. divine or exalted.")
}

func (c *depositCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "Error: expected <name> <amount>")
		return subcommands.ExitUsageError
	}
	amount, err := fund.ParseAmount(f.Arg(1), c.currency)
	if err != nil {
		return fail(err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return fail(err)
	}
	res, err := openBook(cfg, true).Deposit(ctx, f.Arg(0), amount)
	if err != nil {
		return fail(err)
	}

	printMarkdown(res.Summary)
	if err := notifier(cfg, res.Fund).NotifyRequest(ctx, res.Fund.Find(f.Arg(0)).Pending.String()); err != nil {
		log.Printf("warning, discord notification failed: %v", err)
	}
	return subcommands.ExitSuccess
}
