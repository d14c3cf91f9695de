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

// withdrawCmd holds the flags for the 'withdraw' subcommand.
type withdrawCmd struct {
	currency string
}

func (*withdrawCmd) Name() string     { return "withdraw" }
func (*withdrawCmd) Synopsis() string { return "record a withdrawal request for an investor" }
func (*withdrawCmd) Usage() string {
	return `p2i withdraw [-cur <currency>] <name> <amount>

  Records a withdrawal request locked at the current unit price. The
  request is checked against the investor's position now; units are burned
  and any performance fee assessed when the manager fulfills it.
`
}

func (c *withdrawCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.currency, "cur", fund.Divine, "Currency of the amount, e.g. divine or exalted.")
}

func (c *withdrawCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	res, err := openBook(cfg, true).RequestWithdrawal(ctx, f.Arg(0), amount)
	if err != nil {
		return fail(err)
	}

	printMarkdown(res.Summary)
	if err := notifier(cfg, res.Fund).NotifyRequest(ctx, res.Fund.Find(f.Arg(0)).Pending.String()); err != nil {
		log.Printf("warning, discord notification failed: %v", err)
	}
	return subcommands.ExitSuccess
}
