package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/google/subcommands"

	"github.com/Stakenborg/poe2-investments"
)

// addCmd holds the flags for the 'add' subcommand.
type addCmd struct {
	currency string
	confirm  bool
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "create an investor and record their first deposit" }
func (*addCmd) Usage() string {
	return `p2i add [-cur <currency>] [-confirm] <name> <amount>

  Creates the investor if they do not exist yet and records a deposit
  request locked at the current unit price. Creating a new investor needs
  -confirm so a typo in a name never mints a new account silently.
  The first investor ever created becomes the fund manager.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.currency, "cur", fund.Divine, "Currency of the amount, e.g. divine or exalted.")
	f.BoolVar(&c.confirm, "confirm", false, "Confirm creating the investor if they do not exist.")
}

func (c *addCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	book := openBook(cfg, true)

	res, err := book.CreateOrDeposit(ctx, f.Arg(0), amount, c.confirm)
	if errors.Is(err, fund.ErrConfirmationRequired) {
		fmt.Fprintf(os.Stderr, "Investor %q does not exist. Re-run with -confirm to create them.\n", f.Arg(0))
		return subcommands.ExitUsageError
	}
	if err != nil {
		return fail(err)
	}

	printMarkdown(res.Summary)
	if err := notifier(cfg, res.Fund).NotifyRequest(ctx, res.Fund.Find(f.Arg(0)).Pending.String()); err != nil {
		log.Printf("warning, discord notification failed: %v", err)
	}
	return subcommands.ExitSuccess
}
