package cmd

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/google/subcommands"

	"github.com/Stakenborg/poe2-investments"
	"github.com/Stakenborg/poe2-investments/renderer"
)

// fulfillCmd holds the flags for the 'fulfill' subcommand.
type fulfillCmd struct {
	all bool
}

func (*fulfillCmd) Name() string     { return "fulfill" }
func (*fulfillCmd) Synopsis() string { return "execute pending requests at their locked prices" }
func (*fulfillCmd) Usage() string {
	return `p2i fulfill <name>
p2i fulfill -all

  Executes the pending request of one investor, or all pending requests.
  Every request settles at the price locked when it was created, so the
  order of fulfillment never changes any outcome. Withdrawal fees are
  reported to the manager, never deducted automatically.
`
}

func (c *fulfillCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.all, "all", false, "Fulfill every pending request.")
}

func (c *fulfillCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		return fail(err)
	}
	book := openBook(cfg, true)

	var res *fund.Result
	switch {
	case c.all:
		if f.NArg() != 0 {
			fmt.Fprintln(os.Stderr, "Error: -all takes no arguments")
			return subcommands.ExitUsageError
		}
		res, err = book.FulfillAll(ctx)
	case f.NArg() == 1:
		res, err = book.Fulfill(ctx, f.Arg(0))
	default:
		fmt.Fprintln(os.Stderr, "Error: expected <name> or -all")
		return subcommands.ExitUsageError
	}
	if err != nil {
		return fail(err)
	}

	printMarkdown(renderer.FulfillmentMarkdown(res.Fulfilled))

	if len(res.Fulfilled) > 0 {
		n := notifier(cfg, res.Fund)
		if err := n.NotifyFulfillment(ctx, res.Summary); err != nil {
			log.Printf("warning, discord notification failed: %v", err)
		}
	}
	return subcommands.ExitSuccess
}
