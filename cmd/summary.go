package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"

	"github.com/Stakenborg/poe2-investments/renderer"
)

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct {
	offline bool
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display the fund overview" }
func (*summaryCmd) Usage() string {
	return `p2i summary [-offline]

  Displays the fund's NAV, unit price, high-water mark and holdings.
  Refreshes the market valuation first unless -offline is given.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.offline, "offline", false, "Use the last stored valuation, do not call the trade API.")
}

func (c *summaryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		return fail(err)
	}
	book := openBook(cfg, !c.offline)
	snap, err := book.Snapshot(ctx)
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.SummaryMarkdown(snap))
	return subcommands.ExitSuccess
}
