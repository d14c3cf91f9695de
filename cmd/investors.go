package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"

	"github.com/Stakenborg/poe2-investments/renderer"
)

// investorsCmd holds the flags for the 'investors' subcommand.
type investorsCmd struct {
	offline bool
}

func (*investorsCmd) Name() string     { return "investors" }
func (*investorsCmd) Synopsis() string { return "display the cap table" }
func (*investorsCmd) Usage() string {
	return `p2i investors [-offline]

  Displays every investor's units, value, share and profit at the current
  unit price, ordered by descending value.
`
}

func (c *investorsCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.offline, "offline", false, "Use the last stored valuation, do not call the trade API.")
}

func (c *investorsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		return fail(err)
	}
	snap, err := openBook(cfg, !c.offline).Snapshot(ctx)
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.CapTableMarkdown(snap))
	return subcommands.ExitSuccess
}
