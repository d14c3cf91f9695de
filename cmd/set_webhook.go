package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type setWebhookCmd struct{}

func (*setWebhookCmd) Name() string     { return "set-webhook" }
func (*setWebhookCmd) Synopsis() string { return "store the Discord webhook URL" }
func (*setWebhookCmd) Usage() string {
	return `p2i set-webhook <url>

  Stores the Discord webhook used to announce sales and fulfillments. The
  URL lives in the private snapshot only; an empty url disables
  notifications.
`
}

func (*setWebhookCmd) SetFlags(f *flag.FlagSet) {}

func (c *setWebhookCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() > 1 {
		fmt.Fprintln(os.Stderr, "Error: expected at most <url>")
		return subcommands.ExitUsageError
	}
	cfg, err := loadConfig()
	if err != nil {
		return fail(err)
	}
	res, err := openBook(cfg, false).SetWebhook(f.Arg(0))
	if err != nil {
		return fail(err)
	}
	fmt.Println(res.Summary)
	return subcommands.ExitSuccess
}
