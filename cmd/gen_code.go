package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type genCodeCmd struct{}

func (*genCodeCmd) Name() string     { return "gen-code" }
func (*genCodeCmd) Synopsis() string { return "regenerate an investor's invite code" }
func (*genCodeCmd) Usage() string {
	return `p2i gen-code <name>

  Generates a fresh invite code for the investor, invalidating the old one.
  The plaintext code is printed once; only its hash is ever published.
`
}

func (*genCodeCmd) SetFlags(f *flag.FlagSet) {}

func (c *genCodeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected <name>")
		return subcommands.ExitUsageError
	}
	cfg, err := loadConfig()
	if err != nil {
		return fail(err)
	}
	// Codes do not depend on valuation: stay offline.
	res, err := openBook(cfg, false).GenerateCode(ctx, f.Arg(0))
	if err != nil {
		return fail(err)
	}
	printMarkdown(res.Summary)
	return subcommands.ExitSuccess
}
