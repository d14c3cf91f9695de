package cmd

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/google/subcommands"

	"github.com/Stakenborg/poe2-investments"
	"github.com/Stakenborg/poe2-investments/config"
	"github.com/Stakenborg/poe2-investments/poetrade"
)

// publishCmd holds the flags for the 'publish' subcommand.
type publishCmd struct {
	skipFetch bool
	push      bool
}

func (*publishCmd) Name() string     { return "publish" }
func (*publishCmd) Synopsis() string { return "write the public dashboard" }
func (*publishCmd) Usage() string {
	return `p2i publish [-skip-fetch] [-push]

  Writes the public dashboard document: fund state, listings, recent sales
  and exchange rates, with invite codes reduced to hashes. Refreshes the
  market first unless -skip-fetch is given. With -push the configured
  publish directory is committed and pushed.
`
}

func (c *publishCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.skipFetch, "skip-fetch", false, "Publish from stored data, do not call the trade API.")
	f.BoolVar(&c.push, "push", false, "Commit and push the publish directory.")
}

func (c *publishCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		return fail(err)
	}

	dash, err := buildDashboard(ctx, cfg, c.skipFetch)
	if err != nil {
		return fail(err)
	}

	out, err := os.Create(cfg.DashboardFile())
	if err != nil {
		return fail(fmt.Errorf("cannot write dashboard: %w", err))
	}
	defer out.Close()
	if err := fund.EncodeDashboard(out, dash); err != nil {
		return fail(err)
	}
	fmt.Printf("Dashboard written to %s\n", cfg.DashboardFile())

	if c.push {
		if cfg.PublishDir == "" {
			return fail(fmt.Errorf("-push needs publish_dir in the configuration"))
		}
		if err := gitPush(ctx, cfg.PublishDir); err != nil {
			return fail(err)
		}
		fmt.Println("Dashboard pushed.")
	}
	return subcommands.ExitSuccess
}

func buildDashboard(ctx context.Context, cfg config.Config, skipFetch bool) (fund.Dashboard, error) {
	if !skipFetch {
		res, err := refreshMarket(ctx, cfg)
		if err != nil {
			return fund.Dashboard{}, err
		}
		return res.Fund.BuildDashboard(res.Listings, res.Recent, time.Now()), nil
	}

	f, err := fund.NewStore(cfg.DataDir).Load()
	if err != nil {
		return fund.Dashboard{}, err
	}
	ts, err := poetrade.OpenStore(cfg.TradeDB())
	if err != nil {
		return fund.Dashboard{}, err
	}
	defer ts.Close()
	recent, err := ts.Recent(50)
	if err != nil {
		return fund.Dashboard{}, err
	}
	// Listings are not persisted; an offline dashboard shows none.
	return f.BuildDashboard(nil, recent, time.Now()), nil
}

// gitPush commits and pushes everything in dir.
func gitPush(ctx context.Context, dir string) error {
	steps := [][]string{
		{"add", "-A"},
		{"commit", "-m", "update dashboard"},
		{"push"},
	}
	for _, args := range steps {
		cmd := exec.CommandContext(ctx, "git", args...)
		cmd.Dir = dir
		out, err := cmd.CombinedOutput()
		if err != nil {
			// An unchanged dashboard is not a failure.
			if args[0] == "commit" && bytes.Contains(out, []byte("nothing to commit")) {
				continue
			}
			return fmt.Errorf("git %s failed: %v\n%s", args[0], err, out)
		}
	}
	return nil
}
