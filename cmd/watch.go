package cmd

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/subcommands"
	"github.com/robfig/cron/v3"

	"github.com/Stakenborg/poe2-investments"
)

// watchCmd holds the flags for the 'watch' subcommand.
type watchCmd struct {
	schedule string
	publish  bool
}

func (*watchCmd) Name() string     { return "watch" }
func (*watchCmd) Synopsis() string { return "fetch market data on a schedule" }
func (*watchCmd) Usage() string {
	return `p2i watch [-schedule <cron>] [-publish]

  Runs fetch on a cron schedule until interrupted, announcing new sales on
  Discord. With -publish the dashboard is rewritten after every pass.
`
}

func (c *watchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.schedule, "schedule", "", "Cron schedule, overrides the configured one.")
	f.BoolVar(&c.publish, "publish", false, "Rewrite the dashboard after every fetch.")
}

func (c *watchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		return fail(err)
	}
	schedule := c.schedule
	if schedule == "" {
		schedule = cfg.Schedule
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	pass := func() {
		res, err := refreshMarket(ctx, cfg)
		if err != nil {
			log.Printf("fetch failed: %v", err)
			return
		}
		log.Printf("recorded %d new sale(s), NAV %s at %s/unit", len(res.Fresh), res.Fund.NAV(), res.Fund.Price())
		if err := notifier(cfg, res.Fund).NotifySales(ctx, res.Fresh); err != nil {
			log.Printf("warning, discord notification failed: %v", err)
		}
		if c.publish {
			out, err := os.Create(cfg.DashboardFile())
			if err != nil {
				log.Printf("dashboard write failed: %v", err)
				return
			}
			defer out.Close()
			if err := fund.EncodeDashboard(out, res.Fund.BuildDashboard(res.Listings, res.Recent, time.Now())); err != nil {
				log.Printf("dashboard write failed: %v", err)
			}
		}
	}

	runner := cron.New()
	if _, err := runner.AddFunc(schedule, pass); err != nil {
		return fail(fmt.Errorf("bad schedule %q: %w", schedule, err))
	}

	log.Printf("watching on schedule %q, ctrl-c to stop", schedule)
	pass() // one pass immediately, then on schedule
	runner.Start()
	<-ctx.Done()

	stopCtx := runner.Stop()
	<-stopCtx.Done()
	return subcommands.ExitSuccess
}
