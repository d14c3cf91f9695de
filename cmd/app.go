// Package cmd implements the CLI application to manage the fund.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"

	"github.com/Stakenborg/poe2-investments"
	"github.com/Stakenborg/poe2-investments/config"
	"github.com/Stakenborg/poe2-investments/discord"
	"github.com/Stakenborg/poe2-investments/poetrade"
)

// Register the subcommands.
// A main package calls Register() and then Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&addCmd{}, "investors")
	c.Register(&depositCmd{}, "investors")
	c.Register(&withdrawCmd{}, "investors")
	c.Register(&fulfillCmd{}, "investors")
	c.Register(&genCodeCmd{}, "investors")

	c.Register(&summaryCmd{}, "reports")
	c.Register(&investorsCmd{}, "reports")
	c.Register(&historyCmd{}, "reports")

	c.Register(&fetchCmd{}, "market")
	c.Register(&publishCmd{}, "market")
	c.Register(&watchCmd{}, "market")

	c.Register(&setWebhookCmd{}, "settings")
	c.Register(&topicCmd{}, "help")
	c.Register(&assistCmd{}, "help")
}

// As a CLI application it has a very short lived lifecycle, so it is ok to
// use global variables.

var configFile = flag.String("config", "p2i.yaml", "Path to the tracker configuration file")
var dataDir = flag.String("data", "", "Data folder, overrides the configured one")

// loadConfig reads the configuration and applies the -data override.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(*configFile)
	if err != nil {
		return cfg, err
	}
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}
	return cfg, nil
}

// marketClient returns an authenticated trade client, or nil when no
// POESESSID is available. Commands without a client price against the last
// stored valuation.
func marketClient(cfg config.Config) *poetrade.Client {
	if cfg.Secrets.PoeSessID == "" {
		log.Println("warning, POESESSID not set, using last stored valuation")
		return nil
	}
	return poetrade.NewClient(cfg.Secrets.PoeSessID, cfg.League, cfg.Account)
}

// marketSource adapts the trade client to the fund's valuation source.
type marketSource struct {
	client *poetrade.Client
}

func (s marketSource) Read(ctx context.Context) (fund.Valuation, error) {
	rates, err := s.client.FetchRates(ctx)
	if err != nil {
		return fund.Valuation{}, err
	}
	listings, err := s.client.FetchListings(ctx, rates)
	if err != nil {
		return fund.Valuation{}, err
	}
	return fund.Valuation{
		ListedValue: fund.D(poetrade.ListedValue(listings)),
		Rates:       fund.Rates(rates),
		At:          time.Now(),
	}, nil
}

// openBook binds the fund store, and the market when online, into the
// command surface.
func openBook(cfg config.Config, online bool) *fund.Book {
	b := &fund.Book{Store: fund.NewStore(cfg.DataDir)}
	if online {
		if client := marketClient(cfg); client != nil {
			b.Source = marketSource{client: client}
		}
	}
	return b
}

// notifier resolves the webhook: environment first, then the one stored in
// the private snapshot.
func notifier(cfg config.Config, f *fund.Fund) *discord.Notifier {
	url := cfg.Secrets.DiscordWebhook
	if url == "" && f != nil {
		url = f.Webhook
	}
	return discord.New(url)
}

// printMarkdown renders markdown to the terminal.
func printMarkdown(source string) {
	out, err := glamour.Render(source, "auto")
	if err != nil {
		// Fall back to the raw markdown.
		fmt.Println(source)
		return
	}
	fmt.Print(out)
}

func fail(err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return subcommands.ExitFailure
}
