// Package config loads the tracker configuration: a YAML file for the
// stable settings and environment variables for secrets.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Secrets are credentials read from the environment, never from disk.
type Secrets struct {
	// POESESSID is the pathofexile.com session cookie.
	PoeSessID string `env:"POESESSID"`
	// DISCORD_WEBHOOK overrides the webhook stored in the fund snapshot.
	DiscordWebhook string `env:"DISCORD_WEBHOOK"`
	// GEMINI_API_KEY enables the assist command.
	GeminiAPIKey string `env:"GEMINI_API_KEY"`
}

// Config is the on-disk tracker configuration.
type Config struct {
	// League is the PoE2 trade league, e.g. "Standard" or "Rise of the Abyssal".
	League string `yaml:"league"`
	// Account is the pathofexile.com account whose stash backs the fund.
	Account string `yaml:"account"`
	// DataDir holds the fund snapshots, trade database and exports.
	DataDir string `yaml:"data_dir"`
	// Schedule is a cron expression for the watch command.
	Schedule string `yaml:"schedule"`
	// PublishDir, when set, is a git working tree the dashboard is written
	// and pushed to.
	PublishDir string `yaml:"publish_dir"`

	Secrets Secrets `yaml:"-"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		League:   "Standard",
		DataDir:  ".",
		Schedule: "@every 30m",
	}
}

// Load reads the YAML file at path, falling back to defaults when the file
// does not exist, then overlays secrets from the environment.
func Load(path string) (Config, error) {
	c := Default()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// defaults
	case err != nil:
		return c, fmt.Errorf("cannot read config %q: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &c); err != nil {
			return c, fmt.Errorf("cannot parse config %q: %w", path, err)
		}
	}
	if err := env.Parse(&c.Secrets); err != nil {
		return c, fmt.Errorf("cannot read environment: %w", err)
	}
	if c.DataDir == "" {
		c.DataDir = "."
	}
	return c, nil
}

// TradeDB is the path of the seen-trades database.
func (c Config) TradeDB() string { return filepath.Join(c.DataDir, "trades.db") }

// TradeCSV is the path of the trade ledger export.
func (c Config) TradeCSV() string { return filepath.Join(c.DataDir, "trades.csv") }

// DashboardFile is the path the public dashboard is written to.
func (c Config) DashboardFile() string {
	dir := c.PublishDir
	if dir == "" {
		dir = c.DataDir
	}
	return filepath.Join(dir, "dashboard.json")
}
