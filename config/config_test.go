package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("POESESSID", "")
	c, err := Load(filepath.Join(t.TempDir(), "p2i.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Default()
	want.Secrets = c.Secrets
	if c != want {
		t.Errorf("config = %+v, want defaults %+v", c, want)
	}
	if c.League != "Standard" || c.DataDir != "." || c.Schedule != "@every 30m" {
		t.Errorf("defaults = %+v", c)
	}
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "p2i.yaml")
	data := `
league: Rise of the Abyssal
account: Stakenborg
data_dir: /var/lib/p2i
schedule: "@hourly"
publish_dir: /srv/pages
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.League != "Rise of the Abyssal" {
		t.Errorf("League = %q", c.League)
	}
	if c.Account != "Stakenborg" {
		t.Errorf("Account = %q", c.Account)
	}
	if c.Schedule != "@hourly" {
		t.Errorf("Schedule = %q", c.Schedule)
	}
	if got := c.TradeDB(); got != "/var/lib/p2i/trades.db" {
		t.Errorf("TradeDB = %q", got)
	}
	if got := c.TradeCSV(); got != "/var/lib/p2i/trades.csv" {
		t.Errorf("TradeCSV = %q", got)
	}
	if got := c.DashboardFile(); got != "/srv/pages/dashboard.json" {
		t.Errorf("DashboardFile = %q", got)
	}
}

func TestSecretsComeFromEnvironment(t *testing.T) {
	t.Setenv("POESESSID", "cookie")
	t.Setenv("DISCORD_WEBHOOK", "https://discord.test/hook")
	t.Setenv("GEMINI_API_KEY", "key")

	c, err := Load(filepath.Join(t.TempDir(), "p2i.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Secrets.PoeSessID != "cookie" {
		t.Errorf("PoeSessID = %q", c.Secrets.PoeSessID)
	}
	if c.Secrets.DiscordWebhook != "https://discord.test/hook" {
		t.Errorf("DiscordWebhook = %q", c.Secrets.DiscordWebhook)
	}
	if c.Secrets.GeminiAPIKey != "key" {
		t.Errorf("GeminiAPIKey = %q", c.Secrets.GeminiAPIKey)
	}
}

func TestSecretsNeverComeFromYAML(t *testing.T) {
	t.Setenv("POESESSID", "")
	path := filepath.Join(t.TempDir(), "p2i.yaml")
	if err := os.WriteFile(path, []byte("secrets:\n  poesessid: sneaky\n"), 0644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Secrets.PoeSessID != "" {
		t.Errorf("PoeSessID = %q, want empty", c.Secrets.PoeSessID)
	}
}

func TestDashboardFallsBackToDataDir(t *testing.T) {
	c := Default()
	c.DataDir = "/var/lib/p2i"
	if got := c.DashboardFile(); got != "/var/lib/p2i/dashboard.json" {
		t.Errorf("DashboardFile = %q", got)
	}
}
