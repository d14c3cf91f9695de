// Package discord posts fund events to a Discord webhook.
package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Stakenborg/poe2-investments/poetrade"
)

// Notifier posts messages to a single webhook URL. The zero value, or a
// Notifier with an empty URL, silently drops every message.
type Notifier struct {
	URL  string
	http *http.Client
}

// New returns a notifier for the given webhook URL.
func New(url string) *Notifier {
	return &Notifier{URL: url, http: &http.Client{Timeout: 10 * time.Second}}
}

type message struct {
	Content string  `json:"content,omitempty"`
	Embeds  []embed `json:"embeds,omitempty"`
}

type embed struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Color       int    `json:"color,omitempty"`
}

const (
	colorGreen = 0x2ecc71
	colorBlue  = 0x3498db
)

func (n *Notifier) post(ctx context.Context, m message) error {
	if n == nil || n.URL == "" {
		return nil
	}
	payload, err := json.Marshal(m)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.URL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := n.http.Do(req)
	if err != nil {
		return fmt.Errorf("cannot post to discord: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("discord webhook refused the message: %s", resp.Status)
	}
	return nil
}

// Notify posts a plain text message.
func (n *Notifier) Notify(ctx context.Context, text string) error {
	return n.post(ctx, message{Content: text})
}

// NotifySales announces newly detected sales.
func (n *Notifier) NotifySales(ctx context.Context, trades []poetrade.Trade) error {
	if len(trades) == 0 {
		return nil
	}
	var b strings.Builder
	for _, t := range trades {
		fmt.Fprintf(&b, "**%s** sold for %s %s", t.ItemName, t.Price, t.Currency)
		if t.Rated() {
			fmt.Fprintf(&b, " (≈ %s div)", t.DivEquivalent.Round(2))
		}
		b.WriteString("\n")
	}
	return n.post(ctx, message{Embeds: []embed{{
		Title:       fmt.Sprintf("%d new sale(s)", len(trades)),
		Description: b.String(),
		Color:       colorGreen,
	}}})
}

// NotifyRequest announces a newly created deposit or withdrawal request.
func (n *Notifier) NotifyRequest(ctx context.Context, summary string) error {
	return n.post(ctx, message{Embeds: []embed{{
		Title:       "New request",
		Description: summary,
		Color:       colorBlue,
	}}})
}

// NotifyFulfillment announces a processed deposit or withdrawal.
func (n *Notifier) NotifyFulfillment(ctx context.Context, summary string) error {
	return n.post(ctx, message{Embeds: []embed{{
		Title:       "Request fulfilled",
		Description: summary,
		Color:       colorBlue,
	}}})
}
