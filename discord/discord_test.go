package discord

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/Stakenborg/poe2-investments/poetrade"
)

// capture returns a notifier posting to a test server and the decoded
// messages it receives.
func capture(t *testing.T) (*Notifier, *[]message) {
	t.Helper()
	var got []message
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		var m message
		if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
			t.Errorf("cannot decode webhook payload: %v", err)
		}
		got = append(got, m)
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(srv.Close)
	return New(srv.URL), &got
}

func TestNotify(t *testing.T) {
	n, got := capture(t)
	if err := n.Notify(context.Background(), "hello"); err != nil {
		t.Fatalf("Notify: %v", err)
	}
	if len(*got) != 1 || (*got)[0].Content != "hello" {
		t.Fatalf("messages = %+v, want one with content hello", *got)
	}
}

func TestEmptyURLDropsSilently(t *testing.T) {
	var n *Notifier
	if err := n.Notify(context.Background(), "into the void"); err != nil {
		t.Errorf("nil notifier: %v", err)
	}
	if err := New("").Notify(context.Background(), "into the void"); err != nil {
		t.Errorf("empty URL: %v", err)
	}
}

func TestNotifySales(t *testing.T) {
	n, got := capture(t)

	if err := n.NotifySales(context.Background(), nil); err != nil {
		t.Fatalf("NotifySales(nil): %v", err)
	}
	if len(*got) != 0 {
		t.Fatal("no sales should post nothing")
	}

	trades := []poetrade.Trade{
		{ItemName: "Headhunter", Price: decimal.NewFromInt(3), Currency: "divine", DivEquivalent: decimal.NewFromInt(3)},
		{ItemName: "Stellar Amulet", Price: decimal.NewFromInt(2), Currency: "mirror"},
	}
	if err := n.NotifySales(context.Background(), trades); err != nil {
		t.Fatalf("NotifySales: %v", err)
	}
	if len(*got) != 1 || len((*got)[0].Embeds) != 1 {
		t.Fatalf("messages = %+v, want one embed", *got)
	}
	e := (*got)[0].Embeds[0]
	if e.Title != "2 new sale(s)" {
		t.Errorf("title = %q", e.Title)
	}
	if !strings.Contains(e.Description, "**Headhunter** sold for 3 divine (≈ 3 div)") {
		t.Errorf("description = %q", e.Description)
	}
	// Unrated sales appear without a divine equivalent.
	if !strings.Contains(e.Description, "**Stellar Amulet** sold for 2 mirror\n") {
		t.Errorf("description = %q", e.Description)
	}
	if e.Color != colorGreen {
		t.Errorf("color = %#x, want %#x", e.Color, colorGreen)
	}
}

func TestNotifyRequest(t *testing.T) {
	n, got := capture(t)
	if err := n.NotifyRequest(context.Background(), "pending deposit of 100.00 div"); err != nil {
		t.Fatalf("NotifyRequest: %v", err)
	}
	e := (*got)[0].Embeds[0]
	if e.Title != "New request" || e.Description != "pending deposit of 100.00 div" {
		t.Errorf("embed = %+v", e)
	}
}

func TestNotifyFulfillment(t *testing.T) {
	n, got := capture(t)
	if err := n.NotifyFulfillment(context.Background(), "alice deposited 100 div"); err != nil {
		t.Fatalf("NotifyFulfillment: %v", err)
	}
	e := (*got)[0].Embeds[0]
	if e.Title != "Request fulfilled" || e.Description != "alice deposited 100 div" {
		t.Errorf("embed = %+v", e)
	}
	if e.Color != colorBlue {
		t.Errorf("color = %#x, want %#x", e.Color, colorBlue)
	}
}

func TestWebhookRefusal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad webhook", http.StatusBadRequest)
	}))
	defer srv.Close()

	err := New(srv.URL).Notify(context.Background(), "hello")
	if err == nil || !strings.Contains(err.Error(), "400") {
		t.Fatalf("err = %v, want a 400 refusal", err)
	}
}
