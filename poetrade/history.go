package poetrade

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Rates maps a currency api id to its value in divine orbs.
type Rates map[string]decimal.Decimal

// Trade is one completed sale from the account's trade history.
type Trade struct {
	ItemID    string          `json:"item_id"`
	Timestamp string          `json:"timestamp"`
	ItemName  string          `json:"item_name"`
	BaseType  string          `json:"base_type"`
	Rarity    string          `json:"rarity"`
	ItemLevel int             `json:"ilvl"`
	Corrupted bool            `json:"corrupted"`
	Icon      string          `json:"icon,omitempty"`
	Price     decimal.Decimal `json:"price"`
	Currency  string          `json:"currency"`
	// DivEquivalent is zero when no exchange rate is known for Currency.
	DivEquivalent decimal.Decimal `json:"div_equivalent"`
}

// Rated reports whether the sale price could be converted to divines.
func (t Trade) Rated() bool { return !t.DivEquivalent.IsZero() }

type apiHistory struct {
	Entries []apiHistoryEntry `json:"entries"`
}

type apiHistoryEntry struct {
	Time int64   `json:"time"`
	Item apiItem `json:"item"`
	Price struct {
		Amount   float64 `json:"amount"`
		Currency string  `json:"currency"`
	} `json:"price"`
}

type apiItem struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	TypeLine  string `json:"typeLine"`
	BaseType  string `json:"baseType"`
	Rarity    string `json:"rarity"`
	Ilvl      int    `json:"ilvl"`
	Corrupted bool   `json:"corrupted"`
	Icon      string `json:"icon"`
}

// FetchHistory returns the account's completed sales, newest first, with
// prices converted to divines where a rate is known.
func (c *Client) FetchHistory(ctx context.Context, rates Rates) ([]Trade, error) {
	var doc apiHistory
	if err := c.getJSON(ctx, c.historyURL(), &doc); err != nil {
		return nil, fmt.Errorf("cannot fetch trade history: %w", err)
	}
	trades := make([]Trade, 0, len(doc.Entries))
	for _, e := range doc.Entries {
		trades = append(trades, newTrade(e, rates))
	}
	return trades, nil
}

func newTrade(e apiHistoryEntry, rates Rates) Trade {
	name := e.Item.Name
	if name == "" {
		name = e.Item.TypeLine
	}
	price := decimal.NewFromFloat(e.Price.Amount)
	t := Trade{
		ItemID:    e.Item.ID,
		Timestamp: time.Unix(e.Time, 0).UTC().Format(time.RFC3339),
		ItemName:  name,
		BaseType:  e.Item.BaseType,
		Rarity:    e.Item.Rarity,
		ItemLevel: e.Item.Ilvl,
		Corrupted: e.Item.Corrupted,
		Icon:      e.Item.Icon,
		Price:     price,
		Currency:  e.Price.Currency,
	}
	if rate, ok := rates[e.Price.Currency]; ok {
		t.DivEquivalent = price.Mul(rate)
	}
	return t
}
