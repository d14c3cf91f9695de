package poetrade

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// The fetch endpoint accepts at most ten result ids per call.
const fetchBatchSize = 10

// Listing is one item currently listed for sale by the account.
type Listing struct {
	ItemID    string          `json:"item_id"`
	ItemName  string          `json:"item_name"`
	BaseType  string          `json:"base_type"`
	Rarity    string          `json:"rarity"`
	ItemLevel int             `json:"ilvl"`
	Corrupted bool            `json:"corrupted"`
	Icon      string          `json:"icon,omitempty"`
	Stash     string          `json:"stash,omitempty"`
	Price     decimal.Decimal `json:"price"`
	Currency  string          `json:"currency"`
	// DivEquivalent is zero when no exchange rate is known for Currency.
	DivEquivalent decimal.Decimal `json:"div_equivalent"`
}

type apiSearch struct {
	ID     string   `json:"id"`
	Result []string `json:"result"`
	Total  int      `json:"total"`
}

type apiFetch struct {
	Result []struct {
		ID      string  `json:"id"`
		Item    apiItem `json:"item"`
		Listing struct {
			Price struct {
				Amount   float64 `json:"amount"`
				Currency string  `json:"currency"`
			} `json:"price"`
			Stash struct {
				Name string `json:"name"`
			} `json:"stash"`
		} `json:"listing"`
	} `json:"result"`
}

// FetchListings returns every item the account has listed online, priced in
// divines where a rate is known. Results are fetched in batches with a small
// pause to stay under the API's rate limits.
func (c *Client) FetchListings(ctx context.Context, rates Rates) ([]Listing, error) {
	query := map[string]any{
		"query": map[string]any{
			"status": map[string]any{"option": "online"},
			"stats":  []any{map[string]any{"type": "and", "filters": []any{}}},
			"filters": map[string]any{
				"trade_filters": map[string]any{
					"filters": map[string]any{
						"account": map[string]any{"input": c.Account},
					},
				},
			},
		},
		"sort": map[string]any{"price": "asc"},
	}
	var search apiSearch
	if err := c.postJSON(ctx, c.searchURL(), query, &search); err != nil {
		return nil, fmt.Errorf("cannot search listings: %w", err)
	}

	var listings []Listing
	for i := 0; i < len(search.Result); i += fetchBatchSize {
		if i > 0 {
			select {
			case <-time.After(2 * time.Second):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
		batch := search.Result[i:min(i+fetchBatchSize, len(search.Result))]
		addr := c.fetchURL(batch, search.ID)
		var fetched apiFetch
		if err := c.getJSON(ctx, addr, &fetched); err != nil {
			return nil, fmt.Errorf("cannot fetch listings batch: %w", err)
		}
		for _, r := range fetched.Result {
			listings = append(listings, newListing(r.ID, r.Item, r.Listing.Price.Amount, r.Listing.Price.Currency, r.Listing.Stash.Name, rates))
		}
	}
	return listings, nil
}

func newListing(id string, item apiItem, amount float64, currency, stash string, rates Rates) Listing {
	name := item.Name
	if name == "" {
		name = item.TypeLine
	}
	price := decimal.NewFromFloat(amount)
	l := Listing{
		ItemID:    id,
		ItemName:  name,
		BaseType:  item.BaseType,
		Rarity:    item.Rarity,
		ItemLevel: item.Ilvl,
		Corrupted: item.Corrupted,
		Icon:      item.Icon,
		Stash:     stash,
		Price:     price,
		Currency:  currency,
	}
	if rate, ok := rates[currency]; ok {
		l.DivEquivalent = price.Mul(rate)
	}
	return l
}

// ListedValue sums the divine value of all rated listings.
func ListedValue(listings []Listing) decimal.Decimal {
	var total decimal.Decimal
	for _, l := range listings {
		total = total.Add(l.DivEquivalent)
	}
	return total
}
