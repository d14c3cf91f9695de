package poetrade

import (
	"context"
	"fmt"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

// FetchRates reads the poe2scout currency exchange snapshot and returns the
// divine value of every currency quoted against divine orbs. The divine
// itself is always present at 1.
func (c *Client) FetchRates(ctx context.Context) (Rates, error) {
	var doc any
	if err := c.getJSON(ctx, c.ratesURL(), &doc); err != nil {
		return nil, fmt.Errorf("cannot fetch exchange rates: %w", err)
	}

	pairs, err := jsonpath.Get("$[*]", doc)
	if err != nil {
		return nil, fmt.Errorf("unexpected exchange snapshot shape: %w", err)
	}
	list, ok := pairs.([]any)
	if !ok {
		return nil, fmt.Errorf("unexpected exchange snapshot shape: not a list")
	}

	rates := Rates{"divine": decimal.NewFromInt(1)}
	for _, pair := range list {
		one, err1 := jsonpath.Get("$.CurrencyOne.apiId", pair)
		two, err2 := jsonpath.Get("$.CurrencyTwo.apiId", pair)
		rel, err3 := jsonpath.Get("$.CurrencyTwoData.RelativePrice", pair)
		if err1 != nil || err2 != nil || err3 != nil {
			continue
		}
		price, ok := rel.(float64)
		if !ok || price <= 0 {
			continue
		}
		// Pairs are quoted against divine on either side.
		switch {
		case one == "divine":
			if id, ok := two.(string); ok {
				rates[id] = decimal.NewFromFloat(price)
			}
		case two == "divine":
			if id, ok := one.(string); ok {
				rates[id] = decimal.NewFromInt(1).Div(decimal.NewFromFloat(price))
			}
		}
	}
	return rates, nil
}
