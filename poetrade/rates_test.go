package poetrade

import (
	"context"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
)

func TestFetchRates(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"CurrencyOne":{"apiId":"divine"},"CurrencyTwo":{"apiId":"exalted"},"CurrencyTwoData":{"RelativePrice":0.025}},
			{"CurrencyOne":{"apiId":"chaos"},"CurrencyTwo":{"apiId":"divine"},"CurrencyTwoData":{"RelativePrice":8}},
			{"CurrencyOne":{"apiId":"exalted"},"CurrencyTwo":{"apiId":"chaos"},"CurrencyTwoData":{"RelativePrice":3}},
			{"CurrencyOne":{"apiId":"annul"},"CurrencyTwo":{"apiId":"divine"},"CurrencyTwoData":{"RelativePrice":0}}
		]`))
	}))

	rates, err := c.FetchRates(context.Background())
	if err != nil {
		t.Fatalf("FetchRates: %v", err)
	}

	if !rates["divine"].Equal(decimal.NewFromInt(1)) {
		t.Errorf("divine = %s, want 1", rates["divine"])
	}
	// Divine quoted on the left, rate taken as is.
	if want := decimal.RequireFromString("0.025"); !rates["exalted"].Equal(want) {
		t.Errorf("exalted = %s, want %s", rates["exalted"], want)
	}
	// Divine quoted on the right, rate inverted.
	if want := decimal.RequireFromString("0.125"); !rates["chaos"].Equal(want) {
		t.Errorf("chaos = %s, want %s", rates["chaos"], want)
	}
	// Pairs without a divine side contribute nothing.
	if len(rates) != 3 {
		t.Errorf("len(rates) = %d, want 3: %v", len(rates), rates)
	}
	// Non-positive prices are skipped.
	if _, ok := rates["annul"]; ok {
		t.Error("zero-priced pair should be ignored")
	}
}

func TestFetchRatesRejectsBadShape(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`"maintenance"`))
	}))

	if _, err := c.FetchRates(context.Background()); err == nil {
		t.Fatal("expected error on a non-list snapshot")
	}
}
