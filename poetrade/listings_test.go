package poetrade

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestFetchListings(t *testing.T) {
	// Twelve results force two fetch batches.
	ids := make([]string, 12)
	for i := range ids {
		ids[i] = fmt.Sprintf("item-%02d", i)
	}

	var fetchCalls []string
	mux := http.NewServeMux()
	mux.HandleFunc("/search/poe2/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("search method = %s, want POST", r.Method)
		}
		var query map[string]any
		if err := json.NewDecoder(r.Body).Decode(&query); err != nil {
			t.Errorf("cannot decode search query: %v", err)
		}
		if !strings.Contains(fmt.Sprint(query), "tester") {
			t.Error("search query does not filter by account")
		}
		json.NewEncoder(w).Encode(apiSearch{ID: "q1", Result: ids, Total: len(ids)})
	})
	mux.HandleFunc("/fetch/", func(w http.ResponseWriter, r *http.Request) {
		batch := strings.TrimPrefix(r.URL.Path, "/fetch/")
		fetchCalls = append(fetchCalls, batch)
		if got := r.URL.Query().Get("query"); got != "q1" {
			t.Errorf("fetch query id = %q, want q1", got)
		}
		var results []string
		for _, id := range strings.Split(batch, ",") {
			results = append(results, fmt.Sprintf(
				`{"id":%q,"item":{"id":%q,"typeLine":"Siege Axe","rarity":"Rare","ilvl":81},"listing":{"price":{"amount":2,"currency":"divine"},"stash":{"name":"sell"}}}`,
				id, id))
		}
		fmt.Fprintf(w, `{"result":[%s]}`, strings.Join(results, ","))
	})

	c := newTestClient(t, mux)
	rates := Rates{"divine": decimal.NewFromInt(1)}

	listings, err := c.FetchListings(context.Background(), rates)
	if err != nil {
		t.Fatalf("FetchListings: %v", err)
	}
	if len(listings) != 12 {
		t.Fatalf("len(listings) = %d, want 12", len(listings))
	}
	if len(fetchCalls) != 2 {
		t.Fatalf("fetch calls = %d, want 2 batches", len(fetchCalls))
	}
	if got := len(strings.Split(fetchCalls[0], ",")); got != fetchBatchSize {
		t.Errorf("first batch size = %d, want %d", got, fetchBatchSize)
	}
	if got := len(strings.Split(fetchCalls[1], ",")); got != 2 {
		t.Errorf("second batch size = %d, want 2", got)
	}

	first := listings[0]
	if first.ItemName != "Siege Axe" {
		t.Errorf("item name = %q, want type line fallback", first.ItemName)
	}
	if first.Stash != "sell" {
		t.Errorf("stash = %q, want sell", first.Stash)
	}
	if want := decimal.NewFromInt(24); !ListedValue(listings).Equal(want) {
		t.Errorf("ListedValue = %s, want %s", ListedValue(listings), want)
	}
}

func TestListedValueSkipsUnrated(t *testing.T) {
	listings := []Listing{
		{ItemID: "a", Price: decimal.NewFromInt(3), Currency: "divine", DivEquivalent: decimal.NewFromInt(3)},
		{ItemID: "b", Price: decimal.NewFromInt(1), Currency: "mirror"},
	}
	if want := decimal.NewFromInt(3); !ListedValue(listings).Equal(want) {
		t.Errorf("ListedValue = %s, want %s", ListedValue(listings), want)
	}
}
